// Package action names the logical viewer actions independent of any
// windowing library.
package action

// Action represents a logical viewer action, not a physical key
type Action int

const (
	RaiseRed Action = iota
	RaiseGreen
	RaiseBlue
	LowerAlpha
	ResetColor
	Close
	Count // Sentinel value for array sizing
)

// Valid reports whether a names a real action
func (a Action) Valid() bool {
	return a >= 0 && a < Count
}

// Set is a bit set of actions
type Set uint32

// Has reports whether a is in the set
func (s Set) Has(a Action) bool {
	if !a.Valid() {
		return false
	}
	return s&(1<<uint(a)) != 0
}

// With returns the set with a added
func (s Set) With(a Action) Set {
	if !a.Valid() {
		return s
	}
	return s | 1<<uint(a)
}

// Of builds a set from the given actions
func Of(actions ...Action) Set {
	var s Set
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}
