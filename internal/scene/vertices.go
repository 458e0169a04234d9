package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// VertexCount is the number of vertices a triangle file provides
const VertexCount = 3

// Vertex is a position in model space
type Vertex = mgl32.Vec3

// Vertices holds the triangle corners in file order
type Vertices [VertexCount]Vertex

var (
	// ErrMissingData is reported when the source has fewer than three lines
	ErrMissingData = errors.New("missing vertex data")
	// ErrParse is reported when one of the first three lines is not three numbers
	ErrParse = errors.New("malformed vertex line")
)

// LoadErrorKind classifies a LoadError
type LoadErrorKind int

const (
	MissingData LoadErrorKind = iota
	ParseError
)

func (k LoadErrorKind) String() string {
	switch k {
	case MissingData:
		return "missing data"
	case ParseError:
		return "parse error"
	}
	return "unknown"
}

// LoadError describes why vertices could not be loaded.
// Line is 1-based, 0 when the error is not tied to a line.
type LoadError struct {
	Kind LoadErrorKind
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load vertices: %s at line %d: %v", e.Kind, e.Line, e.Err)
	}
	return fmt.Sprintf("load vertices: %s: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() []error {
	sentinel := ErrMissingData
	if e.Kind == ParseError {
		sentinel = ErrParse
	}
	return []error{sentinel, e.Err}
}

// Load reads three vertices from r. Each of the first three lines must hold
// exactly three whitespace separated numbers; further lines are ignored.
// A leading UTF-8 byte order mark is skipped.
// On error the returned Vertices is the zero value.
func Load(r io.Reader) (Vertices, error) {
	var out Vertices
	sc := bufio.NewScanner(r)

	for i := 0; i < VertexCount; i++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				kind := MissingData
				// the line is there, it just does not fit the scanner
				if errors.Is(err, bufio.ErrTooLong) {
					kind = ParseError
				}
				return Vertices{}, &LoadError{Kind: kind, Line: i + 1, Err: err}
			}
			return Vertices{}, &LoadError{
				Kind: MissingData,
				Line: i + 1,
				Err:  fmt.Errorf("got %d of %d lines", i, VertexCount),
			}
		}
		line := sc.Text()
		if i == 0 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		v, err := parseVertex(line)
		if err != nil {
			return Vertices{}, &LoadError{Kind: ParseError, Line: i + 1, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// LoadFile reads vertices from the file at path. A file that cannot be
// opened counts as missing data.
func LoadFile(path string) (Vertices, error) {
	f, err := os.Open(path)
	if err != nil {
		return Vertices{}, &LoadError{Kind: MissingData, Err: err}
	}
	defer f.Close()

	return Load(f)
}

func parseVertex(line string) (Vertex, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Vertex{}, fmt.Errorf("expected 3 numbers, got %d", len(fields))
	}

	var v Vertex
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return Vertex{}, fmt.Errorf("coordinate %d: %w", i, err)
		}
		v[i] = float32(n)
	}
	return v, nil
}
