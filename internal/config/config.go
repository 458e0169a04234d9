package config

import "sync"

// ViewerSettings holds viewer configuration
type ViewerSettings struct {
	mu              sync.RWMutex
	vertexFile      string
	windowWidth     int
	windowHeight    int
	windowTitle     string
	tickRate        int // ticks (and frames) per second
	vsync           bool
	logVertexColors bool
	showOverlay     bool
	slowFrameMs     int
}

func defaultSettings() *ViewerSettings {
	return &ViewerSettings{
		vertexFile:      "triangle_vertices.txt",
		windowWidth:     800,
		windowHeight:    600,
		windowTitle:     "Triangle Color and Camera Control",
		tickRate:        60,
		vsync:           false,
		logVertexColors: true,
		showOverlay:     false,
		slowFrameMs:     16,
	}
}

var globalViewerSettings = defaultSettings()

// Reset restores every setting to its default value
func Reset() {
	d := defaultSettings()
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()
	globalViewerSettings.vertexFile = d.vertexFile
	globalViewerSettings.windowWidth = d.windowWidth
	globalViewerSettings.windowHeight = d.windowHeight
	globalViewerSettings.windowTitle = d.windowTitle
	globalViewerSettings.tickRate = d.tickRate
	globalViewerSettings.vsync = d.vsync
	globalViewerSettings.logVertexColors = d.logVertexColors
	globalViewerSettings.showOverlay = d.showOverlay
	globalViewerSettings.slowFrameMs = d.slowFrameMs
}

// GetVertexFile returns the path of the vertex input file
func GetVertexFile() string {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.vertexFile
}

// SetVertexFile sets the path of the vertex input file
func SetVertexFile(path string) {
	if path == "" {
		return
	}
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()
	globalViewerSettings.vertexFile = path
}

// GetWindowSize returns the initial window size in screen coordinates
func GetWindowSize() (int, int) {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.windowWidth, globalViewerSettings.windowHeight
}

// SetWindowSize sets the initial window size
func SetWindowSize(width, height int) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()

	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	globalViewerSettings.windowWidth = width
	globalViewerSettings.windowHeight = height
}

// GetWindowTitle returns the window title
func GetWindowTitle() string {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.windowTitle
}

// SetWindowTitle sets the window title
func SetWindowTitle(title string) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()
	globalViewerSettings.windowTitle = title
}

// GetTickRate returns the number of simulation ticks per second
func GetTickRate() int {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.tickRate
}

// SetTickRate sets the number of simulation ticks per second
func SetTickRate(rate int) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()

	// Clamp to reasonable values
	if rate < 1 {
		rate = 1
	}
	if rate > 1000 {
		rate = 1000
	}

	globalViewerSettings.tickRate = rate
}

// GetVSync returns whether buffer swaps wait for vertical blank
func GetVSync() bool {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.vsync
}

// SetVSync sets whether buffer swaps wait for vertical blank
func SetVSync(enabled bool) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()
	globalViewerSettings.vsync = enabled
}

// GetLogVertexColors returns whether each frame prints the per-vertex color lines
func GetLogVertexColors() bool {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.logVertexColors
}

// SetLogVertexColors toggles the per-frame vertex color lines
func SetLogVertexColors(enabled bool) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()
	globalViewerSettings.logVertexColors = enabled
}

// GetShowOverlay returns whether the state overlay is drawn
func GetShowOverlay() bool {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.showOverlay
}

// SetShowOverlay toggles the state overlay
func SetShowOverlay(enabled bool) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()
	globalViewerSettings.showOverlay = enabled
}

// GetSlowFrameMs returns the processing time above which a frame is reported as slow
func GetSlowFrameMs() int {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.slowFrameMs
}

// SetSlowFrameMs sets the slow frame threshold; 0 disables the warning
func SetSlowFrameMs(ms int) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()
	if ms < 0 {
		ms = 0
	}
	globalViewerSettings.slowFrameMs = ms
}
