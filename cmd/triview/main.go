package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"triview/internal/app"
	"triview/internal/config"
	"triview/internal/graphics"
	"triview/internal/input"
	"triview/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw must be on main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "triview.yaml", "path to the YAML config file")
	vertexPath := flag.String("vertices", "", "path to the vertex file (overrides config)")
	flag.Parse()

	if err := run(*configPath, *vertexPath); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

func run(configPath, vertexPath string) error {
	if err := config.LoadFile(configPath); err != nil {
		return err
	}
	config.SetVertexFile(vertexPath)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	swap := func() {
		defer profiling.Track("glfw.SwapBuffers")()
		window.SwapBuffers()
	}
	backend, err := graphics.NewGLBackend(swap, config.GetShowOverlay())
	if err != nil {
		return fmt.Errorf("create backend: %w", err)
	}

	r := graphics.NewRenderer(backend)
	defer r.Dispose()
	if config.GetLogVertexColors() {
		r.SetDiagnostics(os.Stdout)
	}
	r.SetOverlay(config.GetShowOverlay())

	host := app.NewHost(window, glfw.PollEvents, r, input.NewManager(), config.GetTickRate())
	host.SetSlowFrameThreshold(time.Duration(config.GetSlowFrameMs()) * time.Millisecond)

	if err := host.Load(config.GetVertexFile()); err != nil {
		return err
	}
	setupInputHandlers(window, host)

	return host.Run()
}
