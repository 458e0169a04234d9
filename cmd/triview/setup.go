package main

import (
	"triview/internal/app"
	"triview/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	width, height := config.GetWindowSize()
	window, err := glfw.CreateWindow(width, height, config.GetWindowTitle(), nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	if config.GetVSync() {
		glfw.SwapInterval(1)
	} else {
		// pacing comes from the tick limiter
		glfw.SwapInterval(0)
	}

	return window, nil
}

func setupInputHandlers(window *glfw.Window, host *app.Host) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		host.HandleKey(key, action)
	})

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		host.HandleCursorPos(xpos, ypos)
	})

	// Viewport follows the framebuffer, which differs from window size on HiDPI displays
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		host.HandleResize(fbWidth, fbHeight)
	})
}
