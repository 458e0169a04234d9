package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSettings mirrors the YAML config file. Nil fields keep the current value.
type FileSettings struct {
	VertexFile      *string `yaml:"vertex_file"`
	WindowWidth     *int    `yaml:"window_width"`
	WindowHeight    *int    `yaml:"window_height"`
	WindowTitle     *string `yaml:"window_title"`
	TickRate        *int    `yaml:"tick_rate"`
	VSync           *bool   `yaml:"vsync"`
	LogVertexColors *bool   `yaml:"log_vertex_colors"`
	ShowOverlay     *bool   `yaml:"show_overlay"`
	SlowFrameMs     *int    `yaml:"slow_frame_ms"`
}

// LoadFile reads a YAML config file and applies it to the global settings.
// A missing file is not an error and leaves the defaults in place.
func LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	fs, err := Decode(f)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	Apply(fs)
	return nil
}

// Decode parses YAML settings, rejecting unknown keys. An empty document yields no settings.
func Decode(r io.Reader) (FileSettings, error) {
	var fs FileSettings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fs); err != nil {
		if errors.Is(err, io.EOF) {
			return FileSettings{}, nil
		}
		return FileSettings{}, fmt.Errorf("decode yaml: %w", err)
	}
	return fs, nil
}

// Apply copies every set field into the global settings
func Apply(fs FileSettings) {
	if fs.VertexFile != nil {
		SetVertexFile(*fs.VertexFile)
	}
	if fs.WindowWidth != nil || fs.WindowHeight != nil {
		w, h := GetWindowSize()
		if fs.WindowWidth != nil {
			w = *fs.WindowWidth
		}
		if fs.WindowHeight != nil {
			h = *fs.WindowHeight
		}
		SetWindowSize(w, h)
	}
	if fs.WindowTitle != nil {
		SetWindowTitle(*fs.WindowTitle)
	}
	if fs.TickRate != nil {
		SetTickRate(*fs.TickRate)
	}
	if fs.VSync != nil {
		SetVSync(*fs.VSync)
	}
	if fs.LogVertexColors != nil {
		SetLogVertexColors(*fs.LogVertexColors)
	}
	if fs.ShowOverlay != nil {
		SetShowOverlay(*fs.ShowOverlay)
	}
	if fs.SlowFrameMs != nil {
		SetSlowFrameMs(*fs.SlowFrameMs)
	}
}
