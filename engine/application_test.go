package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadApplicationConfigMissingFile(t *testing.T) {
	config, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadApplicationConfig() error = %v", err)
	}
	want := DefaultApplicationConfig()
	if *config != *want {
		t.Errorf("config = %+v, want defaults %+v", config, want)
	}
	if config.DebounceWindow() != 0.2 {
		t.Errorf("debounce window = %f, want 0.2", config.DebounceWindow())
	}
}

func TestLoadApplicationConfig(t *testing.T) {
	p := writeConfig(t, `
[window]
title = "mill"
width = 640

[log]
level = "warn"

[renderer]
backend = "headless"
pipeline = "basic"

[input]
debounce_ms = 150

[audio]
enabled = false

[status]
fade_rate = 4.0
`)
	config, err := LoadApplicationConfig(p)
	if err != nil {
		t.Fatalf("LoadApplicationConfig() error = %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"title", config.Window.Title, "mill"},
		{"width", config.Window.Width, uint32(640)},
		{"height keeps its default", config.Window.Height, uint32(900)},
		{"backend", config.Renderer.Backend, "headless"},
		{"pipeline", config.Renderer.Pipeline, "basic"},
		{"debounce", config.DebounceWindow(), 0.15},
		{"audio", config.Audio.Enabled, false},
		{"fade rate", config.StatusTextConfig().FadeRate, float32(4)},
		{"log level", config.LogLevel(), core.WarnLevel},
		{"assets keep their default", config.Assets.Path, "assets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadApplicationConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[window]\ncolour = 3\n", "colour"},
		{"bad backend", "[renderer]\nbackend = \"vulkan\"\n", "vulkan"},
		{"zero size", "[window]\nwidth = 0\n", "window size"},
		{"negative debounce", "[input]\ndebounce_ms = -1\n", "debounce"},
		{"zero fade", "[status]\nfade_rate = 0.0\n", "fade rate"},
		{"syntax", "[window\n", "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadApplicationConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("LoadApplicationConfig() error = nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
