package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/systems"
)

type WindowConfig struct {
	// The application name used in windowing.
	Title string `toml:"title"`
	// Window starting position x axis.
	X uint32 `toml:"x"`
	// Window starting position y axis.
	Y      uint32 `toml:"y"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	// Root directory of the asset tree, relative to the working directory.
	Path string `toml:"path"`
	// Reload assets when files change on disk.
	Watch bool `toml:"watch"`
}

type RendererConfig struct {
	Backend  string `toml:"backend"`
	Pipeline string `toml:"pipeline"`
}

type InputConfig struct {
	// Minimum time between two discrete key actions.
	DebounceMS int `toml:"debounce_ms"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

type StatusConfig struct {
	Font     string  `toml:"font"`
	FadeRate float32 `toml:"fade_rate"`
}

type ApplicationConfig struct {
	Window   WindowConfig   `toml:"window"`
	Log      LogConfig      `toml:"log"`
	Assets   AssetsConfig   `toml:"assets"`
	Renderer RendererConfig `toml:"renderer"`
	Input    InputConfig    `toml:"input"`
	Audio    AudioConfig    `toml:"audio"`
	Status   StatusConfig   `toml:"status"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Window: WindowConfig{
			Title:  "3D Game Shaders For Beginners",
			X:      100,
			Y:      100,
			Width:  1200,
			Height: 900,
		},
		Log:      LogConfig{Level: "info"},
		Assets:   AssetsConfig{Path: "assets"},
		Renderer: RendererConfig{Backend: "opengl", Pipeline: "demonstration"},
		Input:    InputConfig{DebounceMS: 200},
		Audio:    AudioConfig{Enabled: true},
		Status:   StatusConfig{Font: "fonts/font.fnt", FadeRate: 2},
	}
}

/**
 * @brief Reads a TOML config on top of the defaults. A missing file yields
 * the defaults, unknown keys are an error.
 */
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		core.LogWarn("config `%s` not found, using defaults", path)
		return config, nil
	}
	if err != nil {
		return nil, err
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for i := range strict.Errors {
				keys = append(keys, strings.Join(strict.Errors[i].Key(), "."))
			}
			return nil, fmt.Errorf("config `%s`: unknown keys %s", path, strings.Join(keys, ", "))
		}
		return nil, fmt.Errorf("config `%s`: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config `%s`: %w", path, err)
	}
	return config, nil
}

// Validate checks the values the engine cannot run without.
func (c *ApplicationConfig) Validate() error {
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := renderer.ParseRendererType(c.Renderer.Backend); err != nil {
		return err
	}
	if c.Renderer.Pipeline == "" {
		return fmt.Errorf("no pipeline selected")
	}
	if c.Input.DebounceMS < 0 {
		return fmt.Errorf("negative debounce window %d ms", c.Input.DebounceMS)
	}
	if c.Status.FadeRate <= 0 {
		return fmt.Errorf("status fade rate must be positive, got %f", c.Status.FadeRate)
	}
	return nil
}

func (c *ApplicationConfig) LogLevel() core.LogLevel {
	return core.ParseLogLevel(c.Log.Level)
}

// DebounceWindow is the key debounce window in seconds.
func (c *ApplicationConfig) DebounceWindow() float64 {
	return float64(c.Input.DebounceMS) / 1000
}

// StatusTextConfig is the default status text styling with the configured
// fade rate.
func (c *ApplicationConfig) StatusTextConfig() *systems.StatusTextConfig {
	sc := systems.DefaultStatusTextConfig()
	sc.FadeRate = c.Status.FadeRate
	return sc
}
