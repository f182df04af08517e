package engine

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration written in TOML as a string such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the context configuration. It can be decoded from TOML:
//
//	title = "bake"
//	width = 1024
//	height = 1024
//	debug = true
//	verbose = false
//	profiling = true
//	profile_interval = "2s"
type Config struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Visible bool   `toml:"visible"`

	// Debug requests a debug context and routes driver messages to the logger.
	Debug bool `toml:"debug"`
	// Verbose also logs low severity and notification driver messages.
	Verbose bool `toml:"verbose"`

	Profiling       bool     `toml:"profiling"`
	ProfileInterval Duration `toml:"profile_interval"`
}

// DefaultConfig returns the configuration used when none is given: a hidden 800x600 window with
// debug output enabled.
func DefaultConfig() Config {
	return Config{
		Title:           "oxy-gl",
		Width:           800,
		Height:          600,
		Debug:           true,
		ProfileInterval: Duration{time.Second},
	}
}

// ParseConfig decodes TOML over DefaultConfig. Unknown keys are an error.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the configuration
//   - error: a decoding or validation error
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("engine: decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes a TOML configuration file.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the configuration
//   - error: a read, decoding or validation error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: reading config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the window size is positive.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("engine: invalid window size %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c Config) windowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Title),
		window.WithWidth(c.Width),
		window.WithHeight(c.Height),
		window.WithVisible(c.Visible),
		window.WithDebugContext(c.Debug),
	}
}
