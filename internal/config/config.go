package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"demolab/sim/hanoi"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Demo      DemoConfig      `toml:"demo" yaml:"demo"`
	Window    WindowConfig    `toml:"window" yaml:"window"`
	Headless  HeadlessConfig  `toml:"headless" yaml:"headless"`
	Particles ParticlesConfig `toml:"particles" yaml:"particles"`
	Hanoi     HanoiConfig     `toml:"hanoi" yaml:"hanoi"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
}

type DemoConfig struct {
	Name string `toml:"name" yaml:"name"` // "particles" or "hanoi"
	Seed uint64 `toml:"seed" yaml:"seed"` // 0 = time seeded
}

type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Scale  int    `toml:"scale" yaml:"scale"`
	TPS    int    `toml:"tps" yaml:"tps"`
	Title  string `toml:"title" yaml:"title"`
	Sound  bool   `toml:"sound" yaml:"sound"`
}

type HeadlessConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Hz      int    `toml:"hz" yaml:"hz"`
	Ticks   uint64 `toml:"ticks" yaml:"ticks"` // 0 = run until stopped
	Fast    bool   `toml:"fast" yaml:"fast"`
}

type ParticlesConfig struct {
	Capacity  int           `toml:"capacity" yaml:"capacity"`
	Lifetime  time.Duration `toml:"lifetime" yaml:"lifetime"`
	BatchSize int           `toml:"batch_size" yaml:"batch_size"`
	Spread    float32       `toml:"spread" yaml:"spread"`
	Direction [3]float32    `toml:"direction" yaml:"direction"`
	Jitter    [3]float32    `toml:"jitter" yaml:"jitter"`
}

type HanoiConfig struct {
	Disks        int  `toml:"disks" yaml:"disks"`
	Speed        int  `toml:"speed" yaml:"speed"` // animation steps per second
	MaxSpeed     int  `toml:"max_speed" yaml:"max_speed"`
	SpeedStep    int  `toml:"speed_step" yaml:"speed_step"`
	AutoSolve    bool `toml:"auto_solve" yaml:"auto_solve"`
	ExitWhenDone bool `toml:"exit_when_done" yaml:"exit_when_done"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads path over the defaults. The format follows the extension:
// .toml or .yaml/.yml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	default:
		return nil, fmt.Errorf("parse config %s: unknown format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Demo: DemoConfig{
			Name: "hanoi",
		},
		Window: WindowConfig{
			Width:  320,
			Height: 240,
			Scale:  3,
			TPS:    60,
			Title:  "demolab",
			Sound:  true,
		},
		Headless: HeadlessConfig{
			Hz: 60,
		},
		Particles: ParticlesConfig{
			Capacity:  10000,
			Lifetime:  10 * time.Second,
			BatchSize: 10,
			Spread:    0.25,
			Direction: [3]float32{0, 1.2, 0},
			Jitter:    [3]float32{0.8, 0.6, 0.8},
		},
		Hanoi: HanoiConfig{
			Disks:     8,
			Speed:     100,
			MaxSpeed:  1000,
			SpeedStep: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Demo.Name == "particles" || c.Demo.Name == "hanoi", "demo.name %q", c.Demo.Name)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Headless.Hz > 0, "headless.hz %d", c.Headless.Hz)
	check(c.Particles.Capacity > 0, "particles.capacity %d", c.Particles.Capacity)
	check(c.Particles.BatchSize > 0 && c.Particles.BatchSize <= c.Particles.Capacity,
		"particles.batch_size %d", c.Particles.BatchSize)
	check(c.Particles.Lifetime > 0, "particles.lifetime %s", c.Particles.Lifetime)
	check(c.Particles.Spread >= 0, "particles.spread %g", c.Particles.Spread)
	check(c.Hanoi.Disks >= 0 && c.Hanoi.Disks <= hanoi.MaxDisks, "hanoi.disks %d outside [0,%d]", c.Hanoi.Disks, hanoi.MaxDisks)
	check(c.Hanoi.Speed > 0, "hanoi.speed %d", c.Hanoi.Speed)
	check(c.Hanoi.MaxSpeed >= c.Hanoi.Speed, "hanoi.max_speed %d below speed %d", c.Hanoi.MaxSpeed, c.Hanoi.Speed)
	check(c.Hanoi.SpeedStep > 0, "hanoi.speed_step %d", c.Hanoi.SpeedStep)
	check(c.Logging.Format == "json" || c.Logging.Format == "console", "logging.format %q", c.Logging.Format)
	return errors.Join(errs...)
}
