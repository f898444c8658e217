package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"demolab/app"
	"demolab/hal"
	"demolab/internal/buildinfo"
	"demolab/internal/config"
	"demolab/internal/logging"

	"go.uber.org/zap"
)

func main() {
	var (
		cfgPath  string
		demo     string
		headless bool
		hz       int
		ticks    uint64
		fast     bool
		seed     uint64
		version  bool
	)
	flag.StringVar(&cfgPath, "config", "", "Config file (.toml or .yaml).")
	flag.StringVar(&demo, "demo", "", "Demo to run: particles or hanoi.")
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&fast, "fast", false, "Headless only: run unthrottled on a virtual clock.")
	flag.Uint64Var(&seed, "seed", 0, "Particle RNG seed (0 = time seeded).")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "demo":
			cfg.Demo.Name = demo
		case "headless":
			cfg.Headless.Enabled = headless
		case "hz":
			cfg.Headless.Hz = hz
		case "ticks":
			cfg.Headless.Ticks = ticks
		case "fast":
			cfg.Headless.Fast = fast
		case "seed":
			cfg.Demo.Seed = seed
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	log, runID := logging.WithRun(log)

	if err := run(cfg, log); err != nil {
		log.Error("run failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("bye", zap.String("run_id", runID))
}

func run(cfg *config.Config, log *zap.Logger) error {
	newApp := func(h hal.HAL) (func() error, error) {
		return app.NewWithConfig(h, cfg, log)
	}

	if cfg.Headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		log.Info("starting headless",
			zap.String("demo", cfg.Demo.Name),
			zap.Int("hz", cfg.Headless.Hz),
			zap.Uint64("ticks", cfg.Headless.Ticks),
			zap.Bool("fast", cfg.Headless.Fast),
		)
		err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Enabled: true,
			Width:   cfg.Window.Width,
			Height:  cfg.Window.Height,
			Hz:      cfg.Headless.Hz,
			Ticks:   cfg.Headless.Ticks,
			Fast:    cfg.Headless.Fast,
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	log.Info("opening window", zap.String("demo", cfg.Demo.Name))
	return hal.RunWindow(hal.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Scale:  cfg.Window.Scale,
		TPS:    cfg.Window.TPS,
		Title:  cfg.Window.Title,
		Sound:  cfg.Window.Sound,
	}, newApp)
}
