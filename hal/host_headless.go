//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Width   int
	Height  int
	Hz      int
	Ticks   uint64
	// Fast drops the ticker and drives a virtual clock by 1/Hz per tick.
	Fast bool
}

// RunHeadless runs a demo without opening a window. It returns nil when the
// tick budget is spent or the step function returns ErrStop.
func RunHeadless(ctx context.Context, newApp func(HAL) (func() error, error), cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	var clk hostClock = newRealClock()
	if cfg.Fast {
		clk = newVirtualClock(d)
	}
	h := newHost(cfg.Width, cfg.Height, clk, nullAudio{})
	step, err := newApp(h)
	if err != nil {
		return err
	}
	return runHeadless(ctx, h, step, cfg, d)
}

func runHeadless(ctx context.Context, h *hostHAL, step func() error, cfg HeadlessConfig, d time.Duration) error {
	var tickC <-chan time.Time
	if !cfg.Fast {
		t := time.NewTicker(d)
		defer t.Stop()
		tickC = t.C
	}

	var tick uint64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !cfg.Fast {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tickC:
			}
		}

		h.clk.advance()
		if step != nil {
			if err := step(); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
		}
		tick++
		if cfg.Ticks > 0 && tick >= cfg.Ticks {
			return nil
		}
	}
}
