package app

import (
	"fmt"
	"math/rand/v2"
	"time"

	"demolab/demos/fountain"
	"demolab/demos/gfx"
	"demolab/demos/towers"
	"demolab/hal"
	"demolab/internal/config"
	"demolab/sim/hanoi"
	"demolab/sim/particles"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Demo is a tick-driven scene the app drives once per host frame.
type Demo interface {
	HandleKey(ev hal.KeyEvent) bool
	Tick(elapsed time.Duration)
	// Dirty reports whether Render should run this frame.
	Dirty() bool
	Done() bool
	Render(dst *gfx.RGB565Target)
}

// maxFrameStep caps the time handed to a demo after a stall.
const maxFrameStep = 250 * time.Millisecond

type App struct {
	log  *zap.Logger
	demo Demo

	fb     hal.Framebuffer
	target *gfx.RGB565Target
	kbd    hal.Keyboard
	clock  hal.Clock

	last         time.Duration
	frames       uint64
	exitWhenDone bool
}

// New builds the demo named by cfg.Demo.Name on top of h.
func New(h hal.HAL, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if h.Clock() == nil {
		return nil, fmt.Errorf("app: HAL has no clock")
	}

	a := &App{
		log:   log,
		clock: h.Clock(),
	}
	if d := h.Display(); d != nil {
		a.fb = d.Framebuffer()
		if t, ok := gfx.FromFramebuffer(a.fb); ok {
			a.target = t
		} else {
			log.Warn("no RGB565 framebuffer, rendering disabled")
		}
	}
	if in := h.Input(); in != nil {
		a.kbd = in.Keyboard()
	}

	demo, err := newDemo(cfg, h.Audio(), log)
	if err != nil {
		return nil, err
	}
	a.demo = demo
	a.exitWhenDone = cfg.Demo.Name == "hanoi" && cfg.Hanoi.ExitWhenDone
	a.last = a.clock.Now()
	log.Info("demo ready", zap.String("demo", cfg.Demo.Name))
	return a, nil
}

// NewWithConfig returns the step function for the host runners.
func NewWithConfig(h hal.HAL, cfg *config.Config, log *zap.Logger) (func() error, error) {
	a, err := New(h, cfg, log)
	if err != nil {
		return nil, err
	}
	return guard(a.Step, a.fb, a.log), nil
}

func newDemo(cfg *config.Config, aud hal.Audio, log *zap.Logger) (Demo, error) {
	switch cfg.Demo.Name {
	case "particles":
		var rng *rand.Rand
		if s := cfg.Demo.Seed; s != 0 {
			rng = rand.New(rand.NewPCG(s, s^0x9E3779B97F4A7C15))
		}
		return fountain.New(particleConfig(cfg.Particles), rng, log.Named("particles"))
	case "hanoi":
		t, err := towers.New(hanoiConfig(cfg.Hanoi), aud, log.Named("hanoi"))
		if err != nil {
			return nil, err
		}
		if cfg.Hanoi.AutoSolve {
			t.RequestSolve()
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: unknown demo %q", config.ErrInvalidConfig, cfg.Demo.Name)
}

func particleConfig(c config.ParticlesConfig) particles.Config {
	e := particles.DefaultEmitter()
	e.Spread = c.Spread
	e.Direction = mgl32.Vec3(c.Direction)
	e.Jitter = mgl32.Vec3(c.Jitter)
	return particles.Config{
		Capacity:  c.Capacity,
		Lifetime:  c.Lifetime,
		BatchSize: c.BatchSize,
		Emitter:   e,
	}
}

func hanoiConfig(c config.HanoiConfig) hanoi.Config {
	hc := hanoi.DefaultConfig()
	hc.Disks = c.Disks
	hc.Speed = c.Speed
	hc.MaxSpeed = c.MaxSpeed
	hc.SpeedStep = c.SpeedStep
	return hc
}

// Step handles input, advances the demo by the clock delta and redraws when asked.
// It returns hal.ErrStop on quit or, with exit_when_done, once the demo finishes.
func (a *App) Step() error {
	if a.drainKeys() {
		a.log.Info("quit requested", zap.Uint64("frames", a.frames))
		return hal.ErrStop
	}

	now := a.clock.Now()
	elapsed := now - a.last
	a.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > maxFrameStep {
		elapsed = maxFrameStep
	}
	a.demo.Tick(elapsed)

	if a.demo.Dirty() && a.target != nil {
		a.demo.Render(a.target)
		if err := a.fb.Present(); err != nil {
			return fmt.Errorf("present: %w", err)
		}
		a.frames++
	}

	if a.exitWhenDone && a.demo.Done() {
		a.log.Info("demo finished", zap.Uint64("frames", a.frames), zap.Duration("clock", now))
		return hal.ErrStop
	}
	return nil
}

// Frames counts presented frames.
func (a *App) Frames() uint64 { return a.frames }

func (a *App) Demo() Demo { return a.demo }

// drainKeys forwards pending key events and reports whether quit was pressed.
func (a *App) drainKeys() bool {
	if a.kbd == nil {
		return false
	}
	ch := a.kbd.Events()
	for {
		select {
		case ev := <-ch:
			if ev.Press && (ev.Code == hal.KeyEscape || ev.Rune == 'q') {
				return true
			}
			a.demo.HandleKey(ev)
		default:
			return false
		}
	}
}
