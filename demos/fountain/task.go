package fountain

import (
	"fmt"
	"math/rand/v2"
	"time"

	"demolab/demos/gfx"
	"demolab/hal"
	"demolab/sim/particles"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	colorBG    = gfx.RGB(0x05, 0x08, 0x12)
	colorHot   = gfx.RGB(0xFF, 0xD1, 0x4A)
	colorCold  = gfx.RGB(0x40, 0x60, 0xFF)
	colorText  = gfx.RGB(0xE0, 0xE8, 0xFF)
	colorHint  = gfx.RGB(0x90, 0xA0, 0xB8)
	colorFloor = gfx.RGB(0x30, 0x38, 0x48)
)

// Task renders a particle pool as a fountain.
type Task struct {
	pool *particles.Pool
	log  *zap.Logger
	cam  gfx.Camera

	paused bool
}

func New(cfg particles.Config, rng *rand.Rand, log *zap.Logger) (*Task, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pool, err := particles.New(cfg, rng)
	if err != nil {
		return nil, err
	}
	log.Info("particle pool ready",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("batch", cfg.BatchSize),
		zap.Duration("lifetime", cfg.Lifetime),
	)
	return &Task{
		pool: pool,
		log:  log,
		cam: gfx.Camera{
			Eye:    mgl32.Vec3{0, 6, 18},
			Center: mgl32.Vec3{0, 5, 0},
			Up:     mgl32.Vec3{0, 1, 0},
			FovY:   60,
			Near:   0.1,
			Far:    100,
		},
	}, nil
}

func (t *Task) Pool() *particles.Pool { return t.pool }
func (t *Task) Paused() bool          { return t.paused }

func (t *Task) HandleKey(ev hal.KeyEvent) bool {
	if !ev.Press {
		return false
	}
	switch ev.Rune {
	case 'p', ' ':
		t.paused = !t.paused
		t.log.Debug("pause toggled", zap.Bool("paused", t.paused))
		return true
	}
	return false
}

func (t *Task) Tick(elapsed time.Duration) {
	if t.paused {
		return
	}
	if t.pool.Tick(elapsed) {
		t.log.Debug("batch respawned", zap.Int("next", t.pool.Next()), zap.Uint64("batches", t.pool.Batches()))
	}
}

// Dirty is always true: every live particle moves on every tick.
func (t *Task) Dirty() bool { return true }

func (t *Task) Done() bool { return false }

func (t *Task) Render(dst *gfx.RGB565Target) {
	dst.Clear(colorBG)
	w, h := dst.Size()
	proj := t.cam.Projector(w, h)

	// Floor cross at the emitter.
	if x0, y0, ok := proj.ProjectInt(mgl32.Vec3{-4, 0, 0}); ok {
		if x1, y1, ok := proj.ProjectInt(mgl32.Vec3{4, 0, 0}); ok {
			gfx.Line(dst, x0, y0, x1, y1, colorFloor)
		}
	}
	if x0, y0, ok := proj.ProjectInt(mgl32.Vec3{0, 0, -4}); ok {
		if x1, y1, ok := proj.ProjectInt(mgl32.Vec3{0, 0, 4}); ok {
			gfx.Line(dst, x0, y0, x1, y1, colorFloor)
		}
	}

	life := float32(t.pool.Config().Lifetime)
	for i := 0; i < t.pool.Len(); i++ {
		p := t.pool.At(i)
		if !p.Alive() {
			continue
		}
		x, y, ok := proj.ProjectInt(p.Position)
		if !ok {
			continue
		}
		dst.SetPixel(x, y, colorCold.Lerp(colorHot, float32(p.Life)/life))
	}

	gfx.DrawText(dst, 4, 4, fmt.Sprintf("PARTICLES  alive %d/%d  batches %d",
		t.pool.Alive(), t.pool.Len(), t.pool.Batches()), colorText)
	hint := "p pause  q quit"
	if t.paused {
		hint = "PAUSED  p resume  q quit"
	}
	gfx.DrawText(dst, 4, h-gfx.FontHeight-4, hint, colorHint)
}
