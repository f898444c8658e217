package fountain

import (
	"math/rand/v2"
	"testing"
	"time"

	"demolab/demos/gfx"
	"demolab/hal"
	"demolab/sim/particles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(t *testing.T) *Task {
	t.Helper()
	cfg := particles.DefaultConfig()
	cfg.Capacity = 200
	cfg.BatchSize = 20
	cfg.Lifetime = time.Second
	task, err := New(cfg, rand.New(rand.NewPCG(3, 4)), nil)
	require.NoError(t, err)
	return task
}

func TestTaskPauseFreezesPool(t *testing.T) {
	task := newTask(t)
	task.Tick(16 * time.Millisecond)
	require.Equal(t, 20, task.Pool().Alive())

	assert.True(t, task.HandleKey(hal.KeyEvent{Press: true, Rune: 'p'}))
	require.True(t, task.Paused())
	before := task.Pool().At(0)
	task.Tick(time.Second)
	assert.Equal(t, before, task.Pool().At(0))

	assert.False(t, task.HandleKey(hal.KeyEvent{Press: true, Rune: 'z'}))
	assert.False(t, task.HandleKey(hal.KeyEvent{Press: false, Rune: 'p'}))
	task.HandleKey(hal.KeyEvent{Press: true, Rune: ' '})
	assert.False(t, task.Paused())
}

func TestTaskRenderDrawsParticles(t *testing.T) {
	task := newTask(t)
	for i := 0; i < 10; i++ {
		task.Tick(50 * time.Millisecond)
	}

	const w, h = 160, 120
	dst := &gfx.RGB565Target{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
	task.Render(dst)

	bg := colorBG
	lit := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dst.At(x, y) != rgb565(bg) {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 20)
	assert.True(t, task.Dirty())
	assert.False(t, task.Done())
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := particles.DefaultConfig()
	cfg.BatchSize = 0
	_, err := New(cfg, nil, nil)
	assert.ErrorIs(t, err, particles.ErrInvalidConfig)
}

func rgb565(c gfx.Color) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}
