package particles

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T, capacity, batch int, life time.Duration) *Pool {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Capacity = capacity
	cfg.BatchSize = batch
	cfg.Lifetime = life
	p, err := New(cfg, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return p
}

func snapshot(p *Pool) []Particle {
	out := make([]Particle, p.Len())
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

func TestPoolFirstTickSpawnsBatch(t *testing.T) {
	p := newTestPool(t, 8, 3, time.Second)
	assert.Zero(t, p.Alive())

	require.True(t, p.Tick(16*time.Millisecond))
	assert.Equal(t, 3, p.Next())
	assert.Equal(t, 3, p.Alive())
	assert.Equal(t, uint64(1), p.Batches())
	for i := 0; i < 3; i++ {
		assert.Equal(t, time.Second, p.At(i).Life)
	}
}

func TestPoolRespawnTouchesOnlyCursorWindow(t *testing.T) {
	const (
		capacity = 5
		batch    = 2
		elapsed  = 10 * time.Millisecond
	)
	p := newTestPool(t, capacity, batch, 25*time.Millisecond)

	for tick := 0; tick < 50; tick++ {
		before := snapshot(p)
		start := p.Next()
		fired := p.Tick(elapsed)

		require.Equal(t, capacity, p.Len())
		inWindow := map[int]bool{}
		if fired {
			for k := 0; k < batch; k++ {
				inWindow[(start+k)%capacity] = true
			}
			assert.Equal(t, (start+batch)%capacity, p.Next())
		} else {
			assert.Equal(t, start, p.Next())
		}

		for i, prev := range before {
			got := p.At(i)
			if inWindow[i] {
				assert.Equal(t, 25*time.Millisecond, got.Life, "tick %d slot %d", tick, i)
				continue
			}
			assert.Equal(t, prev.Life-elapsed, got.Life, "tick %d slot %d", tick, i)
		}
	}
}

func TestPoolExpiryTriggersRespawn(t *testing.T) {
	const (
		life    = 100 * time.Millisecond
		elapsed = 30 * time.Millisecond
	)
	// Capacity equals batch size so the cursor returns to slot 0 after every batch.
	p := newTestPool(t, 4, 4, life)
	require.True(t, p.Tick(elapsed))
	require.Equal(t, 0, p.Next())

	ticks := int((life + elapsed - 1) / elapsed)
	for i := 1; i < ticks; i++ {
		require.False(t, p.Tick(elapsed), "tick %d fired early", i)
		assert.Positive(t, p.At(0).Life)
	}
	require.True(t, p.Tick(elapsed))
	assert.Equal(t, life, p.At(0).Life)
	assert.Equal(t, uint64(2), p.Batches())
}

func TestPoolTickMovesParticlesInPlace(t *testing.T) {
	p := newTestPool(t, 4, 4, time.Minute)
	p.Tick(0)

	before := snapshot(p)
	p.Tick(500 * time.Millisecond)
	for i, prev := range before {
		got := p.At(i)
		want := prev.Position.Add(prev.Velocity.Mul(0.5))
		assert.True(t, want.ApproxEqualThreshold(got.Position, 1e-5), "slot %d: want %v got %v", i, want, got.Position)
		assert.Equal(t, prev.Life-500*time.Millisecond, got.Life)
		assert.Equal(t, prev.Velocity, got.Velocity)
	}
}

func TestPoolRespawnStaysInEmitterBounds(t *testing.T) {
	cfg := Config{
		Capacity:  64,
		Lifetime:  time.Second,
		BatchSize: 64,
		Emitter: Emitter{
			Origin:    mgl32.Vec3{1, 2, 3},
			Spread:    0.5,
			Direction: mgl32.Vec3{0, 4, 0},
			Jitter:    mgl32.Vec3{1, 0.5, 0},
		},
	}
	p, err := New(cfg, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	p.Tick(0)

	distinct := map[mgl32.Vec3]bool{}
	for i := 0; i < p.Len(); i++ {
		s := p.At(i)
		d := s.Position.Sub(cfg.Emitter.Origin)
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, abs(d[axis]), cfg.Emitter.Spread)
		}
		v := s.Velocity.Sub(cfg.Emitter.Direction)
		for axis := 0; axis < 3; axis++ {
			assert.LessOrEqual(t, abs(v[axis]), cfg.Emitter.Jitter[axis])
		}
		distinct[s.Position] = true
	}
	assert.Greater(t, len(distinct), 2, "positions should not collapse onto a couple of values")
}

func TestPoolDeterministicForSeed(t *testing.T) {
	a := newTestPool(t, 32, 8, 50*time.Millisecond)
	b := newTestPool(t, 32, 8, 50*time.Millisecond)
	for i := 0; i < 40; i++ {
		a.Tick(7 * time.Millisecond)
		b.Tick(7 * time.Millisecond)
	}
	assert.Equal(t, a.Positions(nil), b.Positions(nil))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	base := DefaultConfig()
	cases := map[string]func(*Config){
		"zero capacity":   func(c *Config) { c.Capacity = 0 },
		"zero batch":      func(c *Config) { c.BatchSize = 0 },
		"batch too large": func(c *Config) { c.BatchSize = c.Capacity + 1 },
		"zero lifetime":   func(c *Config) { c.Lifetime = 0 },
		"negative spread": func(c *Config) { c.Emitter.Spread = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			_, err := New(cfg, nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
