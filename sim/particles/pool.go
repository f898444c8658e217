package particles

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultCapacity  = 10000
	DefaultLifetime  = 10 * time.Second
	DefaultBatchSize = 10
)

var ErrInvalidConfig = errors.New("particles: invalid config")

// Particle is one pool slot. Velocity is in units per second.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Life     time.Duration
}

// Alive reports whether the particle still has life left.
func (p Particle) Alive() bool { return p.Life > 0 }

// Emitter bounds the random state given to respawned particles.
type Emitter struct {
	Origin mgl32.Vec3
	// Spread is the half-extent of the cube around Origin that positions are drawn from.
	Spread float32
	// Direction is the mean velocity.
	Direction mgl32.Vec3
	// Jitter is the half-extent added to each velocity axis.
	Jitter mgl32.Vec3
}

// DefaultEmitter sprays upward from the origin with a wide horizontal fan.
func DefaultEmitter() Emitter {
	return Emitter{
		Spread:    0.25,
		Direction: mgl32.Vec3{0, 1.2, 0},
		Jitter:    mgl32.Vec3{0.8, 0.6, 0.8},
	}
}

// Config sizes a pool.
type Config struct {
	Capacity  int
	Lifetime  time.Duration
	BatchSize int
	Emitter   Emitter
}

func DefaultConfig() Config {
	return Config{
		Capacity:  DefaultCapacity,
		Lifetime:  DefaultLifetime,
		BatchSize: DefaultBatchSize,
		Emitter:   DefaultEmitter(),
	}
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d", ErrInvalidConfig, c.Capacity)
	case c.BatchSize <= 0 || c.BatchSize > c.Capacity:
		return fmt.Errorf("%w: batch size %d (capacity %d)", ErrInvalidConfig, c.BatchSize, c.Capacity)
	case c.Lifetime <= 0:
		return fmt.Errorf("%w: lifetime %s", ErrInvalidConfig, c.Lifetime)
	case c.Emitter.Spread < 0:
		return fmt.Errorf("%w: negative spread", ErrInvalidConfig)
	}
	return nil
}

// Pool is a fixed-capacity ring of particles. Slots are never removed; an
// expired slot under the cursor triggers a batch respawn.
type Pool struct {
	cfg     Config
	slots   []Particle
	next    int
	rng     *rand.Rand
	batches uint64
}

// New returns a pool of zeroed slots. rng may be nil for a time-seeded source.
func New(cfg Config, rng *rand.Rand) (*Pool, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Pool{
		cfg:   cfg,
		slots: make([]Particle, cfg.Capacity),
		rng:   rng,
	}, nil
}

// Tick ages and moves every particle, then respawns a batch if the slot under
// the cursor has expired. It reports whether a batch fired.
func (p *Pool) Tick(elapsed time.Duration) bool {
	dt := float32(elapsed.Seconds())
	for i := range p.slots {
		s := &p.slots[i]
		s.Life -= elapsed
		s.Position = s.Position.Add(s.Velocity.Mul(dt))
	}
	if p.slots[p.next].Life > 0 {
		return false
	}
	p.respawn()
	return true
}

func (p *Pool) respawn() {
	e := &p.cfg.Emitter
	for i := 0; i < p.cfg.BatchSize; i++ {
		s := &p.slots[p.next]
		s.Position = e.Origin.Add(mgl32.Vec3{
			p.uniform(e.Spread),
			p.uniform(e.Spread),
			p.uniform(e.Spread),
		})
		s.Velocity = e.Direction.Add(mgl32.Vec3{
			p.uniform(e.Jitter[0]),
			p.uniform(e.Jitter[1]),
			p.uniform(e.Jitter[2]),
		})
		s.Life = p.cfg.Lifetime
		p.next = (p.next + 1) % len(p.slots)
	}
	p.batches++
}

// uniform draws from [-r, r).
func (p *Pool) uniform(r float32) float32 {
	if r == 0 {
		return 0
	}
	return (p.rng.Float32()*2 - 1) * r
}

func (p *Pool) Len() int { return len(p.slots) }

// Next is the slot the next respawn starts at.
func (p *Pool) Next() int { return p.next }

// Batches counts respawn batches since construction.
func (p *Pool) Batches() uint64 { return p.batches }

func (p *Pool) Config() Config { return p.cfg }

// At returns a copy of slot i.
func (p *Pool) At(i int) Particle { return p.slots[i] }

// Alive counts slots with life remaining.
func (p *Pool) Alive() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].Life > 0 {
			n++
		}
	}
	return n
}

// Positions fills dst with every particle position, reusing its storage.
func (p *Pool) Positions(dst []mgl32.Vec3) []mgl32.Vec3 {
	dst = dst[:0]
	for i := range p.slots {
		dst = append(dst, p.slots[i].Position)
	}
	return dst
}
