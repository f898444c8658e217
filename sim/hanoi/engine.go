package hanoi

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultSpeed     = 100
	DefaultMaxSpeed  = 1000
	DefaultSpeedStep = 20
)

// Config sizes the puzzle and its pacing.
type Config struct {
	Disks     int
	Speed     int
	MaxSpeed  int
	SpeedStep int
	Geometry  Geometry

	// Step and StepU override the animator increments when positive.
	Step  float32
	StepU float64
}

// DefaultConfig is eight disks at speed 100.
func DefaultConfig() Config {
	return Config{
		Disks:     8,
		Speed:     DefaultSpeed,
		MaxSpeed:  DefaultMaxSpeed,
		SpeedStep: DefaultSpeedStep,
		Geometry:  DefaultGeometry(),
	}
}

// Engine owns the board, the pending moves and the animator, and paces them.
type Engine struct {
	cfg    Config
	log    *zap.Logger
	board  *Board
	disks  []Disk
	anim   *Animator
	queue  MoveQueue
	redraw func()

	solving bool
	speed   int
	pending time.Duration
	moves   int
}

// NewEngine builds an engine in the start layout. redraw may be nil.
func NewEngine(cfg Config, redraw func(), log *zap.Logger) (*Engine, error) {
	if cfg.Disks < 0 || cfg.Disks > MaxDisks {
		return nil, fmt.Errorf("hanoi: disk count %d outside [0,%d]", cfg.Disks, MaxDisks)
	}
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultSpeed
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = DefaultMaxSpeed
	}
	if cfg.SpeedStep <= 0 {
		cfg.SpeedStep = DefaultSpeedStep
	}
	if cfg.Geometry == (Geometry{}) {
		cfg.Geometry = DefaultGeometry()
	}
	if log == nil {
		log = zap.NewNop()
	}

	e := &Engine{
		cfg:    cfg,
		log:    log,
		board:  NewBoard(cfg.Disks),
		disks:  make([]Disk, cfg.Disks),
		redraw: redraw,
		speed:  clampInt(cfg.Speed, 1, cfg.MaxSpeed),
	}
	e.anim = NewAnimator(e.board, cfg.Geometry, e.disks, redraw)
	e.anim.SetSteps(cfg.Step, cfg.StepU)
	e.placeDisks()
	return e, nil
}

func (e *Engine) placeDisks() {
	n := e.cfg.Disks
	for i := range e.disks {
		e.disks[i] = Disk{
			ID:       i,
			Position: e.cfg.Geometry.SlotPosition(0, n-1-i),
			Normal:   Up,
		}
	}
}

// RequestSolve queues the full solution. It only acts when no solve is running
// and peg 0 holds every disk.
func (e *Engine) RequestSolve() bool {
	if e.solving || !e.anim.Idle() || !e.board.Solved(0) {
		return false
	}
	moves := Solve(e.cfg.Disks)
	if len(moves) == 0 {
		return false
	}
	e.queue.Push(moves...)
	e.solving = true
	e.log.Info("solve started", zap.Int("disks", e.cfg.Disks), zap.Int("moves", len(moves)))
	return true
}

// Tick advances the puzzle by elapsed wall time. Work happens at most once per
// 1/speed seconds.
func (e *Engine) Tick(elapsed time.Duration) {
	e.pending += elapsed
	if e.pending < e.Interval() {
		return
	}
	e.pending = 0

	if e.solving && e.anim.Idle() {
		e.nextMove()
	}
	if !e.anim.Idle() {
		e.anim.Step()
	}
}

func (e *Engine) nextMove() {
	m, ok := e.queue.Pop()
	if !ok {
		e.solving = false
		return
	}
	if e.anim.BeginMove(m.From, m.To) {
		e.moves++
	} else {
		e.log.Warn("move rejected", zap.Stringer("move", m))
	}
	if e.queue.Len() == 0 {
		e.solving = false
		e.log.Info("solve queued out", zap.Int("moves", e.moves))
	}
}

// Interval is the minimum wall time between engine steps, in whole
// milliseconds. Speeds above 1000 step on every tick.
func (e *Engine) Interval() time.Duration {
	return time.Duration(1000/e.speed) * time.Millisecond
}

// AdjustSpeed changes the speed by delta, clamped to [1, MaxSpeed].
func (e *Engine) AdjustSpeed(delta int) int {
	e.speed = clampInt(e.speed+delta, 1, e.cfg.MaxSpeed)
	return e.speed
}

// Faster and Slower adjust the speed by the configured step.
func (e *Engine) Faster() int { return e.AdjustSpeed(e.cfg.SpeedStep) }
func (e *Engine) Slower() int { return e.AdjustSpeed(-e.cfg.SpeedStep) }

// Stop drops pending moves. A move already in flight still completes.
func (e *Engine) Stop() int {
	n := e.queue.Len()
	e.queue.Clear()
	if e.solving {
		e.log.Info("solve stopped", zap.Int("dropped", n))
	}
	e.solving = false
	return n
}

// Reset restores the start layout. It refuses while anything is moving.
func (e *Engine) Reset() bool {
	if e.solving || !e.anim.Idle() {
		return false
	}
	e.board.Reset()
	e.placeDisks()
	e.moves = 0
	e.pending = 0
	if e.redraw != nil {
		e.redraw()
	}
	return true
}

func (e *Engine) Speed() int          { return e.speed }
func (e *Engine) Solving() bool       { return e.solving }
func (e *Engine) MovesMade() int      { return e.moves }
func (e *Engine) Remaining() int      { return e.queue.Len() }
func (e *Engine) Config() Config      { return e.cfg }
func (e *Engine) Phase() Phase        { return e.anim.Phase() }
func (e *Engine) Board() *Board       { return e.board }
func (e *Engine) Animator() *Animator { return e.anim }

// Done reports whether the puzzle sits solved on peg 2 with nothing in flight.
func (e *Engine) Done() bool {
	return !e.solving && e.anim.Idle() && e.board.Solved(2)
}

// Disks returns a snapshot of every disk for rendering.
func (e *Engine) Disks() []Disk {
	return append([]Disk(nil), e.disks...)
}

// Pegs returns a snapshot of peg occupancy.
func (e *Engine) Pegs() [NumPegs][]int { return e.board.Pegs() }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
