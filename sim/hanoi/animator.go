package hanoi

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Phase is the animator state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseLifting
	PhaseTranslating
	PhaseLowering
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLifting:
		return "lifting"
	case PhaseTranslating:
		return "translating"
	case PhaseLowering:
		return "lowering"
	default:
		return "unknown"
	}
}

const (
	defaultStep  = 0.05
	defaultStepU = 0.015
	defaultTilt  = 0.35
)

// Up is the resting disk normal.
var Up = mgl32.Vec3{0, 0, 1}

// Disk is the visual state of one disk.
type Disk struct {
	ID       int
	Position mgl32.Vec3
	Normal   mgl32.Vec3
}

// Animator moves one disk at a time through lift, translate and lower.
//
// BeginMove commits the move on the board right away; Step only catches the
// visual position up with it.
type Animator struct {
	board  *Board
	geom   Geometry
	disks  []Disk
	redraw func()

	step  float32
	stepU float64
	tilt  float64

	phase     Phase
	active    int
	u         float64
	start     mgl32.Vec3
	end       mgl32.Vec3
	direction int
	clearance float32
}

// NewAnimator returns an idle animator over board. disks is indexed by disk id
// and is mutated in place.
func NewAnimator(board *Board, geom Geometry, disks []Disk, redraw func()) *Animator {
	return &Animator{
		board:     board,
		geom:      geom,
		disks:     disks,
		redraw:    redraw,
		step:      defaultStep,
		stepU:     defaultStepU,
		tilt:      defaultTilt,
		active:    -1,
		clearance: geom.Clearance(board.Disks()),
	}
}

// SetSteps overrides the per-tick distance and interpolation increments.
// Non-positive values keep the current setting.
func (a *Animator) SetSteps(step float32, stepU float64) {
	if step > 0 {
		a.step = step
	}
	if stepU > 0 {
		a.stepU = stepU
	}
}

func (a *Animator) Phase() Phase { return a.phase }

func (a *Animator) Idle() bool { return a.phase == PhaseIdle }

// U returns the horizontal interpolation parameter.
func (a *Animator) U() float64 { return a.u }

// Direction is +1 when moving toward higher pegs, -1 otherwise, 0 when idle.
func (a *Animator) Direction() int { return a.direction }

// ActiveDisk returns the disk in flight.
func (a *Animator) ActiveDisk() (int, bool) {
	if a.active < 0 {
		return 0, false
	}
	return a.active, true
}

// Destination returns the resting position of the disk in flight.
func (a *Animator) Destination() mgl32.Vec3 { return a.end }

// BeginMove starts moving the top disk of from onto to. It returns false and
// changes nothing when the request is invalid or a move is already in flight.
func (a *Animator) BeginMove(from, to int) bool {
	if a.phase != PhaseIdle || from == to || !validPeg(from) || !validPeg(to) {
		return false
	}
	disk, h, ok := a.board.Top(from)
	if !ok || disk >= len(a.disks) {
		return false
	}
	if a.board.CanPlace(to, disk) != nil {
		return false
	}

	dest := a.board.Height(to)
	a.board.RemoveTop(from)
	_ = a.board.Place(to, disk)

	a.active = disk
	a.start = a.geom.SlotPosition(from, h)
	a.end = a.geom.SlotPosition(to, dest)
	a.u = 0
	a.direction = 1
	if to < from {
		a.direction = -1
	}
	a.phase = PhaseLifting
	a.requestRedraw()
	return true
}

// Step advances the disk in flight by one tick. It reports whether a move was
// in progress.
func (a *Animator) Step() bool {
	if a.phase == PhaseIdle {
		return false
	}
	d := &a.disks[a.active]
	entered := a.phase

	switch a.phase {
	case PhaseLifting:
		if d.Position[2] < a.clearance {
			d.Position[2] += a.step
			break
		}
		a.phase = PhaseTranslating
		fallthrough

	case PhaseTranslating:
		a.advanceU()
		dx := a.end[0] - d.Position[0]
		switch {
		case abs32(dx) <= a.step:
			d.Position[0] = a.end[0]
		case dx > 0:
			d.Position[0] += a.step
		default:
			d.Position[0] -= a.step
		}
		if d.Position[0] != a.end[0] {
			d.Normal = a.tilted()
			break
		}
		a.phase = PhaseLowering
		fallthrough

	case PhaseLowering:
		if entered == PhaseLowering {
			a.advanceU()
		}
		if a.u < 1 {
			break
		}
		d.Normal = Up
		if d.Position[2] > a.end[2] {
			d.Position[2] -= a.step
			if d.Position[2] > a.end[2] {
				break
			}
		}
		a.finish(d)
	}

	a.requestRedraw()
	return true
}

func (a *Animator) finish(d *Disk) {
	d.Position = a.end
	d.Normal = Up
	a.active = -1
	a.u = 0
	a.direction = 0
	a.phase = PhaseIdle
}

func (a *Animator) advanceU() {
	a.u += a.stepU
	if a.u > 1 {
		a.u = 1
	}
	if a.u < 0 {
		a.u = 0
	}
}

func (a *Animator) tilted() mgl32.Vec3 {
	lean := float32(float64(a.direction) * math.Sin(math.Pi*a.u) * a.tilt)
	return mgl32.Vec3{lean, 0, 1}.Normalize()
}

func (a *Animator) requestRedraw() {
	if a.redraw != nil {
		a.redraw()
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
