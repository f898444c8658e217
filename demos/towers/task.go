package towers

import (
	"fmt"
	"time"

	"demolab/demos/gfx"
	"demolab/hal"
	"demolab/sim/hanoi"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	colorBG    = gfx.RGB(0x10, 0x12, 0x18)
	colorBase  = gfx.RGB(0x6B, 0x4A, 0x2B)
	colorPeg   = gfx.RGB(0xC8, 0xB0, 0x80)
	colorSmall = gfx.RGB(0xFF, 0x50, 0x50)
	colorLarge = gfx.RGB(0x50, 0x90, 0xFF)
	colorText  = gfx.RGB(0xE0, 0xE8, 0xFF)
	colorHint  = gfx.RGB(0x90, 0xA0, 0xB8)
)

// landingTone is the cue length played when a disk settles.
const landingTone = 40 * time.Millisecond

// Task maps keys onto a hanoi.Engine and draws its disks.
type Task struct {
	eng *hanoi.Engine
	aud hal.Audio
	log *zap.Logger
	cam gfx.Camera

	dirty bool
}

// New builds the task. aud may be nil for a silent run.
func New(cfg hanoi.Config, aud hal.Audio, log *zap.Logger) (*Task, error) {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Task{aud: aud, log: log, dirty: true}
	eng, err := hanoi.NewEngine(cfg, func() { t.dirty = true }, log)
	if err != nil {
		return nil, err
	}
	t.eng = eng

	g := eng.Config().Geometry
	t.cam = gfx.Camera{
		Eye:    mgl32.Vec3{g.Width / 2, -g.Width * 0.9, g.Width * 0.6},
		Center: mgl32.Vec3{g.Width / 2, g.Depth / 2, g.PegHeight(eng.Config().Disks) / 3},
		Up:     hanoi.Up,
		FovY:   45,
		Near:   0.1,
		Far:    100,
	}
	return t, nil
}

func (t *Task) Engine() *hanoi.Engine { return t.eng }

func (t *Task) HandleKey(ev hal.KeyEvent) bool {
	if !ev.Press {
		return false
	}
	switch {
	case ev.Rune == 's':
		if !t.eng.RequestSolve() {
			t.log.Debug("solve request ignored",
				zap.Bool("solving", t.eng.Solving()),
				zap.Stringer("phase", t.eng.Phase()),
			)
		}
	case ev.Rune == '+' || ev.Rune == '=' || ev.Code == hal.KeyUp:
		t.log.Debug("speed", zap.Int("steps_per_sec", t.eng.Faster()))
	case ev.Rune == '-' || ev.Code == hal.KeyDown:
		t.log.Debug("speed", zap.Int("steps_per_sec", t.eng.Slower()))
	case ev.Rune == 'x':
		t.eng.Stop()
	case ev.Rune == 'r':
		if !t.eng.Reset() {
			t.log.Debug("reset refused while moving")
		}
	default:
		return false
	}
	t.dirty = true
	return true
}

func (t *Task) Tick(elapsed time.Duration) {
	disk, moving := t.eng.Animator().ActiveDisk()
	t.eng.Tick(elapsed)
	if moving && t.eng.Phase() == hanoi.PhaseIdle {
		t.landed(disk)
	}
}

// landed plays a cue pitched by disk size: small disks ring higher.
func (t *Task) landed(disk int) {
	if t.aud == nil {
		return
	}
	freq := 880 / (1 + 0.25*float64(disk))
	if err := t.aud.Tone(freq, landingTone); err != nil {
		t.log.Debug("landing cue dropped", zap.Error(err))
	}
}

// Dirty reports and clears the pending redraw request.
func (t *Task) Dirty() bool {
	d := t.dirty
	t.dirty = false
	return d
}

func (t *Task) Done() bool { return t.eng.Done() }

// RequestSolve starts a solve without a key press.
func (t *Task) RequestSolve() bool { return t.eng.RequestSolve() }

func (t *Task) Render(dst *gfx.RGB565Target) {
	dst.Clear(colorBG)
	w, h := dst.Size()
	proj := t.cam.Projector(w, h)
	cfg := t.eng.Config()
	g := cfg.Geometry

	// Base plate.
	left, ok1 := project(proj, mgl32.Vec3{0, g.Depth / 2, 0})
	right, ok2 := project(proj, mgl32.Vec3{g.Width, g.Depth / 2, 0})
	if ok1 && ok2 {
		dst.FillRect(int(left.X()), int(left.Y()), int(right.X()-left.X())+1, 4, colorBase)
	}

	pegTop := g.PegHeight(cfg.Disks)
	for peg := 0; peg < hanoi.NumPegs; peg++ {
		bottom := g.PegPosition(peg)
		b, ok1 := project(proj, bottom)
		tp, ok2 := project(proj, bottom.Add(mgl32.Vec3{0, 0, pegTop}))
		if !ok1 || !ok2 {
			continue
		}
		gfx.Line(dst, int(b.X()), int(b.Y()), int(tp.X()), int(tp.Y()), colorPeg)
		gfx.Line(dst, int(b.X())+1, int(b.Y()), int(tp.X())+1, int(tp.Y()), colorPeg)
	}

	for _, d := range t.eng.Disks() {
		t.drawDisk(dst, proj, d, g, cfg.Disks)
	}

	gfx.DrawText(dst, 4, 4, fmt.Sprintf("HANOI  disks %d  speed %d/s  moves %d  queued %d",
		cfg.Disks, t.eng.Speed(), t.eng.MovesMade(), t.eng.Remaining()), colorText)
	status := t.eng.Phase().String()
	switch {
	case t.eng.Solving():
		status = "solving  " + status
	case t.eng.Board().Solved(hanoi.NumPegs - 1):
		status = "solved"
	}
	gfx.DrawText(dst, 4, 6+gfx.FontHeight, status, colorHint)
	gfx.DrawText(dst, 4, h-gfx.FontHeight-4, "s solve  +/- speed  x stop  r reset  q quit", colorHint)
}

// drawDisk draws d as a slab, sheared along x by the tilt of its normal.
func (t *Task) drawDisk(dst *gfx.RGB565Target, proj gfx.Projector, d hanoi.Disk, g hanoi.Geometry, disks int) {
	r := g.DiskRadius(d.ID, disks)
	half := g.DiskHeight / 2
	c, ok := project(proj, d.Position)
	if !ok {
		return
	}
	edge, ok1 := project(proj, d.Position.Add(mgl32.Vec3{r, 0, 0}))
	top, ok2 := project(proj, d.Position.Add(mgl32.Vec3{0, 0, half * 0.9}))
	if !ok1 || !ok2 {
		return
	}
	rx := edge.X() - c.X()
	ry := c.Y() - top.Y()
	if ry < 1 {
		ry = 1
	}

	lean := float32(0)
	if d.Normal.Z() != 0 {
		lean = d.Normal.X() / d.Normal.Z()
	}

	shade := colorSmall.Lerp(colorLarge, float32(d.ID)/float32(max(disks-1, 1)))
	y0 := int(c.Y() - ry)
	y1 := int(c.Y() + ry)
	for y := y0; y <= y1; y++ {
		shift := -lean * (float32(y) - c.Y())
		x := int(c.X() - rx + shift)
		dst.FillRect(x, y, int(2*rx)+1, 1, shade)
	}
}

// project returns screen coordinates in x, y.
func project(p gfx.Projector, v mgl32.Vec3) (mgl32.Vec2, bool) {
	x, y, _, ok := p.Project(v)
	return mgl32.Vec2{x, y}, ok
}
