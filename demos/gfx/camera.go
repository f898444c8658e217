package gfx

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera looking from Eye at Center.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Near   float32
	Far    float32
}

// Projector maps world points onto a w x h viewport.
type Projector struct {
	view mgl32.Mat4
	proj mgl32.Mat4
	w, h int
}

func (c Camera) Projector(w, h int) Projector {
	aspect := float32(1)
	if h > 0 {
		aspect = float32(w) / float32(h)
	}
	return Projector{
		view: mgl32.LookAtV(c.Eye, c.Center, c.Up),
		proj: mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far),
		w:    w,
		h:    h,
	}
}

// Project returns screen coordinates (origin top-left) and depth in [0, 1].
// ok is false for points outside the near/far range.
func (p Projector) Project(v mgl32.Vec3) (x, y, depth float32, ok bool) {
	win := mgl32.Project(v, p.view, p.proj, 0, 0, p.w, p.h)
	if win.Z() < 0 || win.Z() > 1 {
		return 0, 0, 0, false
	}
	return win.X(), float32(p.h) - win.Y(), win.Z(), true
}

// ProjectInt is Project rounded to pixel coordinates.
func (p Projector) ProjectInt(v mgl32.Vec3) (x, y int, ok bool) {
	fx, fy, _, ok := p.Project(v)
	if !ok {
		return 0, 0, false
	}
	return int(fx + 0.5), int(fy + 0.5), true
}
