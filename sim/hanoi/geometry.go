package hanoi

import "github.com/go-gl/mathgl/mgl32"

// Geometry describes the board in world units. Z is up.
type Geometry struct {
	BaseRadius float32
	Width      float32
	Depth      float32
	DiskHeight float32
	SlotPitch  float32
}

// DefaultGeometry is a 10x5 table with unit peg bases.
func DefaultGeometry() Geometry {
	return Geometry{
		BaseRadius: 1,
		Width:      10,
		Depth:      5,
		DiskHeight: 0.4,
		SlotPitch:  0.35,
	}
}

// PegPosition returns the base center of peg.
func (g Geometry) PegPosition(peg int) mgl32.Vec3 {
	dx := g.Width / NumPegs
	return mgl32.Vec3{g.Width/2 + float32(peg-1)*dx, g.Depth / 2, 0}
}

// SlotPosition returns where a disk rests at height index h on peg.
func (g Geometry) SlotPosition(peg, h int) mgl32.Vec3 {
	p := g.PegPosition(peg)
	p[2] = float32(h+1) * g.SlotPitch
	return p
}

// Clearance is the altitude a lifted disk must reach before moving sideways.
func (g Geometry) Clearance(disks int) float32 {
	return float32(disks+1)*g.DiskHeight + 0.2*g.BaseRadius
}

// PegHeight is the drawn height of a peg.
func (g Geometry) PegHeight(disks int) float32 {
	return float32(disks+1)*g.DiskHeight - 0.1
}

// DiskRadius returns the radius of disk id in a set of disks.
func (g Geometry) DiskRadius(id, disks int) float32 {
	return float32(id+2) / float32(disks+1) * g.BaseRadius
}
