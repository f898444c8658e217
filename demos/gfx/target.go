package gfx

import "demolab/hal"

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RGB565Target renders into an RGB565 framebuffer buffer.
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

// FromFramebuffer wraps fb. It returns false for non-RGB565 or empty buffers.
func FromFramebuffer(fb hal.Framebuffer) (*RGB565Target, bool) {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, false
	}
	t := &RGB565Target{
		Buf:    fb.Buffer(),
		Stride: fb.StrideBytes(),
		W:      fb.Width(),
		H:      fb.Height(),
	}
	if t.Buf == nil || t.W <= 0 || t.H <= 0 {
		return nil, false
	}
	return t, true
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) Clear(c Color) {
	t.FillRect(0, 0, t.W, t.H, c)
}

func (t *RGB565Target) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return
	}
	p := c.rgb565()
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

// At returns the raw RGB565 value at (x, y), or 0 when out of bounds.
func (t *RGB565Target) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return 0
	}
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return 0
	}
	return uint16(t.Buf[off]) | uint16(t.Buf[off+1])<<8
}

// FillRect fills the clipped rectangle [x, x+w) x [y, y+h).
func (t *RGB565Target) FillRect(x, y, w, h int, c Color) {
	x0 := clampInt(x, 0, t.W)
	y0 := clampInt(y, 0, t.H)
	x1 := clampInt(x+w, 0, t.W)
	y1 := clampInt(y+h, 0, t.H)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	p := c.rgb565()
	lo := byte(p)
	hi := byte(p >> 8)
	for py := y0; py < y1; py++ {
		row := py * t.Stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(t.Buf) {
				break
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}

// Line draws a 1px line between two points (Bresenham).
func Line(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
