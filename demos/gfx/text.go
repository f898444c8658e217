package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	Font       tinyfont.Fonter = &tinyfont.TomThumb
	FontHeight                 = 6
)

// DrawText writes s with its top-left corner at (x, y).
func DrawText(t Target, x, y int, s string, c Color) {
	tinyfont.WriteLine(targetDisplayer{t}, Font, int16(x), int16(y+FontHeight-1), s, c.RGBA())
}

// TextWidth is the advance of s in pixels.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(Font, s)
	return int(outbox)
}

type targetDisplayer struct {
	t Target
}

var _ drivers.Displayer = targetDisplayer{}

func (d targetDisplayer) Size() (x, y int16) {
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d targetDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.t.SetPixel(int(x), int(y), Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

func (d targetDisplayer) Display() error { return nil }
