//go:build !tinygo

package hal

import "time"

const (
	DefaultWidth  = 320
	DefaultHeight = 240
)

type hostHAL struct {
	fb  *hostFramebuffer
	kbd *hostKeyboard
	clk hostClock
	aud Audio
}

// New returns a silent host HAL backed by the wall clock.
func New(width, height int) HAL {
	return newHost(width, height, newRealClock(), nullAudio{})
}

func newHost(width, height int, clk hostClock, aud Audio) *hostHAL {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &hostHAL{
		fb:  newHostFramebuffer(width, height),
		kbd: newHostKeyboard(),
		clk: clk,
		aud: aud,
	}
}

func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Clock() Clock     { return h.clk }
func (h *hostHAL) Audio() Audio     { return h.aud }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type nullAudio struct{}

func (nullAudio) Tone(float64, time.Duration) error { return nil }
