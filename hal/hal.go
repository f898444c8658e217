package hal

import (
	"errors"
	"time"
)

// ErrStop is returned by a step function to end the run cleanly.
var ErrStop = errors.New("hal: stop")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. Text input arrives with Code == KeyUnknown
// and a non-zero Rune.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Clock reports time elapsed since the HAL was created.
type Clock interface {
	Now() time.Duration
}

// Audio plays short cues. Implementations drop tones they cannot play.
type Audio interface {
	Tone(freqHz float64, d time.Duration) error
}

// HAL provides the only contact point between a demo and the outside world.
type HAL interface {
	Display() Display
	Input() Input
	Clock() Clock
	Audio() Audio
}
