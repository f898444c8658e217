//go:build !tinygo && !cgo

package hal

import "errors"

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Width  int
	Height int
	Scale  int
	TPS    int
	Title  string
	Sound  bool
}

func RunWindow(_ WindowConfig, _ func(HAL) (func() error, error)) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
