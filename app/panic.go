package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"demolab/demos/gfx"
	"demolab/hal"

	"go.uber.org/zap"
)

var (
	panicBG = gfx.RGB(0xFF, 0xFF, 0xFF)
	panicFG = gfx.RGB(0x00, 0x00, 0x00)
)

// guard turns a panic inside step into an error, logging the stack and
// leaving a panic screen on fb.
func guard(step func() error, fb hal.Framebuffer, log *zap.Logger) func() error {
	return func() (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			stack := debug.Stack()
			log.Error("demo panic", zap.Any("panic", r), zap.ByteString("stack", stack))
			drawPanic(fb, r, stack)
			err = fmt.Errorf("demo panic: %v", r)
		}()
		return step()
	}
}

func drawPanic(fb hal.Framebuffer, value any, stack []byte) {
	dst, ok := gfx.FromFramebuffer(fb)
	if !ok {
		return
	}
	dst.Clear(panicBG)

	lines := []string{
		"demolab panic:",
		fmt.Sprintf("panic: %v", value),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.TrimSpace(line))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	lineHeight := gfx.FontHeight + 1
	cols := dst.W / max(gfx.TextWidth("0"), 1)
	if cols <= 0 {
		cols = 1
	}

	y := 0
draw:
	for _, line := range lines {
		for len(line) > 0 {
			if y+lineHeight > dst.H {
				break draw
			}
			chunk, rest := takeRunes(line, cols)
			gfx.DrawText(dst, 0, y, chunk, panicFG)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}

	_ = fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
