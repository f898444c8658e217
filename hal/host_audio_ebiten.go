//go:build !tinygo && cgo

package hal

import (
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// hostAudio plays cues through Ebiten's audio package.
type hostAudio struct {
	mu      sync.Mutex
	ctx     *audio.Context
	players []*audio.Player
	volume  float64
}

func newHostAudio(sampleRate int) *hostAudio {
	return &hostAudio{ctx: audio.NewContext(sampleRate), volume: 0.25}
}

func (a *hostAudio) Tone(freqHz float64, d time.Duration) error {
	pcm := synthTone(a.ctx.SampleRate(), freqHz, d, a.volume)
	if pcm == nil {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Drop finished players so they can be collected.
	live := a.players[:0]
	for _, p := range a.players {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		_ = p.Close()
	}
	a.players = live

	p := a.ctx.NewPlayerFromBytes(pcm)
	p.Play()
	a.players = append(a.players, p)
	return nil
}
