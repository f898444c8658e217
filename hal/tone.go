package hal

import (
	"math"
	"time"
)

const toneSampleRate = 44100

// synthTone renders a sine cue as 16-bit little-endian stereo PCM with a
// linear fade at both ends to avoid clicks.
func synthTone(sampleRate int, freqHz float64, d time.Duration, volume float64) []byte {
	n := int(d.Seconds() * float64(sampleRate))
	if n <= 0 || freqHz <= 0 {
		return nil
	}
	fade := sampleRate / 200 // 5ms
	if fade > n/2 {
		fade = n / 2
	}

	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		env := 1.0
		if fade > 0 {
			if i < fade {
				env = float64(i) / float64(fade)
			} else if n-1-i < fade {
				env = float64(n-1-i) / float64(fade)
			}
		}
		v := math.Sin(2*math.Pi*freqHz*float64(i)/float64(sampleRate)) * env * volume
		s := int16(v * math.MaxInt16)
		out[i*4+0] = byte(s)
		out[i*4+1] = byte(s >> 8)
		out[i*4+2] = byte(s)
		out[i*4+3] = byte(s >> 8)
	}
	return out
}
