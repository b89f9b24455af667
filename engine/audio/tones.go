package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

const (
	chimeDuration  = 1400 * time.Millisecond
	whooshDuration = 900 * time.Millisecond
)

// chimePartials are frequency/amplitude/decay triples for a glassy bell.
var chimePartials = [][3]float64{
	{1318.5, 0.30, 3.2},
	{1975.5, 0.18, 4.5},
	{2637.0, 0.12, 6.0},
	{3951.1, 0.06, 9.0},
}

// NewChime returns the fracture chime: a few inharmonic sine partials with exponential decay.
//
// Parameters:
//   - sr: the output sample rate
//
// Returns:
//   - beep.Streamer: a finite streamer
func NewChime(sr beep.SampleRate) beep.Streamer {
	pos := 0
	tone := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			t := float64(pos) / float64(sr)
			v := 0.0
			for _, p := range chimePartials {
				v += p[1] * math.Exp(-t*p[2]) * math.Sin(2*math.Pi*p[0]*t)
			}
			attack := math.Min(t/0.004, 1)
			samples[i][0] = v * attack
			samples[i][1] = v * attack
			pos++
		}
		return len(samples), true
	})
	return beep.Take(sr.N(chimeDuration), tone)
}

// NewWhoosh returns the reform whoosh: low-passed noise under a sine swell.
//
// Parameters:
//   - sr: the output sample rate
//   - seed: noise seed
//
// Returns:
//   - beep.Streamer: a finite streamer
func NewWhoosh(sr beep.SampleRate, seed int64) beep.Streamer {
	rng := rand.New(rand.NewSource(seed))
	total := sr.N(whooshDuration)
	pos := 0
	var lp float64
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			progress := float64(pos) / float64(total)
			swell := math.Sin(math.Pi * math.Min(progress, 1))
			// Cutoff opens toward the middle of the swell.
			alpha := 0.02 + 0.08*swell
			lp += alpha * ((rng.Float64()*2 - 1) - lp)
			v := 0.5 * swell * lp
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
	return beep.Take(total, noise)
}
