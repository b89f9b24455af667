// Package audio plays the short cues that accompany the crystal breaking apart and reforming.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const defaultSampleRate = beep.SampleRate(44100)

// Player plays audio cues. A player whose output could not be opened stays silent.
type Player interface {
	// Chime plays the fracture chime.
	Chime()

	// Whoosh plays the reform whoosh.
	Whoosh()

	// HandlePhase plays the cue for a phase change. It can be registered as a phase listener.
	HandlePhase(p crystal.Phase)

	// SetVolume sets the linear cue volume in [0, 1].
	SetVolume(v float32)

	// SetMuted silences or restores cue playback.
	SetMuted(muted bool)

	// Enabled reports whether cues are currently audible.
	Enabled() bool

	// Active returns the number of cues still playing.
	Active() int

	// Close stops playback.
	Close()
}

type playerImpl struct {
	mu         *sync.Mutex
	sampleRate beep.SampleRate
	volume     float32
	muted      bool
	useSpeaker bool
	ready      bool
	mixer      *beep.Mixer
	seed       int64
}

var _ Player = &playerImpl{}

// NewPlayer creates a Player. Speaker initialization failure is logged and leaves the
// player in silent mode.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - Player: the player
func NewPlayer(options ...PlayerBuilderOption) Player {
	p := &playerImpl{
		mu:         &sync.Mutex{},
		sampleRate: defaultSampleRate,
		volume:     0.6,
		useSpeaker: true,
		mixer:      &beep.Mixer{},
		seed:       time.Now().UnixNano(),
	}
	for _, opt := range options {
		opt(p)
	}

	if !p.useSpeaker {
		p.ready = true
		return p
	}
	if err := speaker.Init(p.sampleRate, p.sampleRate.N(100*time.Millisecond)); err != nil {
		log.Printf("[Audio] warning: speaker unavailable, cues disabled: %v", err)
		return p
	}
	speaker.Play(p.mixer)
	p.ready = true
	return p
}

func (p *playerImpl) Chime() {
	p.play(NewChime(p.sampleRate))
}

func (p *playerImpl) Whoosh() {
	p.mu.Lock()
	p.seed++
	seed := p.seed
	p.mu.Unlock()
	p.play(NewWhoosh(p.sampleRate, seed))
}

func (p *playerImpl) HandlePhase(ph crystal.Phase) {
	switch ph {
	case crystal.PhaseFractured:
		p.Chime()
	case crystal.PhaseInitial:
		p.Whoosh()
	}
}

func (p *playerImpl) play(s beep.Streamer) {
	p.mu.Lock()
	if !p.ready || p.muted || p.volume <= 0 {
		p.mu.Unlock()
		return
	}
	vol := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(float64(p.volume)),
	}
	useSpeaker := p.useSpeaker
	p.mu.Unlock()

	if useSpeaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(vol)
}

func (p *playerImpl) SetVolume(v float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(max(v, 0), 1)
}

func (p *playerImpl) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

func (p *playerImpl) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready && !p.muted && p.volume > 0
}

func (p *playerImpl) Active() int {
	p.mu.Lock()
	useSpeaker := p.useSpeaker && p.ready
	p.mu.Unlock()
	if useSpeaker {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

func (p *playerImpl) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	if p.useSpeaker {
		speaker.Clear()
	}
	p.mixer.Clear()
	p.ready = false
}
