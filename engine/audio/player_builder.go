package audio

import (
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/gopxl/beep"
)

// PlayerBuilderOption configures a Player.
type PlayerBuilderOption func(*playerImpl)

// WithSampleRate sets the output sample rate.
func WithSampleRate(sr beep.SampleRate) PlayerBuilderOption {
	return func(p *playerImpl) {
		p.sampleRate = sr
	}
}

// WithVolume sets the initial linear volume.
func WithVolume(v float32) PlayerBuilderOption {
	return func(p *playerImpl) {
		p.volume = min(max(v, 0), 1)
	}
}

// WithMuted starts the player muted.
func WithMuted(muted bool) PlayerBuilderOption {
	return func(p *playerImpl) {
		p.muted = muted
	}
}

// WithAudioConfig applies the audio section of a config.
func WithAudioConfig(cfg config.AudioConfig) PlayerBuilderOption {
	return func(p *playerImpl) {
		p.muted = cfg.Muted
		p.volume = min(max(cfg.Volume, 0), 1)
	}
}

// WithoutSpeaker mixes cues without opening an output device.
func WithoutSpeaker() PlayerBuilderOption {
	return func(p *playerImpl) {
		p.useSpeaker = false
	}
}
