package timer

import "sync/atomic"

// Epoch is a generation counter that tags scheduled timers.
// A timer captures the generation when it is armed and only fires if the
// generation is unchanged, so advancing the epoch invalidates every timer
// armed before it.
type Epoch struct {
	gen atomic.Uint64
}

// Current returns the live generation.
func (e *Epoch) Current() uint64 {
	return e.gen.Load()
}

// Advance starts a new generation and returns it.
func (e *Epoch) Advance() uint64 {
	return e.gen.Add(1)
}
