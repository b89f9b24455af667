package timer

import (
	"container/heap"
	"sync"
	"time"
)

// Timer is a single scheduled callback owned by a Scheduler.
type Timer struct {
	s       *Scheduler
	due     time.Time
	seq     uint64
	fn      func()
	epoch   *Epoch
	gen     uint64
	index   int
	stopped bool
}

// Due returns the time at which the timer fires.
func (t *Timer) Due() time.Time {
	return t.due
}

// Stop cancels the timer.
//
// Returns:
//   - bool: true if the timer was pending and is now cancelled
func (t *Timer) Stop() bool {
	if t == nil || t.s == nil {
		return false
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.index < 0 {
		return false
	}
	t.stopped = true
	heap.Remove(&t.s.queue, t.index)
	return true
}

// live reports whether the timer may still fire.
func (t *Timer) live() bool {
	return !t.stopped && (t.epoch == nil || t.epoch.Current() == t.gen)
}

// timerQueue is a min-heap ordered by due time, then by scheduling order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs delayed callbacks cooperatively from the frame tick.
// Nothing fires on its own: callbacks only run inside Update, on the caller's goroutine.
//
// A callback that schedules another timer while firing measures the delay from its own
// due time rather than from the clock, so chained delays stay exact when the clock is
// advanced in large steps.
type Scheduler struct {
	mu    *sync.Mutex
	clock TimeProvider
	queue timerQueue
	seq   uint64

	firing bool
	base   time.Time
}

// NewScheduler creates a Scheduler reading the given clock.
// A nil clock falls back to the wall clock.
//
// Parameters:
//   - clock: the time source
//
// Returns:
//   - *Scheduler: the new scheduler
func NewScheduler(clock TimeProvider) *Scheduler {
	if clock == nil {
		clock = WallClock{}
	}
	return &Scheduler{
		mu:    &sync.Mutex{},
		clock: clock,
	}
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() TimeProvider {
	return s.clock
}

// Now returns the scheduler's notion of the present: the due time of the firing timer
// while inside a callback, otherwise the clock reading.
func (s *Scheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nowLocked()
}

func (s *Scheduler) nowLocked() time.Time {
	if s.firing {
		return s.base
	}
	return s.clock.Now()
}

// After arms fn to run once delay has elapsed.
// If epoch is non-nil the timer is bound to its current generation and is silently
// discarded when the epoch advances before it fires.
//
// Parameters:
//   - delay: time until the callback runs; negative values are treated as zero
//   - epoch: optional generation guard
//   - fn: the callback
//
// Returns:
//   - *Timer: handle that can cancel the timer
func (s *Scheduler) After(delay time.Duration, epoch *Epoch, fn func()) *Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Timer{
		s:     s,
		due:   s.nowLocked().Add(delay),
		seq:   s.seq,
		fn:    fn,
		epoch: epoch,
	}
	if epoch != nil {
		t.gen = epoch.Current()
	}
	heap.Push(&s.queue, t)
	return t
}

// Update fires every live timer whose due time is at or before the clock reading,
// in due-time order. Timers armed by callbacks during Update fire in the same call
// when they are already due.
//
// Returns:
//   - int: the number of callbacks that ran
func (s *Scheduler) Update() int {
	now := s.clock.Now()
	fired := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 || s.queue[0].due.After(now) {
			s.mu.Unlock()
			return fired
		}
		t := heap.Pop(&s.queue).(*Timer)
		if !t.live() {
			s.mu.Unlock()
			continue
		}
		s.firing = true
		s.base = t.due
		s.mu.Unlock()

		t.fn()
		fired++

		s.mu.Lock()
		s.firing = false
		s.mu.Unlock()
	}
}

// Pending returns the number of timers that can still fire.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.queue {
		if t.live() {
			n++
		}
	}
	return n
}
