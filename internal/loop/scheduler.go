package loop

import "time"

// Scheduler drives a per-frame tick and a once-per-second callback from a
// single Advance call. Both are skipped while suspended, and suspended time
// does not count toward the next second.
type Scheduler struct {
	tick      func(dt time.Duration)
	onSecond  func()
	suspended func() bool

	running bool
	acc     time.Duration
}

// NewScheduler creates a stopped scheduler. suspended may be nil.
func NewScheduler(tick func(time.Duration), onSecond func(), suspended func() bool) *Scheduler {
	if suspended == nil {
		suspended = func() bool { return false }
	}
	return &Scheduler{tick: tick, onSecond: onSecond, suspended: suspended}
}

// Start begins scheduling with an empty second accumulator.
func (s *Scheduler) Start() {
	s.running = true
	s.acc = 0
}

// Stop halts scheduling. Once Stop returns no further callback runs, even
// when called from inside one.
func (s *Scheduler) Stop() {
	s.running = false
	s.acc = 0
}

// Running reports whether the scheduler is started.
func (s *Scheduler) Running() bool {
	return s.running
}

// Advance runs one tick of dt, then as many whole seconds as have
// accumulated.
func (s *Scheduler) Advance(dt time.Duration) {
	if !s.running || s.suspended() || dt <= 0 {
		return
	}
	s.acc += dt
	s.tick(dt)
	for s.acc >= time.Second {
		if !s.running || s.suspended() {
			return
		}
		s.acc -= time.Second
		s.onSecond()
	}
}
