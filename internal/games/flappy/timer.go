package flappy

// timerEpsilon absorbs float drift when delays are advanced in many small steps.
const timerEpsilon = 1e-9

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id        TimerID
	remaining float64
	interval  float64
	repeats   int
	fn        func()
	cancelled bool
}

// Scheduler runs deferred callbacks against simulated time only.
// Nothing fires until Advance is called, which keeps delays deterministic.
type Scheduler struct {
	timers []*timer
	nextID TimerID
}

// After schedules fn to run once, delay seconds from now.
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	return s.Every(delay, 1, fn)
}

// Every schedules fn to run times times, every interval seconds.
func (s *Scheduler) Every(interval float64, times int, fn func()) TimerID {
	s.nextID++
	s.timers = append(s.timers, &timer{
		id:        s.nextID,
		remaining: interval,
		interval:  interval,
		repeats:   times,
		fn:        fn,
	})
	return s.nextID
}

// Cancel drops a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for _, t := range s.timers {
		if t.id == id && !t.cancelled {
			t.cancelled = true
			return true
		}
	}
	return false
}

// CancelAll drops every pending timer. Timers are all-or-nothing: a
// cancelled repeating timer never completes its remaining firings.
func (s *Scheduler) CancelAll() {
	for _, t := range s.timers {
		t.cancelled = true
	}
}

// Pending returns the number of timers that have not finished.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled && t.repeats > 0 {
			n++
		}
	}
	return n
}

// Advance moves simulated time forward by dt seconds and fires every timer
// that comes due, in scheduling order. A repeating timer fires once per
// elapsed interval. Timers scheduled by a callback start counting on the
// next Advance.
func (s *Scheduler) Advance(dt float64) {
	due := s.timers
	for _, t := range due {
		if t.cancelled {
			continue
		}
		t.remaining -= dt
		for !t.cancelled && t.repeats > 0 && t.remaining <= timerEpsilon {
			t.repeats--
			if t.repeats > 0 {
				t.remaining += t.interval
			}
			t.fn()
		}
	}
	s.compact()
}

func (s *Scheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled && t.repeats > 0 {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = live
}
