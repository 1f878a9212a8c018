package animation

import "time"

// Timer is a repeating timer driven by elapsed time.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	finished int
}

func NewTimer(d time.Duration) Timer {
	return Timer{duration: d}
}

// Tick advances the timer and returns how many intervals completed. The
// remainder carries into the next interval. A non-positive duration never
// fires.
func (t *Timer) Tick(dt time.Duration) int {
	t.finished = 0
	if t.duration <= 0 || dt <= 0 {
		return 0
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.finished = int(t.elapsed / t.duration)
		t.elapsed %= t.duration
	}
	return t.finished
}

// JustFinished reports whether the last Tick completed an interval.
func (t *Timer) JustFinished() bool {
	return t.finished > 0
}

// SetDuration changes the interval and keeps the time already elapsed.
func (t *Timer) SetDuration(d time.Duration) {
	t.duration = d
}

func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = 0
}

func (t *Timer) Duration() time.Duration {
	return t.duration
}

func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}
