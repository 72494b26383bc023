package exam

import "time"

// Scheduler abstracts "run fn after d" with cancellation, so the
// countdown can be driven deterministically in tests.
type Scheduler interface {
	// Schedule runs fn once after d and returns a cancel function. The
	// cancel function is safe to call more than once and after fn ran.
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler is the production Scheduler backed by time.AfterFunc.
type TimerScheduler struct{}

func NewTimerScheduler() TimerScheduler {
	return TimerScheduler{}
}

func (TimerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
