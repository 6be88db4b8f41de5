package lab

import "time"

// Scheduler abstracts one-shot timers so tests can drive a virtual clock.
// There is no cancellation; stale timers are discarded by the epoch check
// in the controller when they fire.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// nowFunc is swapped in tests to pin observation timestamps.
var nowFunc = time.Now

type timerScheduler struct{}

// NewScheduler returns the production scheduler backed by time.AfterFunc.
func NewScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
