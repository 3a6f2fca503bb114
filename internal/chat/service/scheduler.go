package service

import "time"

// Scheduler defers a continuation by a fixed duration. The controller uses
// it for conversation pacing; tests substitute a manual implementation to
// advance virtual time deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// NewTimerScheduler returns the wall-clock Scheduler used in production.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}
