package timeline

import "time"

// Clock abstracts wall-clock access and deferred callbacks so tests can run
// against a fixed or hand-stepped clock instead of real timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func())
}

type realClock struct{}

func NewRealClock() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }
