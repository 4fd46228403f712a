// Package contract binds observers and verifiers into retryable
// contract clauses and aggregates clauses into contracts.
package contract

import "time"

// Clock abstracts wall time so the clause retry loop can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return systemClock{} }
