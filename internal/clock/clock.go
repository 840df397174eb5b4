package clock

import "time"

// Clock abstracts time retrieval so rental durations are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }
