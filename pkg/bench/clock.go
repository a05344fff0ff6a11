package bench

import "time"

// Clock is the measurement source the controller reads once per
// iteration batch. Readings are monotonic within one process; only
// differences between readings are meaningful.
type Clock interface {
	Now() time.Duration
}

// wallClock measures monotonic wall-clock time. It is unaffected by
// system clock adjustments because time.Since uses the monotonic
// reading embedded in the base timestamp.
type wallClock struct {
	base time.Time
}

// NewWallClock returns the default wall-clock measurement source.
func NewWallClock() Clock {
	return &wallClock{base: time.Now()}
}

func (c *wallClock) Now() time.Duration {
	return time.Since(c.base)
}
