//go:build unix

package bench

import (
	"time"

	"golang.org/x/sys/unix"
)

// cpuClock measures per-process CPU time (user + system) via
// getrusage. Sleeping benchmarks accrue no CPU time, so timing samples
// taken with this clock reflect computation only.
type cpuClock struct{}

// NewCPUClock returns a process CPU-time measurement source.
func NewCPUClock() Clock {
	return cpuClock{}
}

func (cpuClock) Now() time.Duration {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	user := time.Duration(ru.Utime.Sec)*time.Second + time.Duration(ru.Utime.Usec)*time.Microsecond
	sys := time.Duration(ru.Stime.Sec)*time.Second + time.Duration(ru.Stime.Usec)*time.Microsecond
	return user + sys
}
