//go:build !unix

package bench

// NewCPUClock falls back to wall-clock time on platforms without
// getrusage.
func NewCPUClock() Clock {
	return NewWallClock()
}
