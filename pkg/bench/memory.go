package bench

import "runtime"

// MemoryReading is one observation of the process heap, taken before
// and after an iteration batch.
type MemoryReading struct {
	// TotalAlloc is the cumulative bytes allocated since process
	// start. The difference between two readings is the bytes
	// allocated in between.
	TotalAlloc uint64
	// HeapInUse is the live heap at the time of the reading; the
	// larger of the before/after readings approximates the batch's
	// peak.
	HeapInUse uint64
}

// MemorySampler is the memory-usage source the controller queries once
// per iteration batch.
type MemorySampler interface {
	Read() MemoryReading
}

// runtimeSampler reads the Go runtime's allocator statistics.
type runtimeSampler struct{}

// NewRuntimeMemorySampler returns the default runtime-backed sampler.
func NewRuntimeMemorySampler() MemorySampler {
	return runtimeSampler{}
}

func (runtimeSampler) Read() MemoryReading {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return MemoryReading{TotalAlloc: ms.TotalAlloc, HeapInUse: ms.HeapAlloc}
}
