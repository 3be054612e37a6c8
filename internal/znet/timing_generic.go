//go:build !amd64

package znet

import "runtime"

// ReadCycleCounter is unavailable outside amd64; it returns the same
// monotonic nanosecond count NowNS does, so callers that degrade
// gracefully when the counter is "unavailable" (per spec.md §4.10, these
// exports are advisory) get a still-useful monotonic value instead of a
// placeholder.
func ReadCycleCounter() uint64 {
	return uint64(NowNS())
}

// PauseHint yields the processor.
func PauseHint() {
	runtime.Gosched()
}
