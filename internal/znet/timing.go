package znet

import (
	"sync"
	"time"
)

// monoStart is the reference point NowNS measures from. time.Now()
// already uses the runtime's monotonic clock reading internally, so the
// sync.Once here just pins a zero point once per process rather than
// maintaining a separate timebase cache.
var (
	monoOnce  sync.Once
	monoStart time.Time
)

func ensureMonoStart() {
	monoOnce.Do(func() {
		monoStart = time.Now()
	})
}

// NowNS returns a monotonic nanosecond timestamp, relative to an
// arbitrary process-lifetime zero point. Only differences between two
// NowNS() calls are meaningful.
func NowNS() int64 {
	ensureMonoStart()
	return int64(time.Since(monoStart))
}

// SleepNS blocks for at least ns nanoseconds.
func SleepNS(ns int64) {
	if ns <= 0 {
		return
	}
	time.Sleep(time.Duration(ns))
}
