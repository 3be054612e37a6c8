package znet

import "testing"

func TestNowNSMonotonic(t *testing.T) {
	a := NowNS()
	SleepNS(1000)
	b := NowNS()
	if b <= a {
		t.Errorf("NowNS did not advance: a=%d b=%d", a, b)
	}
}

func TestSleepNSZeroOrNegativeIsNoop(t *testing.T) {
	// Must not block or panic.
	SleepNS(0)
	SleepNS(-1)
}

func TestReadCycleCounterAdvances(t *testing.T) {
	a := ReadCycleCounter()
	SleepNS(1000)
	b := ReadCycleCounter()
	if b <= a {
		t.Errorf("ReadCycleCounter did not advance: a=%d b=%d", a, b)
	}
}

func TestPauseHintDoesNotPanic(t *testing.T) {
	PauseHint()
}
