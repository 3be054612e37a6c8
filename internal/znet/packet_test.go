package znet

import "testing"

func TestNewPacketDefaultSize(t *testing.T) {
	p := NewPacket()
	if len(p.Data) != DefaultPacketSize {
		t.Errorf("len(Data) = %d, want %d", len(p.Data), DefaultPacketSize)
	}
}

func TestPacketReleaseOnce(t *testing.T) {
	p := NewPacket()
	if err := p.Release(); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if err := p.Release(); err != ErrDoubleRelease {
		t.Errorf("second release = %v, want ErrDoubleRelease", err)
	}
}

func TestPacketResetAllowsReRelease(t *testing.T) {
	p := NewPacket()
	if err := p.Release(); err != nil {
		t.Fatal(err)
	}
	p.Reset()
	if err := p.Release(); err != nil {
		t.Errorf("release after reset: %v", err)
	}
}

func TestNewPacketSizeCustomCapacity(t *testing.T) {
	p := NewPacketSize(128)
	if len(p.Data) != 128 {
		t.Errorf("len(Data) = %d, want 128", len(p.Data))
	}
}
