package znet

import (
	"errors"
	"net/netip"
	"sync/atomic"
)

// DefaultPacketSize is the buffer capacity allocated for a new Packet,
// large enough for any single UDP datagram on a standard-MTU path.
const DefaultPacketSize = 2048

// ErrDoubleRelease is returned by Release when a packet has already been
// released once. The original C API's "released exactly once" contract
// has no way to corrupt memory in Go, but a caller that releases twice
// almost always has a use-after-free bug of its own, so it gets told.
var ErrDoubleRelease = errors.New("znet: packet released more than once")

// Packet is a reusable datagram buffer: an engine fills Data[:Len] with a
// received payload and Addr/Port with its source, or a caller fills it
// before handing it to SendBatch. Packet buffer ownership follows
// spec.md's contract exactly: neither RecvBatch nor SendBatch retains a
// reference to a Packet or frees it; the caller decides when to release.
type Packet struct {
	Data []byte
	Len  int
	Addr netip.Addr
	Port uint16

	released atomic.Bool
}

// NewPacket allocates a packet with a DefaultPacketSize buffer.
func NewPacket() *Packet {
	return &Packet{Data: make([]byte, DefaultPacketSize)}
}

// NewPacketSize allocates a packet with a buffer of the given capacity.
func NewPacketSize(size int) *Packet {
	return &Packet{Data: make([]byte, size)}
}

// Reset clears Len/Addr/Port and the released flag so the packet can be
// reused for another I/O call without reallocating its buffer.
func (p *Packet) Reset() {
	p.Len = 0
	p.Addr = netip.Addr{}
	p.Port = 0
	p.released.Store(false)
}

// Release marks the packet as returned to its owner. Calling Release a
// second time without an intervening Reset reports ErrDoubleRelease
// instead of silently succeeding.
func (p *Packet) Release() error {
	if !p.released.CompareAndSwap(false, true) {
		return ErrDoubleRelease
	}
	return nil
}
