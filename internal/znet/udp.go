package znet

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"syscall"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"
)

// udpSocketBuffer is the best-effort send/receive buffer size requested
// on bind, per spec.md §4.7.
const udpSocketBuffer = 4 * 1024 * 1024 // 4 MiB

var errUDPEngineClosed = errors.New("znet: udp engine is closed")

// UDPEngine is a bound, batch-capable UDP socket. RecvBatch/SendBatch use
// golang.org/x/net/ipv4's vectored batch I/O (recvmmsg(2)/sendmmsg(2) on
// Linux) and fall back to ipv4's own per-datagram loop on platforms where
// the kernel doesn't support the batch syscalls, exactly the degrade path
// spec.md §4.7 calls for.
type UDPEngine struct {
	conn  *net.UDPConn
	batch *ipv4.PacketConn
}

// BindUDP opens an AF_INET datagram socket with address reuse and 4 MiB
// send/receive buffers (best-effort), then binds to (INADDR_ANY, port).
// port = 0 selects an ephemeral port. Any step's failure releases the
// socket and returns an error.
func BindUDP(port uint16) (*UDPEngine, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
				// Best-effort per spec.md §4.7: buffer sizing failures
				// are not fatal to the bind.
				_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, udpSocketBuffer)
				_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_SNDBUF, udpSocketBuffer)
			})
			if err != nil {
				ctrlErr = err
			}
			return ctrlErr
		},
	}

	pc, err := lc.ListenPacket(context.Background(), "udp4", netip.AddrPortFrom(netip.IPv4Unspecified(), port).String())
	if err != nil {
		return nil, err
	}

	conn, ok := pc.(*net.UDPConn)
	if !ok {
		pc.Close()
		return nil, errors.New("znet: expected *net.UDPConn from ListenPacket")
	}

	return &UDPEngine{conn: conn, batch: ipv4.NewPacketConn(conn)}, nil
}

// LocalPort reports the bound local port, useful after BindUDP(0).
func (e *UDPEngine) LocalPort() uint16 {
	if addr, ok := e.conn.LocalAddr().(*net.UDPAddr); ok {
		return uint16(addr.Port)
	}
	return 0
}

// RecvBatch fills up to len(pkts) packets with datagrams currently
// queued, non-blocking. It returns the number of packets received: 0 if
// the queue is empty, positive on success, and a non-nil error only on a
// fatal failure (spec.md §4.7's "-1" case).
func (e *UDPEngine) RecvBatch(pkts []*Packet) (int, error) {
	if e.batch == nil {
		return 0, errUDPEngineClosed
	}
	if len(pkts) == 0 {
		return 0, nil
	}

	msgs := make([]ipv4.Message, len(pkts))
	for i, p := range pkts {
		msgs[i].Buffers = [][]byte{p.Data}
	}

	if err := e.conn.SetReadDeadline(time.Now()); err != nil {
		return 0, err
	}

	n, err := e.batch.ReadBatch(msgs, 0)
	if err != nil {
		if isTimeoutOrWouldBlock(err) {
			return 0, nil
		}
		return 0, err
	}

	for i := 0; i < n; i++ {
		pkts[i].Len = msgs[i].N
		if udpAddr, ok := msgs[i].Addr.(*net.UDPAddr); ok {
			if addr, ok2 := netip.AddrFromSlice(udpAddr.IP.To4()); ok2 {
				pkts[i].Addr = addr
			}
			pkts[i].Port = uint16(udpAddr.Port)
		}
	}
	return n, nil
}

// SendBatch sends each packet's Data[:Len] to its Addr/Port. It returns
// the number accepted by the kernel, which may be less than len(pkts) on
// partial progress; it returns a non-nil error only on a hard failure
// with zero packets accepted.
func (e *UDPEngine) SendBatch(pkts []*Packet) (int, error) {
	if e.batch == nil {
		return 0, errUDPEngineClosed
	}
	if len(pkts) == 0 {
		return 0, nil
	}

	msgs := make([]ipv4.Message, len(pkts))
	for i, p := range pkts {
		msgs[i].Buffers = [][]byte{p.Data[:p.Len]}
		msgs[i].Addr = &net.UDPAddr{IP: p.Addr.AsSlice(), Port: int(p.Port)}
	}

	n, err := e.batch.WriteBatch(msgs, 0)
	if err != nil && n == 0 {
		return 0, err
	}
	return n, nil
}

// Close releases the underlying socket. Safe to call once; a second call
// returns the error net.UDPConn.Close itself returns for a closed conn.
func (e *UDPEngine) Close() error {
	e.batch = nil
	return e.conn.Close()
}

func isTimeoutOrWouldBlock(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
