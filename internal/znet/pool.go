package znet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"
)

// dialTimeout is the fixed connect timeout spec.md §4.9 mandates for
// both pre-warming and on-demand dials.
const dialTimeout = 100 * time.Millisecond

// prewarmCount caps the entries dialed eagerly at creation; NewPool dials
// min(prewarmCount, size) of them, per spec.md §4.9.
const prewarmCount = 4

// ErrPoolExhausted is returned by Acquire when every slot is filled and
// none is leasable.
var ErrPoolExhausted = errors.New("znet: connection pool exhausted")

type poolEntry struct {
	conn     net.Conn
	inUse    bool
	lastUsed time.Time
}

// Pool is a fixed-size set of pre-warmed TCP connections to a single
// target. Per spec.md §4.9 the contract is single-threaded ownership of
// a given Pool: callers sharing one across goroutines must serialise
// Acquire/Release themselves, so Pool intentionally carries no mutex.
type Pool struct {
	entries []poolEntry
	addr    netip.Addr
	port    uint16
}

// LeasedConn is a connection on loan from a Pool. The caller uses Conn
// for I/O and must eventually pass the LeasedConn back to Pool.Release.
type LeasedConn struct {
	Conn  net.Conn
	index int
}

// NewPool allocates size entries, all initially empty, then synchronously
// pre-warms min(4, size) of them by connecting with a 100 ms timeout. A
// pre-warm failure is not fatal to pool creation; that slot simply stays
// empty and will be dialed lazily on first Acquire.
func NewPool(size int, addr netip.Addr, port uint16) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("znet: pool size must be positive, got %d", size)
	}

	p := &Pool{
		entries: make([]poolEntry, size),
		addr:    addr,
		port:    port,
	}

	warm := prewarmCount
	if size < warm {
		warm = size
	}
	for i := 0; i < warm; i++ {
		conn, err := p.dial()
		if err != nil {
			continue
		}
		p.entries[i].conn = conn
		p.entries[i].lastUsed = time.Now()
	}

	return p, nil
}

func (p *Pool) dial() (net.Conn, error) {
	target := net.JoinHostPort(p.addr.String(), fmt.Sprintf("%d", p.port))
	dialer := &net.Dialer{Timeout: dialTimeout}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, err
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	return conn, nil
}

// isAlive performs a cheap liveness check: a non-blocking 1-byte peek.
// A timeout (no data pending) means the connection is still open and
// worth handing out; a clean EOF or any other read error means the peer
// has half-closed or gone and the connection is dead.
func isAlive(conn net.Conn) bool {
	if err := conn.SetReadDeadline(time.Now()); err != nil {
		return false
	}
	defer conn.SetReadDeadline(time.Time{})

	var buf [1]byte
	_, err := conn.Read(buf[:])
	if err == nil {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true // would-block: no data pending, connection still open
	}
	return false
}

// Acquire scans entries for a live, not-in-use connection, probing
// liveness on candidates found; dead connections are closed and their
// slot reset. If none is leasable, it scans for an empty slot and
// attempts a fresh dial into it. If every slot is filled and unusable,
// it returns ErrPoolExhausted.
func (p *Pool) Acquire() (*LeasedConn, error) {
	for i := range p.entries {
		e := &p.entries[i]
		if e.inUse || e.conn == nil {
			continue
		}
		if isAlive(e.conn) {
			e.inUse = true
			e.lastUsed = time.Now()
			return &LeasedConn{Conn: e.conn, index: i}, nil
		}
		e.conn.Close()
		e.conn = nil
	}

	for i := range p.entries {
		e := &p.entries[i]
		if e.conn != nil {
			continue
		}
		conn, err := p.dial()
		if err != nil {
			continue
		}
		e.conn = conn
		e.inUse = true
		e.lastUsed = time.Now()
		return &LeasedConn{Conn: conn, index: i}, nil
	}

	return nil, ErrPoolExhausted
}

// Release returns a leased connection to the pool without closing it;
// re-validation happens at the next Acquire.
func (p *Pool) Release(lc *LeasedConn) {
	if lc == nil || lc.index < 0 || lc.index >= len(p.entries) {
		return
	}
	e := &p.entries[lc.index]
	e.inUse = false
	e.lastUsed = time.Now()
}

// Available reports the count of entries holding a live connection that
// is not currently leased.
func (p *Pool) Available() int {
	n := 0
	for i := range p.entries {
		if !p.entries[i].inUse && p.entries[i].conn != nil {
			n++
		}
	}
	return n
}

// Close closes every live connection in the pool.
func (p *Pool) Close() error {
	var firstErr error
	for i := range p.entries {
		if p.entries[i].conn == nil {
			continue
		}
		if err := p.entries[i].conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.entries[i].conn = nil
	}
	return firstErr
}
