// Package znet implements the tunnel's native I/O fast path: batched UDP
// send/receive, a nanosecond-resolution token-bucket throttler, and a
// pre-warmed TCP connection pool. It leans on golang.org/x/net/ipv4's
// batch primitives (which wrap recvmmsg(2)/sendmmsg(2) on Linux) and
// golang.org/x/sys/unix for the socket-level plumbing neither net.UDPConn
// nor net.TCPConn expose directly.
package znet
