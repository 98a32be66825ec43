package transport

import (
	"context"
	"fmt"
	"net"
	"time"
)

// maxDatagramSize is the largest payload that fits in a single UDP datagram
// (65535 minus IP and UDP headers). Larger payloads cannot be split without
// corrupting line protocol, so they are rejected as bad requests.
const maxDatagramSize = 65507

// UDP writes line protocol as fire-and-forget UDP datagrams.
//
// There is no acknowledgement: a send that leaves the socket successfully is
// reported as accepted even if the server never saw it. Queries are not
// supported.
type UDP struct {
	conn net.Conn
}

// NewUDP creates a UDP transport targeting the given address.
//
// Parameters:
//   - address: host:port of the UDP listener (e.g., "localhost:8089")
//
// Returns:
//   - *UDP: Transport ready for use
//   - error: Wrapping ErrConnectionFailed if the socket cannot be opened
func NewUDP(address string) (*UDP, error) {
	conn, err := net.Dial("udp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return &UDP{conn: conn}, nil
}

// Send writes the payload as one datagram.
//
// Payloads exceeding the maximum datagram size wrap ErrBadRequest (the
// payload itself is the problem); socket write failures wrap
// ErrConnectionFailed.
func (t *UDP) Send(ctx context.Context, payload string) error {
	return sendDatagram(ctx, t.conn, payload)
}

// Query is not supported over UDP.
func (t *UDP) Query(_ context.Context, _ string) (string, error) {
	return "", ErrQueriesUnsupported
}

// Close releases the socket.
func (t *UDP) Close() error {
	return t.conn.Close()
}

// sendDatagram writes one datagram on a connected packet socket, honouring
// a context deadline if present. Shared by the UDP and Unix transports.
func sendDatagram(ctx context.Context, conn net.Conn, payload string) error {
	if len(payload) > maxDatagramSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum datagram size %d",
			ErrBadRequest, len(payload), maxDatagramSize)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		defer func() { _ = conn.SetWriteDeadline(time.Time{}) }()
	}

	if _, err := conn.Write([]byte(payload)); err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return nil
}
