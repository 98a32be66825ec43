package transport

import (
	"context"
	"fmt"
	"net"
)

// Unix writes line protocol as datagrams on a Unix domain socket.
//
// Semantics match the UDP transport: fire-and-forget writes, no queries.
// Useful for a local telegraf-style listener without touching the network
// stack.
type Unix struct {
	conn net.Conn
}

// NewUnix creates a Unix datagram transport for the given socket path.
//
// Parameters:
//   - path: Filesystem path of the unixgram socket (e.g., "/var/run/influxdb.sock")
//
// Returns:
//   - *Unix: Transport ready for use
//   - error: Wrapping ErrConnectionFailed if the socket cannot be opened
func NewUnix(path string) (*Unix, error) {
	conn, err := net.Dial("unixgram", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	return &Unix{conn: conn}, nil
}

// Send writes the payload as one datagram.
func (t *Unix) Send(ctx context.Context, payload string) error {
	return sendDatagram(ctx, t.conn, payload)
}

// Query is not supported over Unix sockets.
func (t *Unix) Query(_ context.Context, _ string) (string, error) {
	return "", ErrQueriesUnsupported
}

// Close releases the socket.
func (t *Unix) Close() error {
	return t.conn.Close()
}
