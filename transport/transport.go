package transport

import "context"

// Transport delivers finished line protocol payloads to a server and
// optionally executes read-only queries against it.
//
// The client engine owns batching, retries and outcome classification;
// implementations only move bytes and translate wire-level failures into
// the sentinel errors declared in errors.go.
//
// Thread Safety: implementations must be safe for concurrent use.
type Transport interface {
	// Send transmits one payload (one or more newline-joined line protocol
	// lines). A nil return means the server accepted the payload.
	//
	// Failures wrap exactly one of ErrBadRequest, ErrServerError or
	// ErrConnectionFailed so callers can classify with errors.Is.
	Send(ctx context.Context, payload string) error

	// Query executes a read-only query and returns the raw response body.
	//
	// Transports without read support return ErrQueriesUnsupported.
	Query(ctx context.Context, query string) (string, error)
}
