package transport

import "errors"

// Sentinel errors forming the transport failure taxonomy.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrBadRequest indicates the server received and rejected the payload.
	// The request is permanently malformed; retrying it cannot succeed.
	ErrBadRequest = errors.New("transport: server rejected request")

	// ErrServerError indicates the server failed to process an acceptable
	// request. The condition is transient; the payload may be retried.
	ErrServerError = errors.New("transport: server error")

	// ErrConnectionFailed indicates the payload never reached a server
	// (dial failure, timeout, broken connection).
	ErrConnectionFailed = errors.New("transport: connection failed")

	// ErrQueriesUnsupported is returned from Query by transports that only
	// support writes (UDP, Unix sockets, MQTT).
	ErrQueriesUnsupported = errors.New("transport: queries are not supported")
)
