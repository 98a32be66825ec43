package influxline

import (
	"errors"

	"github.com/nerrad567/influxline/transport"
)

// WriteResult classifies the outcome of a single write call.
type WriteResult int

const (
	// ResultBatched means the point was enqueued rather than sent; the
	// eventual transmission outcome is observable through callbacks or an
	// explicit Flush.
	ResultBatched WriteResult = iota

	// ResultSucceeded means the server accepted the payload.
	ResultSucceeded

	// ResultBadRequest means the server rejected the payload. The batch is
	// dropped rather than retried: a malformed payload cannot succeed later.
	ResultBadRequest

	// ResultServerError means the server failed to process an acceptable
	// request. The batch is kept for retry.
	ResultServerError

	// ResultConnectionFailed means the payload never reached a server.
	// The batch is kept for retry.
	ResultConnectionFailed
)

// String returns a human-readable name for logging.
func (r WriteResult) String() string {
	switch r {
	case ResultBatched:
		return "batched"
	case ResultSucceeded:
		return "succeeded"
	case ResultBadRequest:
		return "bad request"
	case ResultServerError:
		return "server error"
	case ResultConnectionFailed:
		return "connection failed"
	default:
		return "unknown"
	}
}

// resolved reports whether the outcome settles the batch: the payload was
// either stored or permanently rejected, so retrying it is pointless.
func (r WriteResult) resolved() bool {
	return r == ResultSucceeded || r == ResultBadRequest
}

// classify maps one transport send outcome onto a WriteResult.
//
// Errors wrapping none of the transport sentinels (a custom transport
// returning untyped errors) classify as a connection failure so the batch
// is retained.
func classify(err error) WriteResult {
	switch {
	case err == nil:
		return ResultSucceeded
	case errors.Is(err, transport.ErrBadRequest):
		return ResultBadRequest
	case errors.Is(err, transport.ErrServerError):
		return ResultServerError
	default:
		return ResultConnectionFailed
	}
}
