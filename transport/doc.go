// Package transport defines the wire delivery contract consumed by the
// influxline client engine, together with implementations for the ways an
// InfluxDB-compatible server is commonly reached.
//
// # Purpose
//
// The engine turns points into line protocol text and hands the finished
// payload to a Transport. Everything protocol-specific lives here:
//   - HTTP writes/queries against an InfluxDB 1.x server
//   - UDP and Unix datagram writes (fire-and-forget)
//   - MQTT publishes to a broker topic
//   - Writes to an InfluxDB 2.x server via the official client
//
// # Failure Taxonomy
//
// Implementations report failures through three sentinel errors so the
// engine can decide whether a batch is retryable:
//   - ErrBadRequest: the server rejected the payload (caller-side defect)
//   - ErrServerError: the server failed to process an acceptable request
//   - ErrConnectionFailed: the payload never reached a server
//
// Wrap the sentinels with %w and add detail; callers match with errors.Is.
// Transports without read support report ErrQueriesUnsupported from Query.
//
// # Thread Safety
//
// All shipped implementations are safe for concurrent use, although the
// engine serialises sends through its buffer lock.
//
// # Usage
//
//	tr, err := transport.NewHTTP("http://localhost:8086?db=metrics")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = tr.Send(ctx, "cpu,host=web-01 usage=42.5")
package transport
