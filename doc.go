// Package influxline is a batching client engine for InfluxDB-compatible
// time-series stores.
//
// It turns application-level measurements into line protocol text, buffers
// them, and transmits batches over a pluggable transport while hiding
// transient connectivity from the caller.
//
// # Purpose
//
// The engine covers:
//   - Encoding points (name, tags, fields, optional timestamp) to line protocol
//   - Buffering encoded points and flushing on size or time triggers
//   - Classifying transmission outcomes (succeeded, bad request, server
//     error, connection failed)
//   - De-duplicated connection-state callbacks with replay on registration
//
// Wire delivery itself lives in the transport subpackage (HTTP, UDP, Unix
// sockets, MQTT, InfluxDB 2.x).
//
// # Usage
//
//	client, err := influxline.Open("http://localhost:8086?db=metrics")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.BatchOf(100, 500*time.Millisecond)
//	client.OnConnectionError(func() { log.Println("influx unreachable") })
//
//	client.Write(influxline.NewPoint("cpu").
//	    AddTag("host", "web-01").
//	    AddField("usage", 42.5))
//
// # Thread Safety
//
// All Client methods are safe for concurrent use from multiple goroutines.
// The batch buffer is guarded by a single lock; a flush (including its
// network round trip) is never concurrent with another enqueue, so points
// land in the payload in write order and are never interleaved.
//
// # Error Handling
//
// In batch mode Write reports ResultBatched and transmission outcomes are
// only observable through the registered callbacks or an explicit Flush's
// return value. Without batching, Write returns the classified outcome
// synchronously. A failed flush keeps the batch for retry unless the server
// rejected the payload outright — a permanently malformed batch is dropped
// rather than retried forever.
package influxline
