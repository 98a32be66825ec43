package influxline

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/nerrad567/influxline/transport"
)

// Client is the write-batching engine façade.
//
// It composes the line protocol encoder, the batch buffer, the periodic
// flush worker and the connection-state notifier over a single transport.
//
// Thread Safety: all methods are safe for concurrent use from multiple
// goroutines. Writes under batch mode serialise on one buffer lock; their
// relative order in the payload is whichever acquires the lock first, and
// entries are never interleaved.
type Client struct {
	transport transport.Transport

	// Batch buffer, guarded by batchMu. A flush (join, transmit, clear)
	// runs as one critical section.
	batch     []string
	batching  bool
	batchSize int
	batchMu   sync.Mutex

	// Flush worker state, guarded by workerMu.
	period   time.Duration
	stop     chan struct{}
	running  bool
	workerMu sync.Mutex
	wg       sync.WaitGroup

	// Accumulated "k=v" pairs applied to every encoded point, guarded by
	// tagsMu. Append-only for the life of the client.
	globalTags string
	tagsMu     sync.RWMutex

	notify notifier

	// logger for flush outcome logging (optional, set via SetLogger).
	logger   Logger
	loggerMu sync.RWMutex
}

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// New creates a client over the given transport. Batching is off until
// BatchOf is called: every Write transmits immediately.
func New(t transport.Transport) *Client {
	return &Client{transport: t}
}

// Write encodes the point and either enqueues or transmits it.
//
// With batching active the point lands in the buffer (a size-triggered
// flush may fire inline) and the result is ResultBatched. Without batching
// the point is transmitted immediately and the classified outcome is
// returned.
func (c *Client) Write(p *Point) WriteResult {
	line := p.encode(c.globalTagString())

	c.batchMu.Lock()
	if c.batching {
		c.batch = append(c.batch, line)
		if len(c.batch) >= c.batchSize {
			c.flushLocked()
		}
		c.batchMu.Unlock()
		return ResultBatched
	}
	c.batchMu.Unlock()

	return c.transmit(line)
}

// WritePoints writes a group of points.
//
// Batch mode enqueues each point (size-triggered flushes may fire along
// the way) and reports ResultBatched. Without batching all encodings are
// joined into one payload and transmitted once, yielding a single
// classification for the whole group.
func (c *Client) WritePoints(points []*Point) WriteResult {
	if len(points) == 0 {
		return ResultBatched
	}
	globalTags := c.globalTagString()

	c.batchMu.Lock()
	if c.batching {
		for _, p := range points {
			c.batch = append(c.batch, p.encode(globalTags))
			if len(c.batch) >= c.batchSize {
				c.flushLocked()
			}
		}
		c.batchMu.Unlock()
		return ResultBatched
	}
	c.batchMu.Unlock()

	lines := make([]string, 0, len(points))
	for _, p := range points {
		lines = append(lines, p.encode(globalTags))
	}
	return c.transmit(strings.Join(lines, "\n"))
}

// transmit performs one transmission attempt and classifies its outcome.
// Exactly one transport send per invocation; no internal retry. The result
// is routed through the connection-state notifier before returning.
func (c *Client) transmit(payload string) WriteResult {
	err := c.transport.Send(context.Background(), payload)
	result := classify(err)

	if err != nil {
		if logger := c.getLogger(); logger != nil {
			logger.Warn("transmission failed",
				"result", result.String(),
				"error", err,
			)
		}
	}

	c.notify.observe(result)
	return result
}

// AddGlobalTag appends a tag applied to every subsequently encoded point.
//
// Global tags render immediately after the measurement name, before the
// point's own tags, in registration order. Once added, a global tag cannot
// be removed. Empty keys and values are dropped.
func (c *Client) AddGlobalTag(key, value string) {
	if key == "" || value == "" {
		return
	}

	c.tagsMu.Lock()
	if c.globalTags != "" {
		c.globalTags += ","
	}
	c.globalTags += key + "=" + value
	c.tagsMu.Unlock()
}

// globalTagString returns the accumulated global tag pairs.
func (c *Client) globalTagString() string {
	c.tagsMu.RLock()
	defer c.tagsMu.RUnlock()
	return c.globalTags
}

// OnTransmissionSucceeded registers a callback fired when connectivity
// transitions to healthy. Registering replaces any previous callback; if
// the connection is already known healthy the callback is invoked once,
// synchronously, during registration.
func (c *Client) OnTransmissionSucceeded(callback func()) {
	c.notify.setOnSucceeded(callback)
}

// OnConnectionError registers a callback fired when connectivity
// transitions to dead — once per run of failures, not per attempt. Replay
// semantics match OnTransmissionSucceeded.
func (c *Client) OnConnectionError(callback func()) {
	c.notify.setOnConnError(callback)
}

// OnBadRequest registers a callback fired on every server rejection of a
// payload. Not de-duplicated and never replayed: each occurrence points at
// an application bug worth seeing.
func (c *Client) OnBadRequest(callback func()) {
	c.notify.setOnBadRequest(callback)
}

// SetLogger sets a logger for transmission failure logging.
// If not set, failures are only observable through callbacks and results.
func (c *Client) SetLogger(logger Logger) {
	c.loggerMu.Lock()
	c.logger = logger
	c.loggerMu.Unlock()
}

// getLogger returns the current logger (may be nil).
func (c *Client) getLogger() Logger {
	c.loggerMu.RLock()
	defer c.loggerMu.RUnlock()
	return c.logger
}

// Close shuts the client down.
//
// It performs:
//  1. Stops and joins the periodic flush worker (if running)
//  2. One final flush attempt to drain the buffer — shutdown must not
//     silently drop buffered points
//  3. Closes the transport, if it has a Close method
//
// Returns:
//   - error: From the transport's Close; flush outcomes are reported
//     through callbacks as usual
func (c *Client) Close() error {
	c.stopFlushWorker()

	c.batchMu.Lock()
	if c.batching && len(c.batch) > 0 {
		c.flushLocked()
	}
	c.batchMu.Unlock()

	if closer, ok := c.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
