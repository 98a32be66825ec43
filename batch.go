package influxline

import (
	"strings"
	"time"
)

// defaultBatchSize is used when BatchOf is given a non-positive size.
const defaultBatchSize = 32

// BatchOf enables write buffering.
//
// Writes are accumulated and flushed when the buffer reaches size points
// or, if period is positive, when the periodic flusher fires. A period of
// zero disables periodic flushing (size-triggered flushing still applies)
// and stops a running flush worker. Calling BatchOf again while a worker
// runs updates the parameters in place without restarting it.
//
// Enabling batching with a size smaller than the points already buffered
// does not flush immediately; the oversized buffer drains at the next
// write, tick or explicit Flush.
//
// Parameters:
//   - size: Flush threshold in points (non-positive selects the default of 32)
//   - period: Interval between periodic flushes (0 = size-triggered only)
func (c *Client) BatchOf(size int, period time.Duration) {
	if size <= 0 {
		size = defaultBatchSize
	}

	c.batchMu.Lock()
	c.batching = true
	c.batchSize = size
	c.batchMu.Unlock()

	c.workerMu.Lock()
	c.period = period
	c.workerMu.Unlock()

	if period > 0 {
		c.startFlushWorker()
	} else {
		c.stopFlushWorker()
	}
}

// Flush synchronously transmits whatever is currently buffered.
//
// Returns the transmission's classification, or ResultBatched when nothing
// was transmitted (batching inactive or buffer empty). On a server error
// or connection failure the buffer is kept intact for a later retry.
func (c *Client) Flush() WriteResult {
	c.batchMu.Lock()
	defer c.batchMu.Unlock()

	if !c.batching {
		return ResultBatched
	}
	return c.flushLocked()
}

// flushLocked joins the buffer into one payload, transmits it and clears
// the buffer on a resolved outcome. Callers must hold batchMu: holding the
// lock across the network call is deliberate — a flush is never concurrent
// with another enqueue, so a batch is always an uninterrupted FIFO run of
// writes.
func (c *Client) flushLocked() WriteResult {
	if len(c.batch) == 0 {
		return ResultBatched
	}

	payload := strings.Join(c.batch, "\n")
	result := c.transmit(payload)
	if result.resolved() {
		c.batch = c.batch[:0]
	}
	return result
}

// startFlushWorker launches the periodic flush goroutine. No-op if one is
// already running; at most one worker exists at a time.
func (c *Client) startFlushWorker() {
	c.workerMu.Lock()
	defer c.workerMu.Unlock()

	if c.running {
		return
	}
	c.stop = make(chan struct{})
	c.running = true
	c.wg.Add(1)
	go c.flushLoop(c.stop)
}

// stopFlushWorker signals the worker to exit and blocks until it has.
// No-op if no worker is running.
func (c *Client) stopFlushWorker() {
	c.workerMu.Lock()
	if !c.running {
		c.workerMu.Unlock()
		return
	}
	stop := c.stop
	c.running = false
	c.workerMu.Unlock()

	close(stop)
	c.wg.Wait()
}

// flushLoop periodically flushes the buffer until stopped.
//
// The wait is computed from the absolute time of the last flush rather
// than a fixed sleep, so scheduler jitter and early wakeups never flush
// ahead of the period. Period changes made through BatchOf take effect at
// the next wake.
func (c *Client) flushLoop(stop <-chan struct{}) {
	defer c.wg.Done()

	last := time.Now()
	for {
		remaining := c.flushPeriod() - time.Since(last)
		if remaining > 0 {
			select {
			case <-stop:
				return
			case <-time.After(remaining):
			}
			continue
		}

		select {
		case <-stop:
			return
		default:
		}

		c.Flush()
		last = time.Now()
	}
}

// flushPeriod returns the current periodic flush interval.
func (c *Client) flushPeriod() time.Duration {
	c.workerMu.Lock()
	defer c.workerMu.Unlock()
	return c.period
}
