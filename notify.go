package influxline

import "sync"

// connStatus is the last externally observed connection state. It only
// decides whether a notification fires; it never gates writes.
type connStatus int

const (
	statusUnknown connStatus = iota
	statusSuccess
	statusError
)

// notifier converts transmission results into at most one callback
// invocation per change of connectivity.
//
// A request that reached a server — even one the server rejected or failed
// to process — means the connection itself is healthy; only a connection
// failure marks it dead. Bad requests additionally fire a dedicated
// callback on every occurrence, since a malformed point is an application
// bug the caller should see each time.
//
// Each callback slot holds one function: registering replaces the previous
// one. Registration replays the current status to the new callback if it
// already matches.
type notifier struct {
	mu           sync.Mutex
	last         connStatus
	onSucceeded  func()
	onConnError  func()
	onBadRequest func()
}

// observe records one resolved transmission outcome and fires the
// appropriate callbacks. ResultBatched is ignored — nothing was sent.
//
// Callbacks run outside the lock so they may call back into the client.
func (n *notifier) observe(result WriteResult) {
	if result == ResultBatched {
		return
	}

	var badRequest, changed func()

	n.mu.Lock()
	if result == ResultBadRequest {
		badRequest = n.onBadRequest
	}

	derived := statusSuccess
	if result == ResultConnectionFailed {
		derived = statusError
	}
	if derived != n.last {
		n.last = derived
		if derived == statusSuccess {
			changed = n.onSucceeded
		} else {
			changed = n.onConnError
		}
	}
	n.mu.Unlock()

	if badRequest != nil {
		badRequest()
	}
	if changed != nil {
		changed()
	}
}

// setOnSucceeded replaces the success callback. If the connection is
// already known healthy, the callback is invoked once, synchronously,
// before this returns.
func (n *notifier) setOnSucceeded(callback func()) {
	n.mu.Lock()
	n.onSucceeded = callback
	replay := n.last == statusSuccess && callback != nil
	n.mu.Unlock()

	if replay {
		callback()
	}
}

// setOnConnError replaces the error callback, with the same replay
// semantics as setOnSucceeded for an already-dead connection.
func (n *notifier) setOnConnError(callback func()) {
	n.mu.Lock()
	n.onConnError = callback
	replay := n.last == statusError && callback != nil
	n.mu.Unlock()

	if replay {
		callback()
	}
}

// setOnBadRequest replaces the bad-request callback. No replay: it reports
// occurrences, not a status.
func (n *notifier) setOnBadRequest(callback func()) {
	n.mu.Lock()
	n.onBadRequest = callback
	n.mu.Unlock()
}
