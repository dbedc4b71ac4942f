package bridge

import "sync"

/*------------------------------------------------------------------
 *
 * Purpose:	A bounded single-slot channel with latest-wins semantics
 *		on overflow, shared between the dispatcher (writer) and a
 *		serial output's worker goroutine (reader).
 *
 * Description:	Submit never blocks: if a payload is already waiting,
 *		it is discarded (and counted as a drop) in favor of the
 *		new one. Receive never blocks either; the worker waits on
 *		Signal together with its own timeout so it can observe
 *		shutdown, per spec §4.4/§5.
 *
 *------------------------------------------------------------------*/

// Mailbox is a single-slot, latest-wins frame queue. The zero value is
// not usable; construct with NewMailbox.
type Mailbox struct {
	mu      sync.Mutex
	pending []byte
	has     bool
	signal  chan struct{}
	drops   uint64
}

// NewMailbox returns a ready-to-use Mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{signal: make(chan struct{}, 1)}
}

// Submit enqueues payload, displacing and counting as dropped whatever
// was previously waiting. Never blocks.
func (m *Mailbox) Submit(payload []byte) {
	m.mu.Lock()
	if m.has {
		m.drops++
	}
	m.pending = payload
	m.has = true
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// Receive returns the most recently submitted payload and true, or
// (nil, false) if no payload is pending. Callers combine this with a timeout via select on
// the caller's own ticker/timer; Receive itself never blocks.
func (m *Mailbox) Receive() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.has {
		return nil, false
	}

	var payload = m.pending
	m.pending = nil
	m.has = false

	return payload, true
}

// Signal returns the channel a worker can select on to wake promptly
// when a new payload arrives, in addition to its own timeout tick.
func (m *Mailbox) Signal() <-chan struct{} {
	return m.signal
}

// Drops returns the lifetime count of payloads displaced before being
// received.
func (m *Mailbox) Drops() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.drops
}
