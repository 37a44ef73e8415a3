package notify

import (
	"sync"

	"github.com/sirupsen/logrus" // Logging library
)

// Dispatcher consumes decision events on a buffered channel and hands
// them to a Notifier on a background worker. Emit never blocks the
// caller: when the buffer is full the event is dropped and logged.
type Dispatcher struct {
	notifier Notifier          // Delivery backend
	ch       chan Notification // Pending events
	wg       sync.WaitGroup    // Worker lifetime
	mu       sync.RWMutex      // Guards closed against concurrent Emit
	closed   bool              // Set once Close has run
}

// NewDispatcher starts a dispatcher with the given buffer size.
func NewDispatcher(n Notifier, buffer int) *Dispatcher {
	if buffer < 1 {
		buffer = 1
	}
	d := &Dispatcher{
		notifier: n,
		ch:       make(chan Notification, buffer),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// run delivers queued events until the channel closes.
func (d *Dispatcher) run() {
	defer d.wg.Done()
	for n := range d.ch {
		if err := d.notifier.Send(n); err != nil {
			// Best-effort only; the decision already committed.
			logrus.WithFields(logrus.Fields{
				"recipient": n.Recipient,
				"subject":   n.Subject,
				"error":     err.Error(),
			}).Error("Email sending failed")
		}
	}
}

// Emit queues an event for delivery without blocking. Events emitted
// after Close, or while the buffer is full, are dropped and logged.
func (d *Dispatcher) Emit(n Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.ch <- n:
	default:
		logrus.WithFields(logrus.Fields{
			"recipient": n.Recipient,
			"subject":   n.Subject,
		}).Warn("Notification queue full, event dropped")
	}
}

// Close stops accepting events and waits for queued deliveries to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
