package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures delivered notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (n *recordingNotifier) Send(msg Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) delivered() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}

func TestDispatcherDelivers(t *testing.T) {
	backend := &recordingNotifier{}
	d := NewDispatcher(backend, 8)

	d.Emit(Notification{Recipient: "a@b.co", Subject: "Leave Request Approved"})
	d.Emit(Notification{Recipient: "c@d.co", Subject: "Leave Request Rejected"})
	d.Close()

	sent := backend.delivered()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@b.co", sent[0].Recipient)
	assert.Equal(t, "Leave Request Rejected", sent[1].Subject)
}

func TestDispatcherSwallowsDeliveryFailures(t *testing.T) {
	backend := &recordingNotifier{err: errors.New("smtp unreachable")}
	d := NewDispatcher(backend, 8)

	// Failures are logged and dropped; Emit and Close stay clean.
	d.Emit(Notification{Recipient: "a@b.co", Subject: "Leave Request Approved"})
	d.Close()
	assert.Empty(t, backend.delivered())
}

func TestEmitAfterCloseIsDropped(t *testing.T) {
	backend := &recordingNotifier{}
	d := NewDispatcher(backend, 8)
	d.Close()

	d.Emit(Notification{Recipient: "a@b.co"})
	assert.Empty(t, backend.delivered())
}

// slowNotifier blocks each delivery until released.
type slowNotifier struct {
	release chan struct{}
}

func (n *slowNotifier) Send(Notification) error {
	<-n.release
	return nil
}

func TestEmitNeverBlocksWhenBufferFull(t *testing.T) {
	backend := &slowNotifier{release: make(chan struct{})}
	d := NewDispatcher(backend, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// One in flight, one buffered; the rest must drop without blocking.
		for i := 0; i < 10; i++ {
			d.Emit(Notification{Recipient: "a@b.co"})
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked on a full buffer")
	}
	close(backend.release)
	d.Close()
}
