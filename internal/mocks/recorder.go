package mocks

import (
	"sync"
	"time"
)

// StreamRecorder is a domain.StreamCallback that records every call in order.
// Events are "chunk:<content>", "complete" and "error:<message>".
type StreamRecorder struct {
	mu     sync.Mutex
	events []string
	err    error
	done   chan struct{}
	closed bool
}

// NewStreamRecorder creates an empty recorder.
func NewStreamRecorder() *StreamRecorder {
	return &StreamRecorder{done: make(chan struct{})}
}

func (r *StreamRecorder) OnChunk(content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "chunk:"+content)
}

func (r *StreamRecorder) OnComplete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "complete")
	r.finish()
}

func (r *StreamRecorder) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "error:"+err.Error())
	if r.err == nil {
		r.err = err
	}
	r.finish()
}

// must hold r.mu
func (r *StreamRecorder) finish() {
	if !r.closed {
		r.closed = true
		close(r.done)
	}
}

// Wait blocks until a terminal callback arrives or timeout elapses.
func (r *StreamRecorder) Wait(timeout time.Duration) bool {
	select {
	case <-r.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Events returns a copy of the recorded events.
func (r *StreamRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Err returns the first error passed to OnError.
func (r *StreamRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
