package domain

import (
	"context"
	"sync"
)

// CallbackFuncs adapts plain functions to StreamCallback. Nil funcs are skipped.
type CallbackFuncs struct {
	Chunk    func(content string)
	Complete func()
	Error    func(err error)
}

// OnChunk implements StreamCallback.
func (f CallbackFuncs) OnChunk(content string) {
	if f.Chunk != nil {
		f.Chunk(content)
	}
}

// OnComplete implements StreamCallback.
func (f CallbackFuncs) OnComplete() {
	if f.Complete != nil {
		f.Complete()
	}
}

// OnError implements StreamCallback.
func (f CallbackFuncs) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

// GuardedCallback forwards to a StreamCallback until a terminal signal has
// been delivered and drops everything after it.
type GuardedCallback struct {
	mu       sync.Mutex
	next     StreamCallback
	terminal bool
}

// GuardCallback wraps cb so that at most one terminal callback reaches it and
// no chunk follows the terminal callback.
func GuardCallback(cb StreamCallback) *GuardedCallback {
	if guarded, ok := cb.(*GuardedCallback); ok {
		return guarded
	}
	return &GuardedCallback{next: cb}
}

// OnChunk implements StreamCallback.
func (g *GuardedCallback) OnChunk(content string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.terminal {
		return
	}
	g.next.OnChunk(content)
}

// OnComplete implements StreamCallback.
func (g *GuardedCallback) OnComplete() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.terminal {
		return
	}
	g.terminal = true
	g.next.OnComplete()
}

// OnError implements StreamCallback.
func (g *GuardedCallback) OnError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.terminal {
		return
	}
	g.terminal = true
	g.next.OnError(err)
}

// Finished reports whether a terminal callback has been delivered.
func (g *GuardedCallback) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.terminal
}

// ChannelCallback turns the callback sequence into StreamChunk values.
// The channel is closed after the terminal chunk. Sends give up once ctx is
// done so an abandoned reader never blocks the producer.
type ChannelCallback struct {
	ctx    context.Context
	chunks chan StreamChunk
}

// NewChannelCallback creates a ChannelCallback and its receive channel.
func NewChannelCallback(ctx context.Context) (*ChannelCallback, <-chan StreamChunk) {
	chunks := make(chan StreamChunk)
	return &ChannelCallback{ctx: ctx, chunks: chunks}, chunks
}

// OnChunk implements StreamCallback.
func (c *ChannelCallback) OnChunk(content string) {
	c.send(StreamChunk{Delta: content, Done: false, Error: nil})
}

// OnComplete implements StreamCallback.
func (c *ChannelCallback) OnComplete() {
	c.send(StreamChunk{Delta: "", Done: true, Error: nil})
	close(c.chunks)
}

// OnError implements StreamCallback.
func (c *ChannelCallback) OnError(err error) {
	c.send(StreamChunk{Delta: "", Done: true, Error: err})
	close(c.chunks)
}

func (c *ChannelCallback) send(chunk StreamChunk) {
	select {
	case c.chunks <- chunk:
	case <-c.ctx.Done():
	}
}
