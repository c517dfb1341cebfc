package domain

import (
	"context"

	"github.com/Claisenn/codemind/internal/observability"
)

// FallbackCoordinator simulates streaming on top of a non-streaming Chat call.
// The caller sees the same callback contract as a native stream: one chunk
// carrying the full reply followed by OnComplete, or a single OnError.
type FallbackCoordinator struct {
	client ChatClient
}

// NewFallbackCoordinator creates a coordinator around client.
func NewFallbackCoordinator(client ChatClient) *FallbackCoordinator {
	return &FallbackCoordinator{client: client}
}

// StreamChat runs Chat and reports the result through cb.
func (f *FallbackCoordinator) StreamChat(ctx context.Context, conversation Conversation, cb StreamCallback) {
	logger := observability.FromContext(ctx)
	logger.Debug("streaming through chat fallback")

	content, err := f.client.Chat(ctx, conversation)
	if err != nil {
		logger.Warn("fallback chat failed", observability.Error(err))
		cb.OnError(err)
		return
	}

	cb.OnChunk(content)
	cb.OnComplete()
}
