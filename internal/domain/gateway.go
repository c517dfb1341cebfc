package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Claisenn/codemind/internal/observability"
)

// ChatFuture is the pending result of an asynchronous Chat call.
type ChatFuture struct {
	done    chan struct{}
	content string
	err     error
}

func newChatFuture() *ChatFuture {
	return &ChatFuture{done: make(chan struct{})}
}

func (f *ChatFuture) resolve(content string, err error) {
	f.content = content
	f.err = err
	close(f.done)
}

// Done is closed once the result is available.
func (f *ChatFuture) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is available or ctx is done.
func (f *ChatFuture) Await(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.content, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// GatewayService dispatches chat requests to registered providers.
type GatewayService struct {
	registry         ProviderRegistry
	streamingEnabled bool
}

// NewGatewayService creates a new gateway service (DI constructor).
// When streamingEnabled is false every StreamChat goes through the
// FallbackCoordinator.
func NewGatewayService(registry ProviderRegistry, streamingEnabled bool) *GatewayService {
	return &GatewayService{
		registry:         registry,
		streamingEnabled: streamingEnabled,
	}
}

// Chat resolves the provider synchronously and runs the request in the
// background. Resolution errors are returned immediately.
func (g *GatewayService) Chat(
	ctx context.Context,
	providerID string,
	conversation Conversation,
) (*ChatFuture, error) {
	client, err := g.resolve(ctx, providerID, conversation)
	if err != nil {
		return nil, err
	}

	ctx = observability.WithProvider(ctx, providerID)
	future := newChatFuture()

	go func() {
		logger := observability.FromContext(ctx)
		logger.Debug("chat request started", observability.Int("messages", len(conversation)))

		content, chatErr := client.Chat(ctx, conversation)
		if chatErr != nil {
			logger.Error("chat request failed", observability.Error(chatErr))
			future.resolve("", fmt.Errorf("chat failed: %w", chatErr))
			return
		}

		logger.Debug("chat request succeeded", observability.Int("content_length", len(content)))
		future.resolve(content, nil)
	}()

	return future, nil
}

// StreamChat resolves the provider synchronously and streams the reply to cb
// in the background. Resolution errors are returned immediately and cb is
// never called in that case.
func (g *GatewayService) StreamChat(
	ctx context.Context,
	providerID string,
	conversation Conversation,
	cb StreamCallback,
) error {
	if cb == nil {
		return errors.New("callback cannot be nil")
	}

	client, err := g.resolve(ctx, providerID, conversation)
	if err != nil {
		return err
	}

	ctx = observability.WithProvider(ctx, providerID)
	guarded := GuardCallback(cb)

	go func() {
		logger := observability.FromContext(ctx)

		clientStreaming := client.SupportsStreaming()
		if !g.streamingEnabled || !clientStreaming {
			logger.Debug("native streaming unavailable",
				observability.Bool("streaming_enabled", g.streamingEnabled),
				observability.Bool("client_streaming", clientStreaming))
			NewFallbackCoordinator(client).StreamChat(ctx, conversation, guarded)
			return
		}

		logger.Debug("stream request started")
		client.StreamChat(ctx, conversation, guarded)

		if !guarded.Finished() {
			// A client returned without a terminal signal; close the sequence.
			logger.Warn("stream ended without terminal callback")
			guarded.OnComplete()
		}
	}()

	return nil
}

// Stream is StreamChat delivered over a channel. The channel carries the
// chunks in order followed by one chunk with Done set, then it is closed.
func (g *GatewayService) Stream(
	ctx context.Context,
	providerID string,
	conversation Conversation,
) (<-chan StreamChunk, error) {
	cb, chunks := NewChannelCallback(ctx)
	if err := g.StreamChat(ctx, providerID, conversation, cb); err != nil {
		return nil, err
	}
	return chunks, nil
}

// Providers returns the registered provider ids in sorted order.
func (g *GatewayService) Providers(ctx context.Context) []string {
	ids := g.registry.List(ctx)
	sort.Strings(ids)
	return ids
}

func (g *GatewayService) resolve(ctx context.Context, providerID string, conversation Conversation) (ChatClient, error) {
	if conversation == nil {
		return nil, errors.New("conversation cannot be nil")
	}

	client, err := g.registry.Resolve(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("provider not found: %w", err)
	}

	return client, nil
}
