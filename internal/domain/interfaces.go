package domain

import (
	"context"
	"time"
)

// ChatClient is implemented once per provider.
type ChatClient interface {
	// Chat sends the conversation and returns the full assistant reply.
	Chat(ctx context.Context, conversation Conversation) (string, error)

	// StreamChat sends the conversation and reports the reply through cb.
	// It returns after the terminal callback has fired.
	StreamChat(ctx context.Context, conversation Conversation, cb StreamCallback)

	// SupportsStreaming reports whether StreamChat streams natively.
	SupportsStreaming() bool
}

// StreamCallback receives the incremental reply of a streaming call.
// OnChunk may fire zero or more times in arrival order; exactly one of
// OnComplete or OnError fires last.
type StreamCallback interface {
	OnChunk(content string)
	OnComplete()
	OnError(err error)
}

// ProviderRegistry manages available chat clients.
type ProviderRegistry interface {
	// Register stores client under the lower-cased id, replacing any prior entry.
	Register(ctx context.Context, id string, client ChatClient) error

	// Resolve looks up a client by case-insensitive id.
	Resolve(ctx context.Context, id string) (ChatClient, error)

	// List returns the registered ids.
	List(ctx context.Context) []string
}

// ResponseCache stores full chat replies keyed by request fingerprint.
type ResponseCache interface {
	// Get returns ErrCacheMiss when nothing is stored under key.
	Get(ctx context.Context, key string) (string, error)

	// Set stores content under key for ttl.
	Set(ctx context.Context, key string, content string, ttl time.Duration) error
}
