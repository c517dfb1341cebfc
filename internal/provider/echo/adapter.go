// Package echo provides an offline provider that echoes the conversation back.
// It implements domain.ChatClient without making external API calls, giving
// deterministic replies for local development and smoke tests.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
)

const (
	// ProviderName is the registry id of this client.
	ProviderName = "echo"

	defaultChunkDelay = 10 * time.Millisecond
)

// Provider implements the domain.ChatClient interface for echo testing.
type Provider struct {
	chunkDelay time.Duration
}

// NewProvider creates a new echo provider.
// No configuration is required as this provider operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{chunkDelay: defaultChunkDelay}
}

// NewProviderWithDelay creates an echo provider pausing delay between chunks.
func NewProviderWithDelay(delay time.Duration) *Provider {
	return &Provider{chunkDelay: delay}
}

// Chat returns the echoed conversation.
func (p *Provider) Chat(ctx context.Context, conversation domain.Conversation) (string, error) {
	if conversation == nil {
		return "", errors.New("conversation cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("echoing conversation", observability.Int("messages", len(conversation)))

	return buildEchoContent(conversation), nil
}

// StreamChat streams the echoed conversation word by word.
func (p *Provider) StreamChat(ctx context.Context, conversation domain.Conversation, cb domain.StreamCallback) {
	if conversation == nil {
		cb.OnError(errors.New("conversation cannot be nil"))
		return
	}

	logger := observability.FromContext(ctx)
	logger.Debug("streaming echo request")

	words := strings.Fields(buildEchoContent(conversation))

	for i, word := range words {
		delta := word
		if i < len(words)-1 {
			delta += " " // Add space between words
		}

		if ctx.Err() != nil {
			p.interrupted(ctx, cb)
			return
		}

		cb.OnChunk(delta)

		if p.chunkDelay > 0 && i < len(words)-1 {
			timer := time.NewTimer(p.chunkDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				p.interrupted(ctx, cb)
				return
			case <-timer.C:
			}
		}
	}

	cb.OnComplete()
}

func (p *Provider) interrupted(ctx context.Context, cb domain.StreamCallback) {
	cb.OnError(&domain.TransportError{
		StatusCode: 0,
		Message:    "echo stream interrupted",
		Err:        ctx.Err(),
	})
}

// SupportsStreaming always reports true.
func (p *Provider) SupportsStreaming() bool {
	return true
}

// buildEchoContent constructs the echo response from conversation messages.
func buildEchoContent(conversation domain.Conversation) string {
	if len(conversation) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, msg := range conversation {
		builder.WriteString(fmt.Sprintf("[%s]: %s\n", msg.Role, msg.Content))
	}
	return builder.String()
}
