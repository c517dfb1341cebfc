// Package openai implements domain.ChatClient for OpenAI-compatible chat
// completions APIs (OpenAI, Azure OpenAI, OpenRouter, vLLM, Ollama, ...)
// over plain HTTP. Streaming replies are decoded by package sse.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
	"github.com/Claisenn/codemind/internal/provider/transport"
	"github.com/Claisenn/codemind/internal/sse"
)

// ProviderName is the registry id of this client.
const ProviderName = "openai"

// Provider implements the domain.ChatClient interface for OpenAI.
type Provider struct {
	config    domain.ProviderConfig
	transport *transport.Client
	endpoint  string
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config domain.ProviderConfig, client *transport.Client) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if client == nil {
		return nil, errors.New("transport cannot be nil")
	}

	return &Provider{
		config:    config,
		transport: client,
		endpoint:  config.EffectiveBaseURL(DefaultBaseURL) + "/chat/completions",
	}, nil
}

// Chat sends a non-streaming completion request and returns the reply content.
func (p *Provider) Chat(ctx context.Context, conversation domain.Conversation) (string, error) {
	req, err := BuildRequest(conversation, p.config, false)
	if err != nil {
		return "", fmt.Errorf("invalid conversation: %w", err)
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API")

	body, err := p.transport.PostJSON(ctx, p.endpoint, req, p.authHeader())
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return "", err
	}

	content, err := ExtractContent(body)
	if err != nil {
		logger.Error("OpenAI API returned malformed response", observability.Error(err))
		return "", err
	}

	return content, nil
}

// StreamChat sends a streaming completion request and decodes the event
// stream into cb.
func (p *Provider) StreamChat(ctx context.Context, conversation domain.Conversation, cb domain.StreamCallback) {
	req, err := BuildRequest(conversation, p.config, true)
	if err != nil {
		cb.OnError(fmt.Errorf("invalid conversation: %w", err))
		return
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI streaming API")

	body, err := p.transport.PostStream(ctx, p.endpoint, req, p.authHeader())
	if err != nil {
		logger.Error("OpenAI stream failed to start", observability.Error(err))
		cb.OnError(err)
		return
	}
	defer body.Close()
	defer logger.Debug("OpenAI stream completed")

	sse.Decode(body, ExtractDelta, cb)
}

// SupportsStreaming reports whether streaming is enabled for this client.
func (p *Provider) SupportsStreaming() bool {
	return p.config.IsStreamingEnabled()
}

func (p *Provider) authHeader() transport.Header {
	return transport.Header{Key: "Authorization", Value: "Bearer " + p.config.APIKey}
}
