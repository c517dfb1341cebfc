// Package anthropic implements domain.ChatClient for the Anthropic Messages
// API. It has no native streaming; the gateway routes its streams through
// domain.FallbackCoordinator.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
	"github.com/Claisenn/codemind/internal/provider/transport"
)

const (
	// ProviderName is the registry id of this client.
	ProviderName = "anthropic"

	// DefaultBaseURL is the Anthropic API root used when none is configured.
	DefaultBaseURL = "https://api.anthropic.com/v1"

	apiVersion = "2023-06-01"
)

// Config contains Anthropic provider configuration.
type Config struct {
	APIKey  string `env:"ANTHROPIC_API_KEY"`
	BaseURL string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com/v1"`
	Model   string `env:"ANTHROPIC_MODEL"    envDefault:"claude-3-5-sonnet-latest"`
	Timeout int    `env:"ANTHROPIC_TIMEOUT"  envDefault:"60"`
}

// Provider implements the domain.ChatClient interface for Anthropic.
type Provider struct {
	config    domain.ProviderConfig
	transport *transport.Client
	endpoint  string
}

// NewProvider creates a new Anthropic provider.
func NewProvider(config domain.ProviderConfig, client *transport.Client) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}
	if client == nil {
		return nil, errors.New("transport cannot be nil")
	}

	return &Provider{
		config:    config,
		transport: client,
		endpoint:  config.EffectiveBaseURL(DefaultBaseURL) + "/messages",
	}, nil
}

// Chat sends a Messages API request and returns the reply text.
func (p *Provider) Chat(ctx context.Context, conversation domain.Conversation) (string, error) {
	req, err := BuildRequest(conversation, p.config)
	if err != nil {
		return "", fmt.Errorf("invalid conversation: %w", err)
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)
	logger.Debug("calling Anthropic API")

	body, err := p.transport.PostJSON(ctx, p.endpoint, req,
		transport.Header{Key: "x-api-key", Value: p.config.APIKey},
		transport.Header{Key: "anthropic-version", Value: apiVersion},
	)
	if err != nil {
		logger.Error("Anthropic API call failed", observability.Error(err))
		return "", err
	}

	return ExtractContent(body)
}

// StreamChat runs Chat through the fallback coordinator; it exists so the
// client satisfies domain.ChatClient even when called directly.
func (p *Provider) StreamChat(ctx context.Context, conversation domain.Conversation, cb domain.StreamCallback) {
	domain.NewFallbackCoordinator(p).StreamChat(ctx, conversation, cb)
}

// SupportsStreaming always reports false.
func (p *Provider) SupportsStreaming() bool {
	return false
}
