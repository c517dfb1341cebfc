// Package openaisdk provides a domain.ChatClient backed by the official
// OpenAI SDK. It speaks the same protocol as package openai but lets the SDK
// handle request timeouts and retries, and converts SDK types to domain types.
package openaisdk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
)

// ProviderName is the registry id of this client.
const ProviderName = "openai-sdk"

// Options holds the SDK transport settings.
type Options struct {
	Timeout    time.Duration
	MaxRetries int
}

// Provider implements the domain.ChatClient interface through the OpenAI SDK.
type Provider struct {
	client openai.Client
	config domain.ProviderConfig
}

// NewProvider creates a new SDK-backed OpenAI provider.
func NewProvider(config domain.ProviderConfig, opts Options) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(config.BaseURL))
	}

	if opts.Timeout > 0 {
		requestOpts = append(requestOpts, option.WithRequestTimeout(opts.Timeout))
	}

	if opts.MaxRetries >= 0 {
		requestOpts = append(requestOpts, option.WithMaxRetries(opts.MaxRetries))
	}

	return &Provider{
		client: openai.NewClient(requestOpts...),
		config: config,
	}, nil
}

// Chat sends a completion request and returns the reply content.
func (p *Provider) Chat(ctx context.Context, conversation domain.Conversation) (string, error) {
	params, err := p.toSDKParams(conversation)
	if err != nil {
		return "", fmt.Errorf("invalid conversation: %w", err)
	}

	ctx = observability.WithModel(ctx, string(params.Model))
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API via SDK")

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return "", toTransportError(err)
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	if len(resp.Choices) == 0 {
		return "", &domain.MalformedResponseError{Reason: "choices missing or empty"}
	}

	message := resp.Choices[0].Message
	if !message.JSON.Content.Valid() {
		return "", &domain.MalformedResponseError{Reason: "choices[0].message.content missing"}
	}

	return message.Content, nil
}

// StreamChat streams a completion and reports each content delta to cb.
func (p *Provider) StreamChat(ctx context.Context, conversation domain.Conversation, cb domain.StreamCallback) {
	params, err := p.toSDKParams(conversation)
	if err != nil {
		cb.OnError(fmt.Errorf("invalid conversation: %w", err))
		return
	}

	ctx = observability.WithModel(ctx, string(params.Model))
	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI streaming API via SDK")

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		// Absent or null content is not a chunk; "" is.
		delta := chunk.Choices[0].Delta
		if delta.JSON.Content.Valid() {
			cb.OnChunk(delta.Content)
		}
	}

	if err := stream.Err(); err != nil {
		logger.Error("OpenAI stream error", observability.Error(err))
		cb.OnError(toTransportError(err))
		return
	}

	cb.OnComplete()
}

// SupportsStreaming reports whether streaming is enabled for this client.
func (p *Provider) SupportsStreaming() bool {
	return p.config.IsStreamingEnabled()
}

// toSDKParams converts the conversation to SDK ChatCompletionNewParams.
func (p *Provider) toSDKParams(conversation domain.Conversation) (openai.ChatCompletionNewParams, error) {
	if err := domain.ValidateConversation(conversation); err != nil {
		return openai.ChatCompletionNewParams{}, err
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, len(conversation))
	for i, msg := range conversation {
		switch msg.Role {
		case domain.RoleAssistant:
			messages[i] = openai.AssistantMessage(msg.Content)
		case domain.RoleSystem:
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.config.EffectiveModel()),
		Messages:    messages,
		Temperature: openai.Float(p.config.EffectiveTemperature()),
		MaxTokens:   openai.Int(int64(p.config.EffectiveMaxTokens())),
	}, nil
}

func toTransportError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &domain.TransportError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Error(),
			Err:        err,
		}
	}

	return &domain.TransportError{
		StatusCode: 0,
		Message:    "OpenAI SDK request failed",
		Err:        err,
	}
}
