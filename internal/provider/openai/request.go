package openai

import (
	"github.com/Claisenn/codemind/internal/domain"
)

// ChatRequest is the chat completions wire request. Field order matches the
// documented wire shape.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// ChatMessage is one entry of ChatRequest.Messages.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildRequest converts a conversation and config into a wire request.
// Messages mirror the conversation in order and count; unset config values
// take the domain defaults.
func BuildRequest(conversation domain.Conversation, config domain.ProviderConfig, stream bool) (ChatRequest, error) {
	if err := domain.ValidateConversation(conversation); err != nil {
		return ChatRequest{}, err
	}

	messages := make([]ChatMessage, len(conversation))
	for i, msg := range conversation {
		messages[i] = ChatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	return ChatRequest{
		Model:       config.EffectiveModel(),
		Messages:    messages,
		Temperature: config.EffectiveTemperature(),
		MaxTokens:   config.EffectiveMaxTokens(),
		Stream:      stream,
	}, nil
}
