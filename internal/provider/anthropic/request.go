package anthropic

import (
	"strings"

	"github.com/Claisenn/codemind/internal/domain"
)

// MessagesRequest is the Anthropic Messages API wire request.
type MessagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
}

// Message is one entry of MessagesRequest.Messages. Anthropic only accepts
// the user and assistant roles here.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildRequest converts a conversation into a Messages API request. System
// messages are hoisted into the top-level system prompt in order, joined by
// blank lines; the remaining messages keep their relative order.
func BuildRequest(conversation domain.Conversation, config domain.ProviderConfig) (MessagesRequest, error) {
	if err := domain.ValidateConversation(conversation); err != nil {
		return MessagesRequest{}, err
	}

	messages := make([]Message, 0, len(conversation))
	systemPrompt := make([]string, 0)

	for _, msg := range conversation {
		if msg.Role == domain.RoleSystem {
			systemPrompt = append(systemPrompt, msg.Content)
			continue
		}
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}

	return MessagesRequest{
		Model:       config.EffectiveModel(),
		System:      strings.Join(systemPrompt, "\n\n"),
		Messages:    messages,
		Temperature: config.EffectiveTemperature(),
		MaxTokens:   config.EffectiveMaxTokens(),
		Stream:      false,
	}, nil
}
