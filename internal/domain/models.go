package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role constants.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Defaults applied when a ProviderConfig leaves a field unset.
const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 4000
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// UserMessage creates a message with the user role.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage creates a message with the assistant role.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// SystemMessage creates a message with the system role.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// IsValidRole reports whether role is one of the supported message roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	default:
		return false
	}
}

// Conversation is the ordered chat history sent to a provider.
type Conversation []Message

// ValidateConversation checks the preconditions every request builder
// relies on: a non-nil conversation whose messages carry known roles.
func ValidateConversation(conversation Conversation) error {
	if conversation == nil {
		return errors.New("conversation cannot be nil")
	}

	for i, msg := range conversation {
		if !IsValidRole(msg.Role) {
			return fmt.Errorf("message %d has invalid role %q", i, msg.Role)
		}
	}

	return nil
}

// ProviderConfig holds the settings a ChatClient is constructed with.
// Temperature and StreamingEnabled are pointers so that an explicit zero
// value can be told apart from an unset one.
type ProviderConfig struct {
	ProviderID       string
	APIKey           string
	BaseURL          string
	Model            string
	Temperature      *float64
	MaxTokens        int
	StreamingEnabled *bool
}

// EffectiveModel returns the configured model or DefaultModel.
func (c ProviderConfig) EffectiveModel() string {
	if strings.TrimSpace(c.Model) == "" {
		return DefaultModel
	}
	return c.Model
}

// EffectiveTemperature returns the configured temperature or DefaultTemperature.
func (c ProviderConfig) EffectiveTemperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// EffectiveMaxTokens returns the configured token limit or DefaultMaxTokens.
func (c ProviderConfig) EffectiveMaxTokens() int {
	if c.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}

// IsStreamingEnabled reports whether streaming is enabled; unset means enabled.
func (c ProviderConfig) IsStreamingEnabled() bool {
	if c.StreamingEnabled == nil {
		return true
	}
	return *c.StreamingEnabled
}

// EffectiveBaseURL returns the configured base URL without a trailing slash,
// or fallback when none is configured.
func (c ProviderConfig) EffectiveBaseURL(fallback string) string {
	baseURL := strings.TrimSpace(c.BaseURL)
	if baseURL == "" {
		baseURL = fallback
	}
	return strings.TrimRight(baseURL, "/")
}

// StreamChunk represents a single streaming response chunk.
type StreamChunk struct {
	Delta string `json:"delta"`
	Done  bool   `json:"done"`
	Error error  `json:"-"`
}
