package domain

import (
	"fmt"
)

// UnknownProviderError is returned when no client is registered under an id.
type UnknownProviderError struct {
	ProviderID string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %s", e.ProviderID)
}

// TransportError reports a network failure or a non-success HTTP status.
// StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: status %d: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Err)
	}
	return "transport error: " + e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a successful response missing required fields.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed response: " + e.Reason
}
