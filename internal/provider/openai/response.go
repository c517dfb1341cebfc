package openai

import (
	"github.com/tidwall/gjson"

	"github.com/Claisenn/codemind/internal/domain"
)

// ExtractContent reads choices[0].message.content from a non-streaming reply.
func ExtractContent(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", &domain.MalformedResponseError{Reason: "body is not valid JSON"}
	}

	choices := gjson.GetBytes(body, "choices")
	if !choices.IsArray() || len(choices.Array()) == 0 {
		return "", &domain.MalformedResponseError{Reason: "choices missing or empty"}
	}

	content := choices.Get("0.message.content")
	if content.Type != gjson.String {
		return "", &domain.MalformedResponseError{Reason: "choices[0].message.content missing"}
	}

	return content.Str, nil
}

// ExtractDelta reads choices[0].delta.content from one stream chunk.
// Heartbeats, role-only deltas and unparsable chunks yield ok == false.
func ExtractDelta(payload string) (string, bool) {
	if !gjson.Valid(payload) {
		return "", false
	}

	content := gjson.Get(payload, "choices.0.delta.content")
	if content.Type != gjson.String {
		return "", false
	}

	return content.Str, true
}
