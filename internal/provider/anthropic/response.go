package anthropic

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Claisenn/codemind/internal/domain"
)

// ExtractContent concatenates the text blocks of a Messages API reply.
func ExtractContent(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", &domain.MalformedResponseError{Reason: "body is not valid JSON"}
	}

	blocks := gjson.GetBytes(body, "content")
	if !blocks.IsArray() || len(blocks.Array()) == 0 {
		return "", &domain.MalformedResponseError{Reason: "content missing or empty"}
	}

	var builder strings.Builder
	found := false
	for _, block := range blocks.Array() {
		if block.Get("type").Str != "text" {
			continue
		}
		text := block.Get("text")
		if text.Type != gjson.String {
			continue
		}
		builder.WriteString(text.Str)
		found = true
	}

	if !found {
		return "", &domain.MalformedResponseError{Reason: "no text content block"}
	}

	return builder.String(), nil
}
