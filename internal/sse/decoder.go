// Package sse decodes OpenAI-style Server-Sent-Events streams into the
// domain.StreamCallback contract.
//
// Only single-line "data: " frames are recognized. The literal line
// "data: [DONE]" ends the stream. Every other line (blank separators,
// ":" comments, event/id/retry fields) is ignored.
package sse

import (
	"bufio"
	"io"
	"strings"

	"github.com/Claisenn/codemind/internal/domain"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "data: [DONE]"

	initialBufferSize = 64 * 1024
	// maxLineSize bounds a single frame; long completions can exceed
	// bufio.Scanner's 64 KiB default.
	maxLineSize = 1024 * 1024
)

// DeltaExtractor pulls the content delta out of one data payload. ok is
// false when the payload carries no content; it never fails.
type DeltaExtractor func(payload string) (content string, ok bool)

// Decode reads r line by line and drives cb. It returns once the terminal
// callback has fired: OnComplete on the [DONE] sentinel or end of input,
// OnError when reading fails. Chunks are delivered synchronously in arrival
// order. Decode does not close r.
func Decode(r io.Reader, extract DeltaExtractor, cb domain.StreamCallback) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBufferSize), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()

		if line == doneSentinel {
			cb.OnComplete()
			return
		}

		payload, found := strings.CutPrefix(line, dataPrefix)
		if !found {
			continue
		}

		if content, ok := extract(payload); ok {
			cb.OnChunk(content)
		}
	}

	if err := scanner.Err(); err != nil {
		cb.OnError(&domain.TransportError{
			Message: "failed to read event stream",
			Err:     err,
		})
		return
	}

	cb.OnComplete()
}
