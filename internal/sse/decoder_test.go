package sse_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/mocks"
	"github.com/Claisenn/codemind/internal/provider/openai"
	"github.com/Claisenn/codemind/internal/sse"
)

func stream(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestDecode_DeliversChunksThenComplete(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	sse.Decode(stream(
		`data: {"choices":[{"delta":{"content":"He"}}]}`,
		`data: {"choices":[{"delta":{"content":"llo"}}]}`,
		`data: [DONE]`,
	), openai.ExtractDelta, recorder)

	require.Equal(t, []string{"chunk:He", "chunk:llo", "complete"}, recorder.Events())
}

func TestDecode_SkipsMalformedChunk(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	sse.Decode(stream(
		`data: {"choices":[{"delta":{"content":"He"}}]}`,
		`data: {"choices":[{"delta":{"content":`,
		`data: {"choices":[{"delta":{"content":"llo"}}]}`,
		`data: [DONE]`,
	), openai.ExtractDelta, recorder)

	require.Equal(t, []string{"chunk:He", "chunk:llo", "complete"}, recorder.Events())
	require.NoError(t, recorder.Err())
}

func TestDecode_EmptyContentIsDelivered(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	sse.Decode(stream(
		`data: {"choices":[{"delta":{"role":"assistant"}}]}`,
		`data: {"choices":[{"delta":{"content":""}}]}`,
		`data: [DONE]`,
	), openai.ExtractDelta, recorder)

	require.Equal(t, []string{"chunk:", "complete"}, recorder.Events())
}

func TestDecode_IgnoresNonDataLines(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	sse.Decode(stream(
		`: keep-alive`,
		``,
		`event: message`,
		`id: 7`,
		`data:{"choices":[{"delta":{"content":"no space"}}]}`,
		`data: {"choices":[{"delta":{"content":"ok"}}]}`,
		``,
		`data: [DONE]`,
	), openai.ExtractDelta, recorder)

	require.Equal(t, []string{"chunk:ok", "complete"}, recorder.Events())
}

func TestDecode_CompletesAtEndOfStreamWithoutSentinel(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	sse.Decode(stream(
		`data: {"choices":[{"delta":{"content":"partial"}}]}`,
	), openai.ExtractDelta, recorder)

	require.Equal(t, []string{"chunk:partial", "complete"}, recorder.Events())
}

func TestDecode_EmptyInputCompletes(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	sse.Decode(strings.NewReader(""), openai.ExtractDelta, recorder)

	require.Equal(t, []string{"complete"}, recorder.Events())
}

func TestDecode_StopsAtSentinel(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	sse.Decode(stream(
		`data: {"choices":[{"delta":{"content":"a"}}]}`,
		`data: [DONE]`,
		`data: {"choices":[{"delta":{"content":"late"}}]}`,
	), openai.ExtractDelta, recorder)

	require.Equal(t, []string{"chunk:a", "complete"}, recorder.Events())
}

func TestDecode_HandlesCRLF(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	sse.Decode(strings.NewReader(
		"data: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\r\n\r\ndata: [DONE]\r\n",
	), openai.ExtractDelta, recorder)

	require.Equal(t, []string{"chunk:x", "complete"}, recorder.Events())
}

func TestDecode_ReadFailureReportsErrorOnce(t *testing.T) {
	recorder := mocks.NewStreamRecorder()
	readErr := errors.New("connection reset by peer")

	reader := io.MultiReader(
		stream(`data: {"choices":[{"delta":{"content":"He"}}]}`),
		iotest.ErrReader(readErr),
	)

	sse.Decode(reader, openai.ExtractDelta, recorder)

	events := recorder.Events()
	require.Len(t, events, 2)
	require.Equal(t, "chunk:He", events[0])
	require.True(t, strings.HasPrefix(events[1], "error:"))

	var transportErr *domain.TransportError
	require.ErrorAs(t, recorder.Err(), &transportErr)
	require.ErrorIs(t, recorder.Err(), readErr)
}

func TestDecode_UsesExtractorVerbatim(t *testing.T) {
	recorder := mocks.NewStreamRecorder()

	var payloads []string
	extract := func(payload string) (string, bool) {
		payloads = append(payloads, payload)
		return strings.ToUpper(payload), payload != "skip"
	}

	sse.Decode(stream("data: one", "data: skip", "data: two", "data: [DONE]"), extract, recorder)

	require.Equal(t, []string{"one", "skip", "two"}, payloads)
	require.Equal(t, []string{"chunk:ONE", "chunk:TWO", "complete"}, recorder.Events())
}
