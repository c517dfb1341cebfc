package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/mocks"
	"github.com/Claisenn/codemind/internal/provider/registry"
)

const waitTimeout = 2 * time.Second

func newGateway(t *testing.T, streamingEnabled bool, clients map[string]domain.ChatClient) *domain.GatewayService {
	t.Helper()

	reg := registry.NewRegistry()
	for id, client := range clients {
		require.NoError(t, reg.Register(context.Background(), id, client))
	}

	return domain.NewGatewayService(reg, streamingEnabled)
}

func TestGatewayService_Chat(t *testing.T) {
	t.Run("should resolve future with content", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		conversation := domain.Conversation{domain.UserMessage("question")}
		client.EXPECT().Chat(mock.Anything, conversation).Return("42", nil)

		gateway := newGateway(t, true, map[string]domain.ChatClient{"OpenAI": client})

		future, err := gateway.Chat(context.Background(), "openai", conversation)
		require.NoError(t, err)

		content, err := future.Await(context.Background())
		require.NoError(t, err)
		require.Equal(t, "42", content)

		select {
		case <-future.Done():
		default:
			t.Fatal("future should be done after Await returns")
		}
	})

	t.Run("should fail synchronously for unknown provider", func(t *testing.T) {
		gateway := newGateway(t, true, nil)

		future, err := gateway.Chat(context.Background(), "nonexistent", domain.Conversation{})

		require.Nil(t, future)
		var unknownErr *domain.UnknownProviderError
		require.ErrorAs(t, err, &unknownErr)
	})

	t.Run("should fail synchronously for nil conversation", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		gateway := newGateway(t, true, map[string]domain.ChatClient{"openai": client})

		future, err := gateway.Chat(context.Background(), "openai", nil)

		require.Nil(t, future)
		require.Error(t, err)
		require.Contains(t, err.Error(), "conversation cannot be nil")
	})

	t.Run("should reject future with client error", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		transportErr := &domain.TransportError{StatusCode: 500, Message: "boom"}
		client.EXPECT().Chat(mock.Anything, mock.Anything).Return("", transportErr)

		gateway := newGateway(t, true, map[string]domain.ChatClient{"openai": client})

		future, err := gateway.Chat(context.Background(), "openai", domain.Conversation{})
		require.NoError(t, err)

		_, err = future.Await(context.Background())
		var gotErr *domain.TransportError
		require.ErrorAs(t, err, &gotErr)
		require.Equal(t, 500, gotErr.StatusCode)
	})

	t.Run("should stop waiting when await context is done", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		release := make(chan struct{})
		client.EXPECT().Chat(mock.Anything, mock.Anything).
			RunAndReturn(func(context.Context, domain.Conversation) (string, error) {
				<-release
				return "late", nil
			})

		gateway := newGateway(t, true, map[string]domain.ChatClient{"openai": client})

		future, err := gateway.Chat(context.Background(), "openai", domain.Conversation{})
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err = future.Await(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
		content, err := future.Await(context.Background())
		require.NoError(t, err)
		require.Equal(t, "late", content)
	})
}

func TestGatewayService_StreamChat(t *testing.T) {
	t.Run("should use native streaming when supported", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.EXPECT().SupportsStreaming().Return(true)
		client.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
			Run(func(_ context.Context, _ domain.Conversation, cb domain.StreamCallback) {
				cb.OnChunk("He")
				cb.OnChunk("llo")
				cb.OnComplete()
			})

		gateway := newGateway(t, true, map[string]domain.ChatClient{"openai": client})
		recorder := mocks.NewStreamRecorder()

		err := gateway.StreamChat(context.Background(), "OPENAI", domain.Conversation{domain.UserMessage("hi")}, recorder)
		require.NoError(t, err)
		require.True(t, recorder.Wait(waitTimeout))

		require.Equal(t, []string{"chunk:He", "chunk:llo", "complete"}, recorder.Events())
	})

	t.Run("should fall back to chat when streaming is disabled globally", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.EXPECT().SupportsStreaming().Return(true)
		client.EXPECT().Chat(mock.Anything, mock.Anything).Return("42", nil)

		gateway := newGateway(t, false, map[string]domain.ChatClient{"openai": client})
		recorder := mocks.NewStreamRecorder()

		err := gateway.StreamChat(context.Background(), "openai", domain.Conversation{}, recorder)
		require.NoError(t, err)
		require.True(t, recorder.Wait(waitTimeout))

		require.Equal(t, []string{"chunk:42", "complete"}, recorder.Events())
	})

	t.Run("should fall back to chat when client cannot stream", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.EXPECT().SupportsStreaming().Return(false)
		client.EXPECT().Chat(mock.Anything, mock.Anything).Return("", errors.New("upstream down"))

		gateway := newGateway(t, true, map[string]domain.ChatClient{"anthropic": client})
		recorder := mocks.NewStreamRecorder()

		err := gateway.StreamChat(context.Background(), "anthropic", domain.Conversation{}, recorder)
		require.NoError(t, err)
		require.True(t, recorder.Wait(waitTimeout))

		require.Equal(t, []string{"error:upstream down"}, recorder.Events())
	})

	t.Run("should fail synchronously for unknown provider without callbacks", func(t *testing.T) {
		gateway := newGateway(t, true, nil)
		recorder := mocks.NewStreamRecorder()

		err := gateway.StreamChat(context.Background(), "nonexistent", domain.Conversation{}, recorder)

		var unknownErr *domain.UnknownProviderError
		require.ErrorAs(t, err, &unknownErr)
		require.False(t, recorder.Wait(50*time.Millisecond))
		require.Empty(t, recorder.Events())
	})

	t.Run("should reject nil callback", func(t *testing.T) {
		gateway := newGateway(t, true, nil)

		err := gateway.StreamChat(context.Background(), "openai", domain.Conversation{}, nil)

		require.Error(t, err)
		require.Contains(t, err.Error(), "callback cannot be nil")
	})

	t.Run("should complete when client returns without terminal callback", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.EXPECT().SupportsStreaming().Return(true)
		client.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
			Run(func(_ context.Context, _ domain.Conversation, cb domain.StreamCallback) {
				cb.OnChunk("only")
			})

		gateway := newGateway(t, true, map[string]domain.ChatClient{"openai": client})
		recorder := mocks.NewStreamRecorder()

		require.NoError(t, gateway.StreamChat(context.Background(), "openai", domain.Conversation{}, recorder))
		require.True(t, recorder.Wait(waitTimeout))

		require.Equal(t, []string{"chunk:only", "complete"}, recorder.Events())
	})

	t.Run("should deliver a single terminal callback", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.EXPECT().SupportsStreaming().Return(true)
		client.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
			Run(func(_ context.Context, _ domain.Conversation, cb domain.StreamCallback) {
				cb.OnChunk("a")
				cb.OnError(errors.New("read failed"))
				cb.OnChunk("b")
				cb.OnComplete()
			})

		gateway := newGateway(t, true, map[string]domain.ChatClient{"openai": client})
		recorder := mocks.NewStreamRecorder()

		require.NoError(t, gateway.StreamChat(context.Background(), "openai", domain.Conversation{}, recorder))
		require.True(t, recorder.Wait(waitTimeout))

		require.Equal(t, []string{"chunk:a", "error:read failed"}, recorder.Events())
	})
}

func TestGatewayService_Stream(t *testing.T) {
	t.Run("should deliver chunks over channel", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.EXPECT().SupportsStreaming().Return(true)
		client.EXPECT().StreamChat(mock.Anything, mock.Anything, mock.Anything).
			Run(func(_ context.Context, _ domain.Conversation, cb domain.StreamCallback) {
				cb.OnChunk("He")
				cb.OnChunk("llo")
				cb.OnComplete()
			})

		gateway := newGateway(t, true, map[string]domain.ChatClient{"openai": client})

		chunks, err := gateway.Stream(context.Background(), "openai", domain.Conversation{})
		require.NoError(t, err)

		var received []domain.StreamChunk
		for chunk := range chunks {
			received = append(received, chunk)
		}

		require.Equal(t, []domain.StreamChunk{
			{Delta: "He"},
			{Delta: "llo"},
			{Done: true},
		}, received)
	})

	t.Run("should deliver error chunk", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.EXPECT().SupportsStreaming().Return(false)
		client.EXPECT().Chat(mock.Anything, mock.Anything).Return("", errors.New("boom"))

		gateway := newGateway(t, true, map[string]domain.ChatClient{"anthropic": client})

		chunks, err := gateway.Stream(context.Background(), "anthropic", domain.Conversation{})
		require.NoError(t, err)

		var received []domain.StreamChunk
		for chunk := range chunks {
			received = append(received, chunk)
		}

		require.Len(t, received, 1)
		require.True(t, received[0].Done)
		require.EqualError(t, received[0].Error, "boom")
	})

	t.Run("should return resolve error without channel", func(t *testing.T) {
		gateway := newGateway(t, true, nil)

		chunks, err := gateway.Stream(context.Background(), "missing", domain.Conversation{})

		require.Nil(t, chunks)
		var unknownErr *domain.UnknownProviderError
		require.ErrorAs(t, err, &unknownErr)
	})
}

func TestGatewayService_Providers(t *testing.T) {
	gateway := newGateway(t, true, map[string]domain.ChatClient{
		"OpenAI":    mocks.NewMockChatClient(t),
		"echo":      mocks.NewMockChatClient(t),
		"Anthropic": mocks.NewMockChatClient(t),
	})

	require.Equal(t, []string{"anthropic", "echo", "openai"}, gateway.Providers(context.Background()))
}
