package domain_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/mocks"
)

func TestCallbackFuncs_NilFuncsAreSkipped(t *testing.T) {
	var cb domain.StreamCallback = domain.CallbackFuncs{}

	require.NotPanics(t, func() {
		cb.OnChunk("x")
		cb.OnComplete()
		cb.OnError(errors.New("boom"))
	})
}

func TestGuardCallback(t *testing.T) {
	t.Run("should drop everything after complete", func(t *testing.T) {
		recorder := mocks.NewStreamRecorder()
		guarded := domain.GuardCallback(recorder)

		guarded.OnChunk("a")
		guarded.OnComplete()
		guarded.OnChunk("b")
		guarded.OnError(errors.New("late"))
		guarded.OnComplete()

		require.True(t, guarded.Finished())
		require.Equal(t, []string{"chunk:a", "complete"}, recorder.Events())
	})

	t.Run("should drop everything after error", func(t *testing.T) {
		recorder := mocks.NewStreamRecorder()
		guarded := domain.GuardCallback(recorder)

		guarded.OnError(errors.New("first"))
		guarded.OnComplete()
		guarded.OnError(errors.New("second"))

		require.Equal(t, []string{"error:first"}, recorder.Events())
	})

	t.Run("should not be finished before terminal callback", func(t *testing.T) {
		guarded := domain.GuardCallback(mocks.NewStreamRecorder())
		guarded.OnChunk("a")

		require.False(t, guarded.Finished())
	})

	t.Run("should not wrap twice", func(t *testing.T) {
		guarded := domain.GuardCallback(mocks.NewStreamRecorder())

		require.Same(t, guarded, domain.GuardCallback(guarded))
	})

	t.Run("should deliver one terminal under concurrent callers", func(t *testing.T) {
		recorder := mocks.NewStreamRecorder()
		guarded := domain.GuardCallback(recorder)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				guarded.OnComplete()
			}()
			go func() {
				defer wg.Done()
				guarded.OnError(errors.New("boom"))
			}()
		}
		wg.Wait()

		require.Len(t, recorder.Events(), 1)
	})
}

func TestChannelCallback(t *testing.T) {
	t.Run("should send chunks then done and close", func(t *testing.T) {
		cb, chunks := domain.NewChannelCallback(context.Background())

		go func() {
			cb.OnChunk("a")
			cb.OnChunk("b")
			cb.OnComplete()
		}()

		var received []domain.StreamChunk
		for chunk := range chunks {
			received = append(received, chunk)
		}

		require.Equal(t, []domain.StreamChunk{
			{Delta: "a"},
			{Delta: "b"},
			{Done: true},
		}, received)
	})

	t.Run("should carry error in terminal chunk", func(t *testing.T) {
		cb, chunks := domain.NewChannelCallback(context.Background())
		streamErr := errors.New("boom")

		go cb.OnError(streamErr)

		chunk, ok := <-chunks
		require.True(t, ok)
		require.True(t, chunk.Done)
		require.ErrorIs(t, chunk.Error, streamErr)

		_, ok = <-chunks
		require.False(t, ok)
	})

	t.Run("should not block producer once context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cb, _ := domain.NewChannelCallback(ctx)
		cancel()

		finished := make(chan struct{})
		go func() {
			cb.OnChunk("ignored")
			cb.OnComplete()
			close(finished)
		}()

		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("producer blocked on abandoned channel")
		}
	})
}
