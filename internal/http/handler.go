package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Claisenn/codemind/internal/config"
	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
)

// ProviderHeader selects the provider for a chat request.
const ProviderHeader = "X-Provider"

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Messages domain.Conversation `json:"messages"`
	Stream   bool                `json:"stream"`
}

// ChatResponse is the body of a non-streaming chat reply.
type ChatResponse struct {
	Provider string `json:"provider"`
	Content  string `json:"content"`
}

// ProvidersResponse is the body of GET /v1/providers.
type ProvidersResponse struct {
	Providers []string `json:"providers"`
	Default   string   `json:"default"`
}

type streamDelta struct {
	Delta string `json:"delta"`
}

// Handler handles HTTP requests.
type Handler struct {
	gateway         *domain.GatewayService
	defaultProvider string
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(gateway *domain.GatewayService, ai *config.AIConfig) *Handler {
	defaultProvider := ""
	if ai != nil {
		defaultProvider = ai.Provider
	}

	return &Handler{
		gateway:         gateway,
		defaultProvider: defaultProvider,
	}
}

// HandleChat processes chat requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	provider := r.Header.Get(ProviderHeader)
	if provider == "" {
		provider = h.defaultProvider
	}
	if provider == "" {
		http.Error(w, "provider not specified in X-Provider header", http.StatusBadRequest)
		return
	}

	ctx = observability.WithProvider(ctx, provider)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Messages == nil {
		http.Error(w, "messages are required", http.StatusBadRequest)
		return
	}
	if err := domain.ValidateConversation(req.Messages); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("chat request received",
		observability.Int("messages", len(req.Messages)),
		observability.Bool("stream", req.Stream),
	)

	if req.Stream {
		h.handleStream(ctx, w, provider, req.Messages)
		return
	}

	future, err := h.gateway.Chat(ctx, provider, req.Messages)
	if err != nil {
		logger.Warn("chat rejected", observability.Error(err))
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	content, err := future.Await(ctx)
	if err != nil {
		logger.Error("chat failed", observability.Error(err))
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	writeJSON(ctx, w, ChatResponse{Provider: provider, Content: content})
}

func (h *Handler) handleStream(
	ctx context.Context,
	w http.ResponseWriter,
	provider string,
	conversation domain.Conversation,
) {
	logger := observability.FromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("streaming not supported")
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	chunks, err := h.gateway.Stream(ctx, provider, conversation)
	if err != nil {
		logger.Warn("stream rejected", observability.Error(err))
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	logger.Info("stream request started")

	// Set headers for SSE.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stream context done", observability.Error(ctx.Err()))
			return

		case chunk, chunkOk := <-chunks:
			if !chunkOk {
				return
			}

			if chunk.Error != nil {
				logger.Error("stream failed", observability.Error(chunk.Error))
				fmt.Fprintf(w, "event: error\ndata: %s\n\n", chunk.Error.Error())
				flusher.Flush()
				return
			}

			if chunk.Done {
				fmt.Fprint(w, "data: [DONE]\n\n")
				flusher.Flush()
				logger.Info("stream completed")
				return
			}

			data, _ := json.Marshal(streamDelta{Delta: chunk.Delta})
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// HandleProviders lists the registered provider ids.
func (h *Handler) HandleProviders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(ctx, w, ProvidersResponse{
		Providers: h.gateway.Providers(ctx),
		Default:   h.defaultProvider,
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}

func statusFor(err error) int {
	var unknownErr *domain.UnknownProviderError
	if errors.As(err, &unknownErr) {
		return http.StatusNotFound
	}

	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		return http.StatusBadGateway
	}

	var malformedErr *domain.MalformedResponseError
	if errors.As(err, &malformedErr) {
		return http.StatusBadGateway
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	return http.StatusInternalServerError
}
