package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/Claisenn/codemind/internal/config"
	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/http"
	"github.com/Claisenn/codemind/internal/http/middleware"
	"github.com/Claisenn/codemind/internal/observability"
	"github.com/Claisenn/codemind/internal/provider/registry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})
	if err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Invoke(func(*zap.Logger) {}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Response cache (nil when disabled)
	if err := container.Provide(newResponseCache); err != nil {
		log.Fatalf("Failed to provide response cache: %v", err)
	}

	// Chat providers
	for _, constructor := range []any{
		newOpenAIProvider,
		newOpenAISDKProvider,
		newAnthropicProvider,
		newEchoProvider,
	} {
		if err := container.Provide(constructor); err != nil {
			log.Fatalf("Failed to provide chat provider: %v", err)
		}
	}

	// Register providers with registry (invoked for side effects)
	if err := container.Invoke(registerProviders); err != nil {
		log.Fatalf("Failed to register providers: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(reg domain.ProviderRegistry, ai *config.AIConfig) *domain.GatewayService {
		return domain.NewGatewayService(reg, ai.Streaming)
	}); err != nil {
		log.Fatalf("Failed to provide gateway service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// errProviderNotConfigured marks an optional provider that was skipped.
var errProviderNotConfigured = errors.New("provider not configured")
