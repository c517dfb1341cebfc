package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"github.com/Claisenn/codemind/internal/cache/redis"
	"github.com/Claisenn/codemind/internal/config"
	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
	"github.com/Claisenn/codemind/internal/provider/anthropic"
	"github.com/Claisenn/codemind/internal/provider/echo"
	"github.com/Claisenn/codemind/internal/provider/openai"
	"github.com/Claisenn/codemind/internal/provider/openaisdk"
	"github.com/Claisenn/codemind/internal/provider/transport"
)

const cachePingTimeout = 2 * time.Second

// chatProvider is a client together with the id it is registered under.
type chatProvider struct {
	ID     string
	Model  string
	Client domain.ChatClient
}

// providerOut puts zero or one provider into the "providers" group.
type providerOut struct {
	dig.Out
	Providers []chatProvider `group:"providers,flatten"`
}

type registrationIn struct {
	dig.In
	Registry  domain.ProviderRegistry
	Cache     domain.ResponseCache
	CacheCfg  *config.CacheConfig
	Providers []chatProvider `group:"providers"`
}

func single(id, model string, client domain.ChatClient) providerOut {
	return providerOut{Providers: []chatProvider{{ID: id, Model: model, Client: client}}}
}

func skipped(id string) providerOut {
	observability.FromContext(context.Background()).Info("chat provider skipped",
		observability.String("provider", id),
		observability.Error(errProviderNotConfigured))
	return providerOut{}
}

func newOpenAIProvider(ai *config.AIConfig, cfg *openai.Config) (providerOut, error) {
	if cfg.APIKey == "" {
		return skipped(openai.ProviderName), nil
	}

	providerConfig := ai.ProviderConfig(openai.ProviderName, cfg.APIKey, cfg.BaseURL)
	client := transport.NewClient(time.Duration(cfg.Timeout) * time.Second)

	provider, err := openai.NewProvider(providerConfig, client)
	if err != nil {
		return providerOut{}, fmt.Errorf("failed to create OpenAI provider: %w", err)
	}

	return single(openai.ProviderName, providerConfig.EffectiveModel(), provider), nil
}

func newOpenAISDKProvider(ai *config.AIConfig, cfg *openai.Config) (providerOut, error) {
	if cfg.APIKey == "" {
		return skipped(openaisdk.ProviderName), nil
	}

	providerConfig := ai.ProviderConfig(openaisdk.ProviderName, cfg.APIKey, cfg.BaseURL)

	provider, err := openaisdk.NewProvider(providerConfig, openaisdk.Options{
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return providerOut{}, fmt.Errorf("failed to create OpenAI SDK provider: %w", err)
	}

	return single(openaisdk.ProviderName, providerConfig.EffectiveModel(), provider), nil
}

func newAnthropicProvider(ai *config.AIConfig, cfg *anthropic.Config) (providerOut, error) {
	if cfg.APIKey == "" {
		return skipped(anthropic.ProviderName), nil
	}

	providerConfig := ai.ProviderConfig(anthropic.ProviderName, cfg.APIKey, cfg.BaseURL)
	providerConfig.Model = cfg.Model
	client := transport.NewClient(time.Duration(cfg.Timeout) * time.Second)

	provider, err := anthropic.NewProvider(providerConfig, client)
	if err != nil {
		return providerOut{}, fmt.Errorf("failed to create Anthropic provider: %w", err)
	}

	return single(anthropic.ProviderName, providerConfig.EffectiveModel(), provider), nil
}

func newEchoProvider() providerOut {
	return single(echo.ProviderName, "", echo.NewProvider())
}

// newResponseCache connects to Redis when caching is enabled and returns a
// nil cache otherwise.
func newResponseCache(cfg *config.CacheConfig) (domain.ResponseCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	cache, err := redis.NewResponseCache(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cachePingTimeout)
	defer cancel()

	if err := cache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	observability.FromContext(ctx).Info("response cache enabled",
		observability.String("addr", cfg.Addr),
		observability.Duration("ttl", cfg.TTLDuration()))

	return cache, nil
}

func registerProviders(in registrationIn) error {
	ctx := context.Background()
	logger := observability.FromContext(ctx)

	for _, provider := range in.Providers {
		client := provider.Client
		if in.Cache != nil {
			namespace := provider.ID + "/" + provider.Model
			client = domain.NewCachedClient(client, in.Cache, namespace, in.CacheCfg.TTLDuration())
		}

		if err := in.Registry.Register(ctx, provider.ID, client); err != nil {
			return fmt.Errorf("failed to register %s provider: %w", provider.ID, err)
		}

		logger.Info("chat provider registered",
			observability.String("provider", provider.ID),
			observability.Bool("streaming", client.SupportsStreaming()),
			observability.Bool("cached", in.Cache != nil))
	}

	return nil
}
