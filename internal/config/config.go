package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/Claisenn/codemind/internal/domain"
	"github.com/Claisenn/codemind/internal/observability"
	"github.com/Claisenn/codemind/internal/provider/anthropic"
	"github.com/Claisenn/codemind/internal/provider/openai"
)

// Config represents the gateway configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Logger    observability.LoggerConfig
	AI        AIConfig
	OpenAI    openai.Config
	Anthropic anthropic.Config
	Cache     CacheConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"120"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization,X-Provider"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// AIConfig holds the settings shared by every chat provider.
type AIConfig struct {
	Provider    string  `env:"AI_PROVIDER"    envDefault:"openai"`
	Streaming   bool    `env:"AI_STREAMING"   envDefault:"true"`
	Model       string  `env:"AI_MODEL"       envDefault:"gpt-4"`
	Temperature float64 `env:"AI_TEMPERATURE" envDefault:"0.2"`
	MaxTokens   int     `env:"AI_MAX_TOKENS"  envDefault:"4000"`
}

// ProviderConfig builds the domain settings for one provider.
func (c AIConfig) ProviderConfig(id, apiKey, baseURL string) domain.ProviderConfig {
	temperature := c.Temperature
	streaming := c.Streaming

	return domain.ProviderConfig{
		ProviderID:       id,
		APIKey:           apiKey,
		BaseURL:          baseURL,
		Model:            c.Model,
		Temperature:      &temperature,
		MaxTokens:        c.MaxTokens,
		StreamingEnabled: &streaming,
	}
}

// CacheConfig contains the Redis response cache settings.
type CacheConfig struct {
	Enabled  bool   `env:"CACHE_ENABLED"  envDefault:"false"`
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
	TTL      int    `env:"CACHE_TTL"      envDefault:"3600"`
}

// TTLDuration returns TTL in seconds as a time.Duration.
func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*observability.LoggerConfig
	*AIConfig
	*CacheConfig
	OpenAI    *openai.Config
	Anthropic *anthropic.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Logger,
		&cfg.AI,
		&cfg.Cache,
		&cfg.OpenAI,
		&cfg.Anthropic,
	}
}
