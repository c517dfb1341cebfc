package openai

// DefaultBaseURL is the OpenAI API root used when none is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// Config contains OpenAI provider configuration.
// Timeout and MaxRetries only apply to the SDK-backed variant's retries;
// the raw client uses Timeout alone.
type Config struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	BaseURL    string `env:"OPENAI_BASE_URL"    envDefault:"https://api.openai.com/v1"`
	Timeout    int    `env:"OPENAI_TIMEOUT"     envDefault:"60"`
	MaxRetries int    `env:"OPENAI_MAX_RETRIES" envDefault:"2"`
}
