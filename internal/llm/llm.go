package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Providers understood by New.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// DefaultTemperature biases the model toward varied output.
const DefaultTemperature = 0.9

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("unknown llm provider")

// Config selects and configures a Model.
type Config struct {
	Provider    string
	Model       string
	Temperature float32
	APIKey      string
	// BaseURL is only used by the OpenAI provider.
	BaseURL    string
	HTTPClient *http.Client
}

// New builds the Model described by cfg. It is called once at startup and
// the result is shared by all requests.
func New(ctx context.Context, cfg Config) (Model, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.Temperature, cfg.HTTPClient)
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.HTTPClient), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
