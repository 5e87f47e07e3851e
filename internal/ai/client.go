// Package ai requests generated narratives from an OpenAI-compatible chat completion provider.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/podium/internal/errors"
	"github.com/myrjola/podium/internal/narrative"
	"github.com/sashabaranov/go-openai"
)

// requestError is a sentinel that also carries the message shown to the player.
type requestError struct {
	msg    string
	player string
}

func (e requestError) Error() string {
	return e.msg
}

func (e requestError) PlayerMessage() string {
	return e.player
}

var (
	ErrMissingCredential error = requestError{
		msg:    "provider credential missing",
		player: "Groq API Key not found. Please add GROQ_API_KEY to your .env file.",
	}
	ErrProviderFailure error = requestError{
		msg:    "provider failure",
		player: "Failed to generate narrative",
	}
)

// Config configures the provider connection. It is populated with envstruct.
type Config struct {
	APIKey         string        `env:"GROQ_API_KEY" envDefault:""`
	BaseURL        string        `env:"PODIUM_PROVIDER_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	Model          string        `env:"PODIUM_MODEL" envDefault:"llama-3.3-70b-versatile"`
	Temperature    float64       `env:"PODIUM_TEMPERATURE" envDefault:"0.7"`
	MaxTokens      int           `env:"PODIUM_MAX_TOKENS" envDefault:"3000"`
	RequestTimeout time.Duration `env:"PODIUM_REQUEST_TIMEOUT" envDefault:"60s"`
}

type Client struct {
	client *openai.Client
	cfg    Config
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout} //nolint:exhaustruct // defaults are fine
	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: logger,
	}
}

// Request makes exactly one chat completion call and returns the generated text verbatim.
//
// Invalid modes and a missing credential are reported before any network activity.
func (c *Client) Request(ctx context.Context, mode narrative.Mode) (string, error) {
	if !mode.Valid() {
		return "", errors.Wrap(narrative.ErrInvalidMode, "request narrative", slog.String("mode", string(mode)))
	}
	if c.cfg.APIKey == "" {
		return "", errors.Wrap(ErrMissingCredential, "request narrative")
	}

	start := time.Now()
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:       c.cfg.Model,
			Messages:    Messages(mode),
			Temperature: float32(c.cfg.Temperature),
			MaxTokens:   c.cfg.MaxTokens,
		},
	)
	if err != nil {
		return "", errors.Wrap(fmt.Errorf("%w: %w", ErrProviderFailure, err), "create chat completion",
			slog.String("model", c.cfg.Model), slog.String("mode", string(mode)))
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "chat completion done",
		slog.String("model", c.cfg.Model),
		slog.String("mode", string(mode)),
		slog.Int("completion_tokens", completion.Usage.CompletionTokens),
		slog.Duration("duration", time.Since(start)),
	)

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}
