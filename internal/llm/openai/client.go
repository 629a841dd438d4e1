// Package openai implements the Generator contract for OpenAI-compatible
// chat/completions endpoints.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/joseph-ayodele/document-agent/internal/llm"
)

const defaultModel = "gpt-4o-mini"

// Config for the OpenAI client.
type Config struct {
	APIKey  string // required
	Model   string // default "gpt-4o-mini"
	BaseURL string // optional override (Azure, local gateways)
}

type Client struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai: API key is required (set OPENAI_API_KEY)")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		logger: logger,
	}, nil
}

// Generate runs one chat completion. Provider errors carrying an HTTP status
// are mapped into classified *llm.APIError values.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Temperature: openai.Float(float64(temperature)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			c.logger.Error("llm.openai.api_error",
				"status", apiErr.StatusCode,
				"model", c.model,
			)
			return "", llm.ClassifyStatus(apiErr.StatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}
	return resp.Choices[0].Message.Content, nil
}
