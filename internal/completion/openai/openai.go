// Package openai implements the Completer interface using the Chat
// Completions API of any OpenAI-compatible endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/nadzzz/coachd/internal/completion"
	"github.com/nadzzz/coachd/internal/config"
)

// Client uses the OpenAI Chat Completions API.
type Client struct {
	client    oai.Client
	model     string
	maxTokens int
}

// New creates a new OpenAI client from config. Requests are bounded by
// cfg.Timeout and are never retried.
func New(cfg config.CompletionConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		client:    oai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Name returns the backend identifier.
func (c *Client) Name() string { return "openai" }

// Complete sends the request to the Chat Completions API and returns the
// trimmed content of the first choice.
func (c *Client) Complete(ctx context.Context, req completion.Request) (string, error) {
	params := c.buildParams(req)

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *oai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: chat completion: status %d: %v", completion.ErrUnreachable, apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("%w: chat completion: %v", completion.ErrUnreachable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", completion.ErrMalformed)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion", completion.ErrMalformed)
	}

	slog.Debug("completion finished", "model", params.Model, "length", len(content))
	return content, nil
}

// Close is a no-op for the OpenAI client.
func (c *Client) Close() error { return nil }

func (c *Client) buildParams(req completion.Request) oai.ChatCompletionNewParams {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	var messages []oai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, oai.SystemMessage(req.System))
	}
	messages = append(messages, oai.UserMessage(req.Prompt))

	params := oai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    messages,
		Temperature: param.NewOpt(req.Temperature),
	}

	maxTokens := c.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}
	if maxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(maxTokens))
	}
	return params
}
