package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"policylens/internal/config"
)

// ErrNotConfigured is returned when the Perplexity credential is absent.
// The key is checked per call so the server can start without it.
var ErrNotConfigured = errors.New("perplexity API key not configured")

// UpstreamError reports a non-success status from the Perplexity API.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("perplexity API error: %s (%d)", e.Message, e.StatusCode)
}

// Retriable reports whether the failure class is worth retrying: timeouts,
// rate limits and server-side errors. Validation-type 4xx are not.
func (e *UpstreamError) Retriable() bool {
	return e.StatusCode == 408 || e.StatusCode == 429 || e.StatusCode >= 500
}

// Perplexity client implementation. Perplexity speaks the OpenAI
// chat-completions wire format, so the client is the OpenAI SDK pointed at
// the Perplexity endpoint.
type Perplexity struct {
	client *openai.Client
	cfg    *config.PerplexityConfig
}

func NewPerplexity(cfg *config.PerplexityConfig) *Perplexity {
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.APIEndpoint),
		option.WithRequestTimeout(cfg.Timeout),
	)

	return &Perplexity{
		client: client,
		cfg:    cfg,
	}
}

func (p *Perplexity) Complete(ctx context.Context, prompt string, opts ...Option) (*Response, error) {
	if p.cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	options := &Options{
		Model:       p.cfg.Model,
		Temperature: p.cfg.Temperature,
		MaxTokens:   p.cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	slog.Info("sending completion request",
		"model", options.Model,
		"promptLength", len(prompt),
		"temperature", options.Temperature,
		"maxTokens", options.MaxTokens,
	)

	var reqOpts []option.RequestOption
	if options.ResponseSchema != "" {
		// Perplexity's schema hint nests the schema document one level
		// deeper than OpenAI's, so it is spliced into the request body
		// rather than built from SDK params.
		var schemaDoc any
		if err := json.Unmarshal([]byte(options.ResponseSchema), &schemaDoc); err != nil {
			return nil, fmt.Errorf("invalid response schema: %w", err)
		}
		reqOpts = append(reqOpts, option.WithJSONSet("response_format", map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"schema": schemaDoc,
			},
		}))
	}

	resp, err := p.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model: openai.F(options.Model),
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			}),
			Temperature: openai.F(options.Temperature),
			MaxTokens:   openai.F(options.MaxTokens),
		},
		reqOpts...,
	)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return nil, &UpstreamError{
				StatusCode: apierr.StatusCode,
				Message:    apierr.Message,
			}
		}
		return nil, err
	}

	response := &Response{
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		response.Content = resp.Choices[0].Message.Content
		response.FinishReason = string(resp.Choices[0].FinishReason)
	}

	slog.Info("completion response received",
		"model", options.Model,
		"finishReason", response.FinishReason,
		"promptTokens", response.Usage.PromptTokens,
		"completionTokens", response.Usage.CompletionTokens,
		"totalTokens", response.Usage.TotalTokens,
		"contentLength", len(response.Content),
	)

	return response, nil
}
