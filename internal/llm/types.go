package llm

import "context"

// Provider abstracts the external analysis model.
type Provider interface {
	// Complete sends a single-shot prompt and returns the raw completion.
	Complete(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64

	// ResponseSchema is a JSON Schema document hinting the expected output
	// shape. Empty disables the hint.
	ResponseSchema string
}

// WithResponseSchema sets the expected-output JSON schema for the request.
func WithResponseSchema(schema string) Option {
	return func(o *Options) { o.ResponseSchema = schema }
}

// Response is the raw completion plus observability detail.
type Response struct {
	Content      string
	FinishReason string
	Usage        Usage
}
