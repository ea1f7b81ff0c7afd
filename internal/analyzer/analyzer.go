package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"policylens/apimodels"
	"policylens/internal/llm"
)

// RetryConfig bounds retries of the upstream model call.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts, first call included.
	MaxAttempts int

	// BackoffBase is the initial backoff duration.
	BackoffBase time.Duration

	// BackoffMultiplier is applied to the backoff on each retry.
	BackoffMultiplier float64

	// MaxBackoff caps the backoff duration.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns sensible retry defaults for a slow,
// rate-limited deep-research upstream.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		BackoffBase:       2 * time.Second,
		BackoffMultiplier: 2.0,
		MaxBackoff:        30 * time.Second,
	}
}

// Analyzer orchestrates one policy analysis: build prompt, call the model,
// extract and parse the payload, map it into the normalized result. It never
// touches the cache; it only produces AnalysisResult values.
type Analyzer struct {
	provider llm.Provider
	retry    RetryConfig
	now      func() time.Time
}

func New(provider llm.Provider) *Analyzer {
	return &Analyzer{
		provider: provider,
		retry:    DefaultRetryConfig(),
		now:      time.Now,
	}
}

// Analyze runs the full pipeline for one request. Either a complete
// AnalysisResult is returned or the request fails entirely; there is no
// partial-success mode.
func (a *Analyzer) Analyze(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.AnalysisResult, error) {
	if req.Product != "" {
		slog.Info("starting analysis", "company", req.Company, "product", req.Product)
	} else {
		slog.Info("starting analysis", "company", req.Company)
	}

	prompt := BuildPrompt(req)
	schema := ResponseSchema(req)

	resp, err := a.completeWithRetry(ctx, prompt, schema)
	if err != nil {
		slog.Error("model call failed", "company", req.Company, "error", err)
		return nil, err
	}

	payload, err := ExtractJSONPayload(resp.Content)
	if err != nil {
		slog.Error("no JSON payload in model output",
			"company", req.Company, "contentLength", len(resp.Content), "error", err)
		return nil, err
	}

	result, err := mapAnalysis(payload, req, a.now())
	if err != nil {
		slog.Error("failed to map model output", "company", req.Company, "error", err)
		return nil, err
	}

	slog.Info("analysis complete",
		"company", req.Company,
		"grade", result.Grade,
		"redFlags", len(result.RedFlags),
	)
	return result, nil
}

// completeWithRetry makes the upstream call with bounded exponential
// backoff. Only retriable failure classes (timeouts, rate limits, 5xx,
// transport errors) are retried.
func (a *Analyzer) completeWithRetry(ctx context.Context, prompt, schema string) (*llm.Response, error) {
	backoff := a.retry.BackoffBase
	var lastErr error

	for attempt := 1; attempt <= a.retry.MaxAttempts; attempt++ {
		resp, err := a.provider.Complete(ctx, prompt, llm.WithResponseSchema(schema))
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retriable(err) || attempt == a.retry.MaxAttempts {
			return nil, err
		}
		slog.Warn("model call failed, retrying",
			"attempt", attempt, "backoff", backoff, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * a.retry.BackoffMultiplier)
		if backoff > a.retry.MaxBackoff {
			backoff = a.retry.MaxBackoff
		}
	}
	return nil, lastErr
}

// retriable reports whether the error class is worth another attempt.
// Configuration errors and upstream validation failures are not.
func retriable(err error) bool {
	if errors.Is(err, llm.ErrNotConfigured) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Retriable()
	}
	// Plain transport failure.
	return true
}
