package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policylens/apimodels"
	"policylens/internal/llm"
)

// fakeProvider returns canned responses, recording call counts.
type fakeProvider struct {
	calls     int
	responses []fakeCompletion
}

type fakeCompletion struct {
	content string
	err     error
}

func (f *fakeProvider) Complete(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Response, error) {
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	r := f.responses[i]
	if r.err != nil {
		return nil, r.err
	}
	return &llm.Response{Content: r.content, FinishReason: "stop"}, nil
}

func newTestAnalyzer(p llm.Provider) *Analyzer {
	a := New(p)
	a.retry = RetryConfig{MaxAttempts: 3, BackoffBase: time.Millisecond, BackoffMultiplier: 1, MaxBackoff: time.Millisecond}
	return a
}

func TestAnalyzeNotFoundScenario(t *testing.T) {
	provider := &fakeProvider{responses: []fakeCompletion{{
		content: "thinking about it </think>\n```json\n{\"policies_found\": false, \"suggestions_if_not_found\": [\"Try the parent company\"]}\n```",
	}}}
	a := newTestAnalyzer(provider)

	result, err := a.Analyze(context.Background(), apimodels.AnalysisRequest{Company: "Acme", Type: "company"})
	require.NoError(t, err)

	assert.Equal(t, apimodels.GradeE, result.Grade)
	require.Len(t, result.RedFlags, 1)
	assert.Contains(t, result.RedFlags[0].Text, "could not be found")
	assert.Equal(t, apimodels.SeverityMedium, result.RedFlags[0].Severity)
	assert.Nil(t, result.TosURL)
	assert.Nil(t, result.PrivacyPolicyURL)
	assert.False(t, result.IsProductSpecific)
}

func TestAnalyzeProductScenario(t *testing.T) {
	provider := &fakeProvider{responses: []fakeCompletion{{
		content: `{
			"policies_found": true,
			"tos_url": "https://acme.example/widget/tos",
			"privacy_policy_url": "https://acme.example/widget/privacy",
			"red_flags": [
				{"concern_level": 2, "description": "can change terms anytime"},
				{"concern_level": 1, "description": "sells your data"}
			],
			"consumer_friendliness_grade": "B"
		}`,
	}}}
	a := newTestAnalyzer(provider)

	result, err := a.Analyze(context.Background(), apimodels.AnalysisRequest{
		Company: "Acme", Product: "Widget", Type: "product",
	})
	require.NoError(t, err)

	assert.Equal(t, apimodels.GradeB, result.Grade)
	require.Len(t, result.RedFlags, 2)
	assert.Equal(t, "sells your data", result.RedFlags[0].Text)
	assert.Equal(t, apimodels.SeverityHigh, result.RedFlags[0].Severity)
	assert.Equal(t, "can change terms anytime", result.RedFlags[1].Text)
	assert.Equal(t, apimodels.SeverityMedium, result.RedFlags[1].Severity)
	assert.True(t, result.IsProductSpecific)
	assert.False(t, result.AnalyzedAt.IsZero())
}

func TestAnalyzeRetriesRetriableUpstreamErrors(t *testing.T) {
	provider := &fakeProvider{responses: []fakeCompletion{
		{err: &llm.UpstreamError{StatusCode: 503, Message: "overloaded"}},
		{err: &llm.UpstreamError{StatusCode: 503, Message: "overloaded"}},
		{content: `{"policies_found": false}`},
	}}
	a := newTestAnalyzer(provider)

	result, err := a.Analyze(context.Background(), apimodels.AnalysisRequest{Company: "Acme", Type: "company"})
	require.NoError(t, err)
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, apimodels.GradeE, result.Grade)
}

func TestAnalyzeDoesNotRetryClientErrors(t *testing.T) {
	provider := &fakeProvider{responses: []fakeCompletion{
		{err: &llm.UpstreamError{StatusCode: 400, Message: "bad request"}},
	}}
	a := newTestAnalyzer(provider)

	_, err := a.Analyze(context.Background(), apimodels.AnalysisRequest{Company: "Acme", Type: "company"})
	var upstream *llm.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 400, upstream.StatusCode)
	assert.Equal(t, 1, provider.calls)
}

func TestAnalyzeDoesNotRetryMissingCredential(t *testing.T) {
	provider := &fakeProvider{responses: []fakeCompletion{{err: llm.ErrNotConfigured}}}
	a := newTestAnalyzer(provider)

	_, err := a.Analyze(context.Background(), apimodels.AnalysisRequest{Company: "Acme", Type: "company"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	assert.Equal(t, 1, provider.calls)
}

func TestAnalyzePropagatesExtractionError(t *testing.T) {
	provider := &fakeProvider{responses: []fakeCompletion{{content: "reasoning only </think>   "}}}
	a := newTestAnalyzer(provider)

	_, err := a.Analyze(context.Background(), apimodels.AnalysisRequest{Company: "Acme", Type: "company"})
	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestAnalyzePropagatesParseError(t *testing.T) {
	provider := &fakeProvider{responses: []fakeCompletion{{content: "{not json at all"}}}
	a := newTestAnalyzer(provider)

	_, err := a.Analyze(context.Background(), apimodels.AnalysisRequest{Company: "Acme", Type: "company"})
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}
