package apimodels

import "time"

// Severity buckets a red flag by how bad it is for the user. It is derived
// from the model's integer concern level, never supplied directly.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Grade is the consumer-friendliness score for the combined policies.
// E is reserved for "not found or unusable" and is assigned locally,
// never requested from the model.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeE Grade = "E"
)

// AnalysisRequest is the inbound request body for the analyze endpoint.
type AnalysisRequest struct {
	// Company is the company name to analyze. Always required.
	Company string `json:"company"`

	// Product is the product name. Required when Type is "product".
	Product string `json:"product,omitempty"`

	// Type selects a company-wide or product-specific analysis.
	Type string `json:"type"`

	// URL optionally points at the entity's policy or main page. When
	// present it takes priority over open web search.
	URL string `json:"url,omitempty"`
}

// RedFlag is a single concerning clause, explained in plain language.
type RedFlag struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// AnalysisResult is the normalized outcome of one policy analysis.
type AnalysisResult struct {
	Company string `json:"company"`
	Product string `json:"product,omitempty"`

	// URL is the seed URL the caller provided, if any.
	URL string `json:"url,omitempty"`

	// TosURL and PrivacyPolicyURL are the located documents; nil when the
	// documents could not be found.
	TosURL           *string `json:"tosUrl"`
	PrivacyPolicyURL *string `json:"privacyPolicyUrl"`

	// IconURL is a logo/icon for the entity, when the model found one.
	IconURL *string `json:"iconUrl"`

	// RedFlags is ordered most concerning first.
	RedFlags []RedFlag `json:"redFlags"`

	Grade             Grade     `json:"grade"`
	IsProductSpecific bool      `json:"isProductSpecific"`
	AnalyzedAt        time.Time `json:"analyzedAt"`
}

// CachedAnalysis is an AnalysisResult as stored in (and served from) the
// cache. Records are replaced wholesale on rewrite; CreatedAt restarts the
// freshness window on every write.
type CachedAnalysis struct {
	AnalysisResult

	CacheKey  string    `json:"cacheKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
