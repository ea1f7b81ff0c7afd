package analyzer

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"policylens/apimodels"
)

// notFoundFlagText is the synthesized red flag used when no policy
// documents could be located.
const notFoundFlagText = "Terms of Service and Privacy Policy documents could not be found for this service."

// citationPattern matches bracketed citation markers like [3] that the
// model interleaves inside text fields, breaking strict JSON parsing.
// Requires at least one digit so an empty red_flags array survives.
var citationPattern = regexp.MustCompile(`\[\d+\]`)

// rawRedFlag is one red flag as reported by the model, ranked by an
// integer concern level where 1 is most severe.
type rawRedFlag struct {
	ConcernLevel int    `json:"concern_level"`
	Description  string `json:"description"`
}

// rawAnalysis is the model's payload before normalization. Every field is
// untrusted.
type rawAnalysis struct {
	IconURL          *string      `json:"icon_url"`
	TosURL           *string      `json:"tos_url"`
	PrivacyPolicyURL *string      `json:"privacy_policy_url"`
	PoliciesFound    bool         `json:"policies_found"`
	RedFlags         []rawRedFlag `json:"red_flags"`
	Grade            *string      `json:"consumer_friendliness_grade"`
}

// severityForLevel buckets a concern level into a severity. Fixed mapping,
// the single source of truth: 1 is high, 2-3 medium, 4 and up low. Levels
// below 1 fall into the medium bucket.
func severityForLevel(level int) apimodels.Severity {
	switch {
	case level == 1:
		return apimodels.SeverityHigh
	case level <= 3:
		return apimodels.SeverityMedium
	default:
		return apimodels.SeverityLow
	}
}

// coerceGrade restricts the model-supplied grade to the closed set. Anything
// outside S/A/B/C, including empty or absent, collapses to E.
func coerceGrade(grade *string) apimodels.Grade {
	if grade == nil {
		return apimodels.GradeE
	}
	switch apimodels.Grade(*grade) {
	case apimodels.GradeS, apimodels.GradeA, apimodels.GradeB, apimodels.GradeC:
		return apimodels.Grade(*grade)
	default:
		return apimodels.GradeE
	}
}

// mapAnalysis normalizes an extracted JSON payload into an AnalysisResult.
// Citation markers are stripped from the raw string before parsing.
func mapAnalysis(payload string, req apimodels.AnalysisRequest, now time.Time) (*apimodels.AnalysisResult, error) {
	cleaned := citationPattern.ReplaceAllString(payload, "")

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	result := &apimodels.AnalysisResult{
		Company:           req.Company,
		Product:           req.Product,
		URL:               req.URL,
		IconURL:           raw.IconURL,
		IsProductSpecific: req.Product != "",
		AnalyzedAt:        now,
	}

	if !raw.PoliciesFound {
		result.RedFlags = []apimodels.RedFlag{{
			Text:     notFoundFlagText,
			Severity: apimodels.SeverityMedium,
		}}
		result.Grade = apimodels.GradeE
		return result, nil
	}

	flags := make([]rawRedFlag, len(raw.RedFlags))
	copy(flags, raw.RedFlags)
	sort.SliceStable(flags, func(i, j int) bool {
		return flags[i].ConcernLevel < flags[j].ConcernLevel
	})

	result.RedFlags = make([]apimodels.RedFlag, 0, len(flags))
	for _, f := range flags {
		result.RedFlags = append(result.RedFlags, apimodels.RedFlag{
			Text:     f.Description,
			Severity: severityForLevel(f.ConcernLevel),
		})
	}

	result.TosURL = raw.TosURL
	result.PrivacyPolicyURL = raw.PrivacyPolicyURL
	result.Grade = coerceGrade(raw.Grade)
	if result.Grade == apimodels.GradeE {
		// Policies were found but the grade is unusable. The terminal grade
		// is the same E as the not-found case, so leave a trace.
		reported := ""
		if raw.Grade != nil {
			reported = *raw.Grade
		}
		slog.Debug("policies found but grade was malformed",
			"company", req.Company, "grade", reported)
	}

	return result, nil
}
