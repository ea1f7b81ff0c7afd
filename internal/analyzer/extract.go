package analyzer

import (
	"fmt"
	"strings"
)

// thinkMarker delimits the model's reasoning trace. Only content after the
// last occurrence is candidate output.
const thinkMarker = "</think>"

// ExtractionError means no plausible JSON payload could be isolated from
// the model output. MarkerFound distinguishes, for diagnostics, whether a
// reasoning marker was present in the raw text.
type ExtractionError struct {
	MarkerFound bool
}

func (e *ExtractionError) Error() string {
	if e.MarkerFound {
		return "content after " + thinkMarker + " marker is empty after stripping fences"
	}
	return "no " + thinkMarker + " marker found and content is empty after stripping fences"
}

// ParseError means a payload was isolated but is not valid JSON after
// citation-marker stripping.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse analysis response JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractJSONPayload isolates the JSON payload from raw model output.
// Generative APIs are not guaranteed to honor "output only JSON"
// instructions, so this is best-effort isolation: reasoning preambles and
// markdown code fences are stripped, and the result is handed back for the
// caller to parse. Hard failure only when nothing plausible remains.
func ExtractJSONPayload(raw string) (string, error) {
	idx := strings.LastIndex(raw, thinkMarker)
	markerFound := idx >= 0

	candidate := raw
	if markerFound {
		candidate = raw[idx+len(thinkMarker):]
	}
	candidate = strings.TrimSpace(candidate)

	if strings.HasPrefix(candidate, "```json") {
		candidate = strings.TrimSpace(candidate[len("```json"):])
	} else if strings.HasPrefix(candidate, "```") {
		candidate = strings.TrimSpace(candidate[3:])
	}
	if strings.HasSuffix(candidate, "```") {
		candidate = strings.TrimSpace(candidate[:len(candidate)-3])
	}

	if candidate == "" {
		return "", &ExtractionError{MarkerFound: markerFound}
	}
	return candidate, nil
}
