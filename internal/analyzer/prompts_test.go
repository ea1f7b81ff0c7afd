package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"policylens/apimodels"
)

func TestBuildPromptCompanyVariant(t *testing.T) {
	prompt := BuildPrompt(apimodels.AnalysisRequest{Company: "Acme", Type: "company"})

	assert.Contains(t, prompt, `Company Name: "Acme"`)
	assert.Contains(t, prompt, `"Not provided"`)
	assert.Contains(t, prompt, "company-wide")
	assert.Contains(t, prompt, "policies_found")
	assert.Contains(t, prompt, "concern_level")
	// The rubric stops at C; E is assigned locally and never requested.
	assert.Contains(t, prompt, "(S, A, B, or C)")
	assert.NotContains(t, prompt, "S_OR_A_OR_B_OR_C_OR_E")
}

func TestBuildPromptProductVariant(t *testing.T) {
	prompt := BuildPrompt(apimodels.AnalysisRequest{
		Company: "Acme", Product: "Widget", Type: "product", URL: "https://acme.example/policies",
	})

	assert.Contains(t, prompt, `Product Name: "Widget"`)
	assert.Contains(t, prompt, `Company Name: "Acme"`)
	assert.Contains(t, prompt, `"https://acme.example/policies"`)
	assert.Contains(t, prompt, "Prioritize this URL")
	assert.Contains(t, prompt, `"analyzed_for": "product"`)
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	req := apimodels.AnalysisRequest{Company: "Acme", Type: "company"}
	assert.Equal(t, BuildPrompt(req), BuildPrompt(req))
}

func TestResponseSchemaSelection(t *testing.T) {
	company := ResponseSchema(apimodels.AnalysisRequest{Company: "Acme"})
	product := ResponseSchema(apimodels.AnalysisRequest{Company: "Acme", Product: "Widget"})

	assert.True(t, strings.Contains(company, `"const": "company"`))
	assert.True(t, strings.Contains(product, `"const": "product"`))
	assert.True(t, strings.Contains(product, "company_name"))
}
