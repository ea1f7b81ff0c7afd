package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONPayloadCleanInput(t *testing.T) {
	out, err := ExtractJSONPayload(`  {"a":1}  `)
	assert.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
}

func TestExtractJSONPayloadStripsWrapperNoise(t *testing.T) {
	raw := "blah blah </think> ```json\n{\"a\":1}\n```"
	out, err := ExtractJSONPayload(raw)
	assert.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
}

func TestExtractJSONPayloadFenceWithoutLanguageTag(t *testing.T) {
	out, err := ExtractJSONPayload("```\n{\"b\":2}\n```")
	assert.NoError(t, err)
	assert.Equal(t, `{"b":2}`, out)
}

func TestExtractJSONPayloadUsesLastMarker(t *testing.T) {
	raw := "</think> not this </think> {\"c\":3}"
	out, err := ExtractJSONPayload(raw)
	assert.NoError(t, err)
	assert.Equal(t, `{"c":3}`, out)
}

func TestExtractJSONPayloadEmptyWithoutMarker(t *testing.T) {
	_, err := ExtractJSONPayload("   ")
	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
	assert.False(t, extractErr.MarkerFound)
}

func TestExtractJSONPayloadEmptyAfterMarker(t *testing.T) {
	_, err := ExtractJSONPayload("some reasoning </think> ``` ```")
	var extractErr *ExtractionError
	assert.ErrorAs(t, err, &extractErr)
	assert.True(t, extractErr.MarkerFound)
}
