package llmutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type insightShape struct {
	Factor     string `json:"factor"`
	ImpactType string `json:"impactType"`
}

func TestParseJSONResponse_PlainArray(t *testing.T) {
	out, err := ParseJSONResponse[[]insightShape](`[{"factor":"Exercise","impactType":"POSITIVE"}]`)
	require.NoError(t, err)
	require.Len(t, *out, 1)
	assert.Equal(t, "Exercise", (*out)[0].Factor)
}

func TestParseJSONResponse_MarkdownFence(t *testing.T) {
	response := "```json\n{\"factor\":\"Late caffeine\",\"impactType\":\"NEGATIVE\"}\n```"
	out, err := ParseJSONResponse[insightShape](response)
	require.NoError(t, err)
	assert.Equal(t, "Late caffeine", out.Factor)
}

func TestParseJSONResponse_SurroundingProse(t *testing.T) {
	response := `Here is the analysis you asked for: [{"factor":"Work days","impactType":"NEGATIVE"}] Hope that helps!`
	out, err := ParseJSONResponse[[]insightShape](response)
	require.NoError(t, err)
	require.Len(t, *out, 1)
	assert.Equal(t, "Work days", (*out)[0].Factor)
}

func TestParseJSONResponse_Malformed(t *testing.T) {
	_, err := ParseJSONResponse[insightShape](`{"factor": "unterminated`)
	assert.Error(t, err)
}

func TestExtractJSON_NoStructure(t *testing.T) {
	assert.Equal(t, "no json here", ExtractJSON("  no json here "))
}
