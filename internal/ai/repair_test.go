package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{}\n```", "{}"},
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestRepairJSONTrailingCommas(t *testing.T) {
	out := repairJSON(`{"items": [1, 2,], "nested": {"n": 3,},}`)
	require.NotNil(t, out)
	assert.Equal(t, []any{float64(1), float64(2)}, out["items"])
	assert.Equal(t, float64(3), out["nested"].(map[string]any)["n"])
}

func TestRepairJSONNewlinesInStrings(t *testing.T) {
	out := repairJSON("{\"summary\": \"first line\nsecond line\"}")
	require.NotNil(t, out)
	assert.Equal(t, "first line\nsecond line", out["summary"])
}

func TestRepairJSONStructuralNewlinesUntouched(t *testing.T) {
	out := repairJSON("{\n  \"a\": 1,\n  \"b\": 2\n}")
	require.NotNil(t, out)
	assert.Equal(t, float64(1), out["a"])
	assert.Equal(t, float64(2), out["b"])
}

func TestRepairJSONEscapedQuotesSurvive(t *testing.T) {
	out := repairJSON(`{"quote": "he said \"no\nway\""}`)
	require.NotNil(t, out)
	assert.Equal(t, "he said \"no\nway\"", out["quote"])
}

func TestRepairJSONUnfixable(t *testing.T) {
	assert.Nil(t, repairJSON("{{{ definitely not json"))
	assert.Nil(t, repairJSON(""))
}
