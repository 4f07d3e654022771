package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Result
	}{
		{
			name: "full result",
			raw:  `{"confidence":0.92,"slots":{"location":"Delhi","paxSize":"4"},"suggestedStateId":"COLLECT_PAX_SIZE","cannedResponse":"Sure!"}`,
			want: Result{
				Confidence:     0.92,
				Slots:          map[string]string{"location": "Delhi", "paxSize": "4"},
				SuggestedState: "COLLECT_PAX_SIZE",
				Response:       "Sure!",
			},
		},
		{
			name: "fenced block",
			raw:  "```json\n{\"confidence\":0.5}\n```",
			want: Result{Confidence: 0.5},
		},
		{
			name: "confidence clamped high",
			raw:  `{"confidence":3.7}`,
			want: Result{Confidence: 1},
		},
		{
			name: "confidence clamped low",
			raw:  `{"confidence":-0.2}`,
			want: Result{Confidence: 0},
		},
		{
			name: "minimal",
			raw:  `{}`,
			want: Result{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResult(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseResultRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not json", "<html>"} {
		_, err := parseResult(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestSystemPromptIncludesContext(t *testing.T) {
	prompt := systemPrompt(Request{
		Text:    "table for four",
		StateID: "DISCOVER",
		Slots:   map[string]string{"location": "Delhi"},
	})

	assert.Contains(t, prompt, "DISCOVER")
	assert.Contains(t, prompt, "location: Delhi")
	assert.Contains(t, prompt, "confidence")
}

func TestSystemPromptWithoutSlots(t *testing.T) {
	prompt := systemPrompt(Request{Text: "hi", StateID: "START"})
	assert.Contains(t, prompt, "No details collected yet")
}
