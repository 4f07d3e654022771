// Package oracle defines the optional intent-classification advisor the
// dialogue engine may consult for free-form input, plus two hosted-model
// backends. Every implementation is best-effort: callers bound each call
// with a context deadline and must treat errors and low confidence as
// "no advice".
package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Request carries one user turn plus the conversation context.
type Request struct {
	Text    string            `json:"text"`
	StateID string            `json:"currentStateId"`
	Slots   map[string]string `json:"knownSlots,omitempty"`
}

// Result is the advisor's reading of the turn. Slots holds only the values
// the model explicitly extracted; SuggestedState and Response are optional.
type Result struct {
	Confidence     float64           `json:"confidence"`
	Slots          map[string]string `json:"slots,omitempty"`
	SuggestedState string            `json:"suggestedStateId,omitempty"`
	Response       string            `json:"cannedResponse,omitempty"`
}

// Oracle analyzes a single turn. Implementations must respect the context
// deadline and may fail freely; the engine degrades to rule-based logic.
type Oracle interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// systemPrompt builds the instruction shared by both backends.
func systemPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are an intent classifier for a restaurant booking assistant.\n")
	fmt.Fprintf(&b, "Current conversation state: %s\n", req.StateID)
	if len(req.Slots) == 0 {
		b.WriteString("No details collected yet.\n")
	} else {
		b.WriteString("Details collected so far:\n")
		for key, value := range req.Slots {
			fmt.Fprintf(&b, "- %s: %s\n", key, value)
		}
	}
	b.WriteString(`
Analyze the user's message and respond with a single JSON object:
{
  "confidence": 0.0-1.0,
  "slots": {"location": ..., "name": ..., "phoneNumber": ..., "dateTime": ..., "paxSize": ...},
  "suggestedStateId": optional state id to jump to,
  "cannedResponse": optional natural-language reply
}
Include only slots the message actually mentions. Focus on booking requests,
menu questions and location questions.`)
	return b.String()
}

// parseResult decodes a model reply. Confidence is clamped to [0, 1] so a
// misbehaving model can never look over-confident.
func parseResult(raw string) (*Result, error) {
	raw = strings.TrimSpace(raw)
	// Some models wrap JSON in a fenced block despite instructions.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var res Result
	if err := sonic.UnmarshalString(raw, &res); err != nil {
		return nil, fmt.Errorf("malformed oracle response: %w", err)
	}
	if res.Confidence < 0 {
		res.Confidence = 0
	}
	if res.Confidence > 1 {
		res.Confidence = 1
	}
	return &res, nil
}
