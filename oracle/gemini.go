package oracle

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const geminiModel = "models/gemini-2.0-flash"

// Gemini classifies intents through the Gemini API.
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a Gemini-backed oracle.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client}, nil
}

// Analyze asks the model for a JSON verdict on the turn.
func (g *Gemini) Analyze(ctx context.Context, req Request) (*Result, error) {
	resp, err := g.client.Models.GenerateContent(ctx, geminiModel,
		genai.Text(req.Text),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt(req)}},
			},
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0.3),
		})
	if err != nil {
		return nil, fmt.Errorf("gemini analyze failed: %w", err)
	}
	return parseResult(resp.Text())
}
