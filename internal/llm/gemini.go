package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the Gemini model used when none is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiModel calls Google's Gemini API.
type GeminiModel struct {
	models      contentGenerator
	name        string
	temperature float32
}

// NewGemini creates a Gemini client authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey, model string, temperature float32, httpClient *http.Client) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return newGeminiModel(client.Models, model, temperature), nil
}

func newGeminiModel(models contentGenerator, model string, temperature float32) *GeminiModel {
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiModel{
		models:      models,
		name:        model,
		temperature: temperature,
	}
}

// Name returns the model identifier.
func (m *GeminiModel) Name() string {
	return m.name
}

// Invoke sends prompt as a single user turn.
func (m *GeminiModel) Invoke(ctx context.Context, prompt string) (Response, error) {
	temperature := m.temperature

	resp, err := m.models.GenerateContent(ctx, m.name, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return Response{}, err
	}

	return fromGemini(resp), nil
}

func fromGemini(resp *genai.GenerateContentResponse) Response {
	if resp == nil || len(resp.Candidates) == 0 {
		return Response{}
	}

	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return Response{}
	}

	if len(content.Parts) == 1 && content.Parts[0] != nil {
		return Text(content.Parts[0].Text)
	}

	segs := make([]Segment, 0, len(content.Parts))
	for _, p := range content.Parts {
		if p == nil {
			segs = append(segs, Segment{})
			continue
		}
		typ := "text"
		if p.Text == "" {
			typ = "other"
		}
		segs = append(segs, Segment{Type: typ, Text: p.Text})
	}

	return Segments(segs...)
}
