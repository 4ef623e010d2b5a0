package llm

import (
	"context"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the OpenAI model used when none is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// chatClient is the part of *openai.Client used here.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIModel calls an OpenAI-compatible chat completion endpoint.
type OpenAIModel struct {
	client      chatClient
	name        string
	temperature float32
}

// NewOpenAI creates a client for apiKey. A non-empty baseURL points it at
// an OpenAI-compatible server.
func NewOpenAI(apiKey, baseURL, model string, temperature float32, httpClient *http.Client) *OpenAIModel {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return newOpenAIModel(openai.NewClientWithConfig(cfg), model, temperature)
}

func newOpenAIModel(client chatClient, model string, temperature float32) *OpenAIModel {
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIModel{
		client:      client,
		name:        model,
		temperature: temperature,
	}
}

// Name returns the model identifier.
func (m *OpenAIModel) Name() string {
	return m.name
}

// Invoke sends prompt as a single user message.
func (m *OpenAIModel) Invoke(ctx context.Context, prompt string) (Response, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.name,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: m.temperature,
		N:           1,
	})
	if err != nil {
		return Response{}, err
	}

	return fromOpenAI(resp), nil
}

func fromOpenAI(resp openai.ChatCompletionResponse) Response {
	if len(resp.Choices) == 0 {
		return Response{}
	}

	msg := resp.Choices[0].Message
	if len(msg.MultiContent) > 0 {
		segs := make([]Segment, len(msg.MultiContent))
		for i, part := range msg.MultiContent {
			segs[i] = Segment{Type: string(part.Type), Text: part.Text}
		}
		return Segments(segs...)
	}

	return Text(msg.Content)
}
