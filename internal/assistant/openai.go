package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator calls an OpenAI-compatible chat-completions API. Both
// remote providers use this type; they differ only in base URL, model and
// key, which is pure configuration.
type OpenAIGenerator struct {
	name   string
	client *openai.Client
	model  string
}

// NewOpenAI builds a generator against api.openai.com or, when baseURL is
// set, any compatible provider.
func NewOpenAI(name, apiKey, baseURL, model string) *OpenAIGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIGenerator{
		name:   name,
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *OpenAIGenerator) Name() string { return g.name }

// Reply sends the prompt with a system context carrying the selected machine
// and the latest endpoint snapshot.
func (g *OpenAIGenerator) Reply(ctx context.Context, req Request) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemContext(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   200,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: %s completion failed: %w", g.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("assistant: %s returned no choices", g.name)
	}
	return resp.Choices[0].Message.Content, nil
}

func systemContext(req Request) string {
	data := "No hay datos disponibles del endpoint"
	if req.Data != nil {
		if b, err := json.MarshalIndent(req.Data, "", "  "); err == nil {
			data = string(b)
		}
	}
	return fmt.Sprintf(`Eres S.O.S EnergIA, un asistente especializado en análisis energético de ESTRA.

Máquina actual: %s

Datos del sistema de energía:
%s

Responde de manera técnica pero amigable, usando los datos proporcionados cuando sea relevante.
Mantén las respuestas concisas (máximo 3-4 líneas).`, req.Machine, data)
}
