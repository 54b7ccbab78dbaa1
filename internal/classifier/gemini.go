package classifier

import (
	"colorseason/internal/config"
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

type geminiModel struct {
	client *genai.Client
	model  string
	schema map[string]any
}

func newGemini(ctx context.Context, cfg config.AIConfig) (*geminiModel, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &geminiModel{client: client, model: model, schema: resultSchema()}, nil
}

func (m *geminiModel) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction:  genai.NewContentFromText(system, genai.RoleUser),
		Temperature:        genai.Ptr[float32](temperature),
		MaxOutputTokens:    maxTokens,
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: m.schema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return resp.Text(), nil
}
