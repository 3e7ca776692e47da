package generator

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiLLM implements LLMClient with Google's GenAI SDK.
type GeminiLLM struct {
	Model  string
	client *genai.Client
}

func NewGeminiLLMFromConfig(ctx context.Context, cfg *LLMSettings) (*GeminiLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing; provide llm.api_key")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.HTTPClient != nil {
		cc.HTTPClient = cfg.HTTPClient
	}
	if cfg.BaseURL != "" || cfg.Timeout > 0 {
		opts := genai.HTTPOptions{BaseURL: cfg.BaseURL}
		if cfg.Timeout > 0 {
			timeout := cfg.Timeout
			opts.Timeout = &timeout
		}
		cc.HTTPOptions = opts
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiLLM{Model: model, client: client}, nil
}

func (g *GeminiLLM) Generate(ctx context.Context, req Request, structured bool) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
	}
	if structured {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = geminiSchema(req.Schema)
	}

	contents := []*genai.Content{genai.NewContentFromText(req.User, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}

// geminiSchema converts the flat object schema of a Request into genai's typed schema.
// Only string properties are emitted; that is all a strategy needs.
func geminiSchema(schema map[string]any) *genai.Schema {
	out := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
	props, _ := schema["properties"].(map[string]any)
	for name := range props {
		out.Properties[name] = &genai.Schema{Type: genai.TypeString}
	}
	if req, ok := schema["required"].([]string); ok {
		out.Required = append(out.Required, req...)
		out.PropertyOrdering = append(out.PropertyOrdering, req...)
	}
	return out
}
