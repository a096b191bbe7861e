package ai

import (
	"context"
	"fmt"
	"net/http"
)

// openAIProvider speaks the chat completions format (POST {base}/chat/completions).
// Mistral uses the same wire format, so one type serves both under
// different names.
type openAIProvider struct {
	name   string
	config ProviderConfig
	client *http.Client
}

func newOpenAI(cfg ProviderConfig) *openAIProvider {
	return newChatProvider("openai", cfg, "https://api.openai.com/v1", "gpt-4o-mini")
}

func newChatProvider(name string, cfg ProviderConfig, baseURL, model string) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}
	if cfg.Model == "" {
		cfg.Model = model
	}
	return &openAIProvider{name: name, config: cfg, client: newHTTPClient()}
}

func (p *openAIProvider) Name() string { return p.name }

// Generate sends the prompt as a single user message.
func (p *openAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	in := openAIRequest{
		Model:    p.config.Model,
		Messages: []openAIMessage{{Role: "user", Content: prompt}},
	}
	header := http.Header{"Authorization": {"Bearer " + p.config.APIKey}}

	var out openAIResponse
	if err := postJSON(ctx, p.client, p.name, p.config.BaseURL+"/chat/completions", header, in, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", p.name)
	}
	return out.Choices[0].Message.Content, nil
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
}
