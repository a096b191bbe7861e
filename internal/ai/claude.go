// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
)

// claudeMaxTokens caps the length of a suggestion.
const claudeMaxTokens = 1024

const anthropicVersion = "2023-06-01"

// claudeProvider calls the Anthropic Messages API (POST /v1/messages).
type claudeProvider struct {
	config ProviderConfig
	client *http.Client
}

func newClaude(cfg ProviderConfig) *claudeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-5"
	}
	return &claudeProvider{config: cfg, client: newHTTPClient()}
}

func (p *claudeProvider) Name() string { return "claude" }

// Generate returns the first text block of the reply.
func (p *claudeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	in := claudeRequest{
		Model:     p.config.Model,
		MaxTokens: claudeMaxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	}
	header := http.Header{
		"X-Api-Key":         {p.config.APIKey},
		"Anthropic-Version": {anthropicVersion},
	}

	var out claudeResponse
	if err := postJSON(ctx, p.client, p.Name(), p.config.BaseURL+"/v1/messages", header, in, &out); err != nil {
		return "", err
	}
	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", errors.New("claude: no text content in response")
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
}
