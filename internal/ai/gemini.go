// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com"
	geminiModel   = "gemini-1.5-flash"
)

// geminiProvider calls POST /v1beta/models/{model}:generateContent. It is
// the default provider for suggestions.
type geminiProvider struct {
	config ProviderConfig
	client *http.Client
}

func newGemini(cfg ProviderConfig) *geminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = geminiModel
	}
	return &geminiProvider{config: cfg, client: newHTTPClient()}
}

func (p *geminiProvider) Name() string { return "gemini" }

// Generate sends prompt as the only content part and returns the first
// non-empty text part of the first candidate.
func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	in := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	url := p.config.BaseURL + "/v1beta/models/" + p.config.Model + ":generateContent"
	header := http.Header{"X-Goog-Api-Key": {p.config.APIKey}}

	var out geminiResponse
	if err := postJSON(ctx, p.client, p.Name(), url, header, in, &out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 {
		return "", errors.New("gemini: no candidates returned")
	}
	for _, part := range out.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", errors.New("gemini: no text in response")
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
