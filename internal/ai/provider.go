// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai relays prompts to hosted LLM providers (Gemini, OpenAI,
// Claude, Mistral). Prompts are sent as-is with no system instruction and
// the raw completion text is returned unparsed.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// requestTimeout bounds a single upstream call.
const requestTimeout = 60 * time.Second

// ErrNoProvider is returned when the active provider has no API key configured.
var ErrNoProvider = errors.New("ai: no provider configured")

// Provider is a text-generation backend.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
// Empty Model and BaseURL fall back to the provider's defaults.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// constructors maps configuration names to provider factories.
var constructors = map[string]func(ProviderConfig) Provider{
	"gemini":  func(c ProviderConfig) Provider { return newGemini(c) },
	"openai":  func(c ProviderConfig) Provider { return newOpenAI(c) },
	"claude":  func(c ProviderConfig) Provider { return newClaude(c) },
	"mistral": func(c ProviderConfig) Provider { return newMistral(c) },
}

// Registry holds the configured providers and the name of the one that
// answers suggestions. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry builds a provider for every known name whose config carries
// an API key. Unknown names and keyless configs are skipped.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}
	for name, cfg := range configs {
		build, ok := constructors[name]
		if !ok || cfg.APIKey == "" {
			continue
		}
		r.providers[name] = build(cfg)
	}
	return r
}

// Generate relays prompt to the active provider.
func (r *Registry) Generate(ctx context.Context, prompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := p.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("suggestion failed", "provider", p.Name(), "duration", time.Since(start), "error", err)
		return "", err
	}
	slog.Debug("suggestion generated", "provider", p.Name(), "duration", time.Since(start), "chars", len(text))
	return text, nil
}

// Active returns the currently active provider, or an error wrapping
// ErrNoProvider when it has no key.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("%w for %q", ErrNoProvider, r.active)
	}
	return p, nil
}

// SetActive switches the active provider. The active name is unchanged
// when name has no provider.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Available returns the sorted names of the configured providers.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds or replaces a provider.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}
