// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

// newMistral creates a Mistral provider on top of the chat completions client.
func newMistral(cfg ProviderConfig) *openAIProvider {
	return newChatProvider("mistral", cfg, "https://api.mistral.ai/v1", "mistral-small-latest")
}
