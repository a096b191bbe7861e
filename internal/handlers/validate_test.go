package handlers

import (
	"strings"
	"testing"
)

func TestValidateRecipe(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		ingredients []string
		category    string
		wantError   bool
	}{
		{"valid", "カレーライス", "定番の家庭料理", []string{"玉ねぎ"}, "主菜", false},
		{"no ingredients allowed", "おにぎり", "塩むすび", nil, "", false},
		{"empty title", "", "説明", nil, "", true},
		{"whitespace title", "　 ", "説明", nil, "", true},
		{"empty description", "タイトル", "", nil, "", true},
		{"title too long", strings.Repeat("あ", 201), "説明", nil, "", true},
		{"title at limit", strings.Repeat("あ", 200), "説明", nil, "", false},
		{"description too long", "タイトル", strings.Repeat("a", 10_001), nil, "", true},
		{"too many ingredients", "タイトル", "説明", make([]string, 101), "", true},
		{"ingredient too long", "タイトル", "説明", []string{strings.Repeat("a", 201)}, "", true},
		{"category too long", "タイトル", "説明", nil, strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateRecipe(tt.title, tt.description, tt.ingredients, tt.category)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantError bool
	}{
		{"valid", "おいしかったです", false},
		{"empty", "", true},
		{"whitespace", "  \n ", true},
		{"too long", strings.Repeat("a", 2001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateComment(tt.text)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidatePrompt(t *testing.T) {
	if validatePrompt("") != "Prompt is required" {
		t.Error("empty prompt should be rejected")
	}
	if validatePrompt("   ") == "" {
		t.Error("blank prompt should be rejected")
	}
	if validatePrompt(strings.Repeat("a", 10_001)) == "" {
		t.Error("oversized prompt should be rejected")
	}
	if msg := validatePrompt("肉じゃがに合う副菜は？"); msg != "" {
		t.Errorf("unexpected error: %s", msg)
	}
}
