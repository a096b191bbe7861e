package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for recipe and comment fields.
const (
	maxTitleLen       = 200
	maxDescriptionLen = 10_000
	maxIngredients    = 100
	maxIngredientLen  = 200
	maxCategoryLen    = 100
	maxCommentLen     = 2_000
	maxPromptLen      = 10_000
)

// validateRecipe checks recipe inputs and returns the first error found.
func validateRecipe(title, description string, ingredients []string, category string) string {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return "Title and description are required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 200 characters)"
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 10,000 characters)"
	}
	if len(ingredients) > maxIngredients {
		return "Too many ingredients (max 100)"
	}
	for _, ing := range ingredients {
		if utf8.RuneCountInString(ing) > maxIngredientLen {
			return "Ingredient is too long (max 200 characters)"
		}
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return "Invalid category"
	}
	return ""
}

// validateComment checks comment text.
func validateComment(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "Comment text is required"
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return "Comment is too long (max 2,000 characters)"
	}
	return ""
}

// validatePrompt checks a suggestion prompt.
func validatePrompt(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return "Prompt is required"
	}
	if utf8.RuneCountInString(prompt) > maxPromptLen {
		return "Prompt is too long (max 10,000 characters)"
	}
	return ""
}
