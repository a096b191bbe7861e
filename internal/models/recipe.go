// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// Recipe is a shared recipe. Category is the joined category name and is
// populated by every store read.
type Recipe struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	ImageURL    *string  `json:"image_url"`
	Likes       int      `json:"likes"`
	CategoryID  int64    `json:"category_id"`
	Category    string   `json:"category"`
}

// RecipeInput carries the client-editable fields of a recipe for create and
// update. A nil ImageURL on update keeps the stored image.
type RecipeInput struct {
	Title       string
	Description string
	Ingredients []string
	Category    string
	ImageURL    *string
}

// ParseIngredients splits a comma-separated ingredient list, trimming
// whitespace and dropping empty entries. Order and duplicates are kept.
func ParseIngredients(s string) []string {
	items := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// CleanIngredients applies the same trimming rules to an already split list.
func CleanIngredients(in []string) []string {
	items := []string{}
	for _, part := range in {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
