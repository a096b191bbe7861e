package models

import "time"

// TimestampLayout is the display format for comment timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Comment is an append-only note left on a recipe.
type Comment struct {
	ID        int64     `json:"id"`
	RecipeID  int64     `json:"recipe_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"`
}
