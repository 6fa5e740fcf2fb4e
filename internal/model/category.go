// Package model defines the entities managed by the intake stores.
package model

import "time"

// Category groups submissions under a named heading.
type Category struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Name        string
	Slug        string
	Description string
}

// CategoryInput holds the user-editable fields of a category.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"max=500"`
}
