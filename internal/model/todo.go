// Package model defines domain entities for the application.
package model

import "time"

// Todo represents a to-do item owned by a single user.
// Title is unique across all users, not per owner.
type Todo struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	HasCompleted bool      `json:"has_completed"`
	Labels       []string  `json:"labels,omitempty"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
