// Package model defines domain entities for the application.
package model

import "time"

// Token represents a stored bearer token credential.
// Only the argon2id hash of the token is persisted; the plaintext is
// returned to the client once at issuance.
type Token struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"user_id"`
	TokenHash   string     `json:"-"` // Never serialize
	TokenPrefix string     `json:"token_prefix"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthContext holds authenticated request context.
// This is injected into the request context by auth middleware.
type AuthContext struct {
	TokenID     string
	TokenPrefix string
	UserID      int64
	Name        string
	Email       string
}
