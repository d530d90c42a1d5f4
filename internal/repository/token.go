package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ticklist/ticklist/internal/model"
)

// Common errors for token repository operations.
var (
	ErrTokenNotFound = errors.New("token not found")
)

// CreateToken inserts a new bearer token record.
func (r *Repository) CreateToken(ctx context.Context, token *model.Token) error {
	query := `
		INSERT INTO tokens (id, user_id, token_hash, token_prefix, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.TokenPrefix,
		token.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}

// GetTokensByPrefix retrieves all tokens matching a prefix.
// Used during authentication to find candidate tokens for verification;
// prefix collisions are possible and handled by the caller.
func (r *Repository) GetTokensByPrefix(ctx context.Context, prefix string) ([]*model.Token, error) {
	query := `
		SELECT id, user_id, token_hash, token_prefix, last_used_at, created_at
		FROM tokens
		WHERE token_prefix = $1
	`

	rows, err := r.pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokens by prefix: %w", err)
	}
	defer rows.Close()

	var tokens []*model.Token
	for rows.Next() {
		var t model.Token
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.TokenHash,
			&t.TokenPrefix,
			&t.LastUsedAt,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tokens: %w", err)
	}

	return tokens, nil
}

// UpdateTokenLastUsed stamps a token's last_used_at.
func (r *Repository) UpdateTokenLastUsed(ctx context.Context, id string) error {
	query := `UPDATE tokens SET last_used_at = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update token last used: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTokenNotFound
	}

	return nil
}
