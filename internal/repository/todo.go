package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/ticklist/ticklist/internal/model"
)

// Common errors for todo repository operations.
var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrTitleExists  = errors.New("title already exists")
)

// CreateTodo inserts a new todo and fills in the generated id.
// The title unique index is global across all owners.
func (r *Repository) CreateTodo(ctx context.Context, todo *model.Todo) error {
	query := `
		INSERT INTO todos (title, has_completed, labels, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		todo.Title,
		todo.HasCompleted,
		pq.Array(todo.Labels),
		todo.UserID,
		todo.CreatedAt,
		todo.UpdatedAt,
	).Scan(&todo.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrTitleExists
		}
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// GetTodoByID retrieves a todo by its ID.
// Lookup is global, not owner-scoped.
func (r *Repository) GetTodoByID(ctx context.Context, id int64) (*model.Todo, error) {
	query := `
		SELECT id, title, has_completed, labels, user_id, created_at, updated_at
		FROM todos
		WHERE id = $1
	`

	todo, err := scanTodo(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo by ID: %w", err)
	}

	return todo, nil
}

// ListTodosByOwner retrieves all todos owned by a user, oldest first.
func (r *Repository) ListTodosByOwner(ctx context.Context, userID int64) ([]*model.Todo, error) {
	query := `
		SELECT id, title, has_completed, labels, user_id, created_at, updated_at
		FROM todos
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*model.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// UpdateTodoCompleted sets the has_completed flag.
// Title and owner are immutable after creation.
func (r *Repository) UpdateTodoCompleted(ctx context.Context, id int64, hasCompleted bool) error {
	query := `
		UPDATE todos
		SET has_completed = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, hasCompleted)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// DeleteTodo removes a todo permanently.
func (r *Repository) DeleteTodo(ctx context.Context, id int64) error {
	query := `DELETE FROM todos WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// TitleExists checks if a todo title is already taken by any user.
func (r *Repository) TitleExists(ctx context.Context, title string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM todos WHERE title = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, title).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check title existence: %w", err)
	}

	return exists, nil
}

// scanTodo scans a single row into a Todo model.
func scanTodo(row pgx.Row) (*model.Todo, error) {
	var todo model.Todo
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.HasCompleted,
		pq.Array(&todo.Labels),
		&todo.UserID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	return &todo, err
}
