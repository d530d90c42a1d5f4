package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ticklist/ticklist/internal/metrics"
	"github.com/ticklist/ticklist/internal/model"
	"github.com/ticklist/ticklist/internal/repository"
	"github.com/ticklist/ticklist/internal/validation"
)

// Service errors.
var (
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoStore is the persistence surface TodoService depends on.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetTodoByID(ctx context.Context, id int64) (*model.Todo, error)
	ListTodosByOwner(ctx context.Context, userID int64) ([]*model.Todo, error)
	UpdateTodoCompleted(ctx context.Context, id int64, hasCompleted bool) error
	DeleteTodo(ctx context.Context, id int64) error
	TitleExists(ctx context.Context, title string) (bool, error)
}

// TodoService handles todo business logic.
type TodoService struct {
	todos   TodoStore
	metrics metrics.Recorder
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos TodoStore, recorder metrics.Recorder) *TodoService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TodoService{
		todos:   todos,
		metrics: recorder,
	}
}

// List returns all todos owned by the given user.
// An empty result is not an error.
func (s *TodoService) List(ctx context.Context, userID int64) ([]*model.Todo, error) {
	todos, err := s.todos.ListTodosByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodoInput defines input for creating a todo.
type CreateTodoInput struct {
	Title  string
	Labels []string
	UserID int64
}

// Create persists a new todo owned by the caller.
// Titles are unique across all users, matching the store contract.
func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (*model.Todo, error) {
	taken, err := s.todos.TitleExists(ctx, input.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to check title: %w", err)
	}
	if taken {
		return nil, titleTakenError()
	}

	now := time.Now().UTC()
	todo := &model.Todo{
		Title:        input.Title,
		HasCompleted: false,
		Labels:       input.Labels,
		UserID:       input.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.todos.CreateTodo(ctx, todo); err != nil {
		// Unique index catches duplicate-title races atomically.
		if errors.Is(err, repository.ErrTitleExists) {
			return nil, titleTakenError()
		}
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.metrics.IncTodoCreated()

	return todo, nil
}

// Get fetches a todo by id. The lookup is global, not owner-scoped.
func (s *TodoService) Get(ctx context.Context, id int64) (*model.Todo, error) {
	todo, err := s.todos.GetTodoByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// Update sets has_completed and returns the updated record.
// Title and owner are immutable via update.
func (s *TodoService) Update(ctx context.Context, id int64, hasCompleted bool) (*model.Todo, error) {
	if err := s.todos.UpdateTodoCompleted(ctx, id, hasCompleted); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	todo, err := s.todos.GetTodoByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to reload todo: %w", err)
	}

	s.metrics.IncTodoUpdated()

	return todo, nil
}

// Delete removes a todo permanently. Deleting an already-deleted id
// reports not found.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.todos.DeleteTodo(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.metrics.IncTodoDeleted()

	return nil
}

func titleTakenError() *ValidationError {
	errs := validation.Errors{}
	errs.Add("title", validation.Taken("title"))
	return &ValidationError{Fields: errs}
}
