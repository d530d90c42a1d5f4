// Package dto provides Data Transfer Objects for API requests and responses.
// Response envelopes carry the transient status/message display fields so
// persisted entities are never mutated for serialization.
package dto

import (
	"time"

	"github.com/ticklist/ticklist/internal/model"
	"github.com/ticklist/ticklist/internal/validation"
)

// Envelope wraps successful response payloads.
type Envelope struct {
	Data any `json:"data"`
}

// UserResource represents a user in auth responses.
type UserResource struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token"`
	Status    bool      `json:"status"`
	Message   string    `json:"message"`
}

// TodoResource represents a todo in API responses.
type TodoResource struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	HasCompleted bool      `json:"has_completed"`
	Labels       []string  `json:"labels,omitempty"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Status       bool      `json:"status"`
}

// ValidationErrorResponse is the fixed 400 validation failure envelope.
type ValidationErrorResponse struct {
	Errors  validation.Errors `json:"errors"`
	Status  bool              `json:"status"`
	Message string            `json:"message"`
}

// MessageErrors is the error bag used by 401 and 404 responses.
type MessageErrors struct {
	Message []string `json:"message"`
}

// ErrorResponse wraps a message-keyed error bag.
type ErrorResponse struct {
	Errors MessageErrors `json:"errors"`
}

// DeletedResponse is the destroy success body.
type DeletedResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// ToUserResource converts a User plus transient display fields.
func ToUserResource(user *model.User, token, message string) *UserResource {
	return &UserResource{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Token:     token,
		Status:    true,
		Message:   message,
	}
}

// ToTodoResource converts a Todo to its response shape.
func ToTodoResource(todo *model.Todo) *TodoResource {
	return &TodoResource{
		ID:           todo.ID,
		Title:        todo.Title,
		HasCompleted: todo.HasCompleted,
		Labels:       todo.Labels,
		UserID:       todo.UserID,
		CreatedAt:    todo.CreatedAt,
		UpdatedAt:    todo.UpdatedAt,
		Status:       true,
	}
}

// ToTodoListResponse converts a list of todos.
// Always returns a non-nil slice so the wire shape is [] for no rows.
func ToTodoListResponse(todos []*model.Todo) []*TodoResource {
	out := make([]*TodoResource, 0, len(todos))
	for _, t := range todos {
		out = append(out, ToTodoResource(t))
	}
	return out
}

// NewValidationErrorResponse builds the fixed validation failure body.
func NewValidationErrorResponse(errs validation.Errors) ValidationErrorResponse {
	return ValidationErrorResponse{
		Errors:  errs,
		Status:  false,
		Message: "validation error",
	}
}

// NewErrorResponse builds a message-keyed error body.
func NewErrorResponse(messages ...string) ErrorResponse {
	return ErrorResponse{Errors: MessageErrors{Message: messages}}
}
