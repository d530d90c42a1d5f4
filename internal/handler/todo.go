package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ticklist/ticklist/internal/auth"
	"github.com/ticklist/ticklist/internal/handler/dto"
	"github.com/ticklist/ticklist/internal/service"
	"github.com/ticklist/ticklist/internal/validation"
)

// TodoHandler handles HTTP requests for todo operations.
//
// Ownership contract: only List is owner-scoped. Show, Update, and
// Destroy look up by id across all users, matching the original
// service's behavior.
type TodoHandler struct {
	svc    *service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustAuthFromContext(r.Context()).UserID

	todos, err := h.svc.List(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.Envelope{Data: dto.ToTodoListResponse(todos)})
}

// Create handles POST /api/todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustAuthFromContext(r.Context()).UserID
	input := decodeInput(r)

	if errs := validation.TodoStoreRules().Validate(input); errs.Any() {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(errs))
		return
	}

	todo, err := h.svc.Create(r.Context(), service.CreateTodoInput{
		Title:  validation.String(input, "title"),
		Labels: validation.Strings(input, "labels"),
		UserID: userID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("todo_created",
		"todo_id", todo.ID,
		"user_id", userID,
	)

	writeJSON(w, http.StatusCreated, dto.Envelope{Data: dto.ToTodoResource(todo)})
}

// Show handles GET /api/todos/{id}.
func (h *TodoHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	todo, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.Envelope{Data: dto.ToTodoResource(todo)})
}

// Update handles PUT /api/todos/{id}.
// Only has_completed is mutable; title and owner are immutable.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	input := decodeInput(r)

	// Validation runs before the existence check, so a missing body on
	// an unknown id still reports 400.
	if errs := validation.TodoUpdateRules().Validate(input); errs.Any() {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(errs))
		return
	}

	id, ok := todoID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	todo, err := h.svc.Update(r.Context(), id, validation.Bool(input, "has_completed"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("todo_updated",
		"todo_id", todo.ID,
		"has_completed", todo.HasCompleted,
	)

	writeJSON(w, http.StatusOK, dto.Envelope{Data: dto.ToTodoResource(todo)})
}

// Destroy handles DELETE /api/todos/{id}.
func (h *TodoHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(r)
	if !ok {
		writeNotFound(w)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("todo_deleted", "todo_id", id)

	writeJSON(w, http.StatusOK, dto.DeletedResponse{
		Status:  true,
		Message: "data deleted",
	})
}

// todoID parses the {id} route parameter.
// A non-numeric id behaves like an unknown record.
func todoID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleServiceError maps todo service errors to HTTP responses.
func (h *TodoHandler) handleServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(verr.Fields))
	case errors.Is(err, service.ErrTodoNotFound):
		writeNotFound(w)
	default:
		h.logger.Error("internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.NewErrorResponse("Internal Server Error"))
	}
}

// writeNotFound writes the fixed 404 body.
func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, dto.NewErrorResponse("Not Found"))
}
