package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ticklist/ticklist/internal/handler/dto"
	"github.com/ticklist/ticklist/internal/service"
	"github.com/ticklist/ticklist/internal/validation"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	input := decodeInput(r)

	if errs := validation.RegisterRules().Validate(input); errs.Any() {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(errs))
		return
	}

	result, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     validation.String(input, "name"),
		Email:    validation.String(input, "email"),
		Password: validation.String(input, "password"),
	})
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", result.User.ID,
		"email", result.User.Email,
	)

	response := dto.ToUserResource(result.User, result.Token, "User Created Successfully")
	writeJSON(w, http.StatusCreated, dto.Envelope{Data: response})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	input := decodeInput(r)

	if errs := validation.LoginRules().Validate(input); errs.Any() {
		writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(errs))
		return
	}

	result, err := h.svc.Login(r.Context(),
		validation.String(input, "email"),
		validation.String(input, "password"),
	)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", result.User.ID)

	response := dto.ToUserResource(result.User, result.Token, "Logged In Successfully")
	writeJSON(w, http.StatusOK, dto.Envelope{Data: response})
}

// handleAuthError maps auth service errors to HTTP responses.
func (h *AuthHandler) handleAuthError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.NewValidationErrorResponse(verr.Fields))
	case errors.Is(err, service.ErrInvalidCredentials):
		// Fixed body for unknown email and wrong password alike,
		// so callers cannot probe which accounts exist.
		writeJSON(w, http.StatusUnauthorized, dto.NewErrorResponse("username or password wrong"))
	default:
		h.logger.Error("internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.NewErrorResponse("Internal Server Error"))
	}
}
