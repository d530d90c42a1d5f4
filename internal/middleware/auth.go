package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ticklist/ticklist/internal/auth"
	"github.com/ticklist/ticklist/internal/metrics"
	"github.com/ticklist/ticklist/internal/model"
)

// TokenSource looks up stored bearer tokens.
// *repository.Repository satisfies this interface.
type TokenSource interface {
	GetTokensByPrefix(ctx context.Context, prefix string) ([]*model.Token, error)
	UpdateTokenLastUsed(ctx context.Context, id string) error
}

// UserSource resolves token owners.
type UserSource interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthCache caches resolved auth contexts.
// *cache.Cache satisfies this interface.
type AuthCache interface {
	GetAuthContext(ctx context.Context, cacheKey string) (*model.AuthContext, error)
	SetAuthContext(ctx context.Context, cacheKey string, auth *model.AuthContext) error
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  TokenSource
	Users   UserSource
	Cache   AuthCache
	Metrics metrics.Recorder

	// MinDuration is the minimum time to spend on auth to prevent
	// timing attacks. Zero disables the floor (tests).
	MinDuration time.Duration
}

// Auth returns a middleware that authenticates API requests.
// It extracts the bearer token from the Authorization header, verifies
// it against the token store, and injects the auth context into the
// request. All failures produce the identical 401 body.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			// Ensure consistent timing regardless of outcome
			defer func() {
				elapsed := time.Since(startTime)
				if elapsed < cfg.MinDuration {
					time.Sleep(cfg.MinDuration - elapsed)
				}
			}()

			token := extractBearerToken(r)
			if token == "" {
				logAuthFailure(cfg.Logger, r, "missing_token")
				writeAuthError(w)
				return
			}

			parsed, err := auth.ParseToken(token)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "invalid_format")
				writeAuthError(w)
				return
			}

			// Check cache first
			cacheKey := auth.QuickHash(token)
			authCtx, _ := cfg.Cache.GetAuthContext(r.Context(), cacheKey)

			if authCtx != nil {
				recorder.IncAuthCacheHit()
				ctx := auth.ContextWithAuth(r.Context(), authCtx)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			recorder.IncAuthCacheMiss()

			// Cache miss - lookup by prefix
			tokens, err := cfg.Tokens.GetTokensByPrefix(r.Context(), parsed.Prefix)
			if err != nil {
				cfg.Logger.Error("database error during auth",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			// Verify against each candidate (handles prefix collisions)
			var matched *model.Token
			for _, t := range tokens {
				match, err := auth.VerifyPassword(token, t.TokenHash)
				if err != nil {
					continue
				}
				if match {
					matched = t
					break
				}
			}

			if matched == nil {
				logAuthFailure(cfg.Logger, r, "invalid_token")
				writeAuthError(w)
				return
			}

			user, err := cfg.Users.GetUserByID(r.Context(), matched.UserID)
			if err != nil {
				logAuthFailure(cfg.Logger, r, "unknown_user")
				writeAuthError(w)
				return
			}

			authCtx = &model.AuthContext{
				TokenID:     matched.ID,
				TokenPrefix: matched.TokenPrefix,
				UserID:      user.ID,
				Name:        user.Name,
				Email:       user.Email,
			}

			// Cache the result
			_ = cfg.Cache.SetAuthContext(r.Context(), cacheKey, authCtx)

			// Update last_used_at asynchronously
			go func() {
				_ = cfg.Tokens.UpdateTokenLastUsed(context.WithoutCancel(r.Context()), matched.ID)
			}()

			ctx := auth.ContextWithAuth(r.Context(), authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func logAuthFailure(logger *slog.Logger, r *http.Request, reason string) {
	logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same body for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"errors":{"message":["Unauthenticated."]}}`))
}
