package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ticklist/ticklist/internal/auth"
	"github.com/ticklist/ticklist/internal/model"
	"github.com/ticklist/ticklist/internal/repository"
	"github.com/ticklist/ticklist/internal/service"
)

// memStore is an in-memory store backing handler tests.
// It implements service.UserStore, service.TokenStore, and service.TodoStore.
type memStore struct {
	mu         sync.Mutex
	nextUserID int64
	nextTodoID int64
	users      map[int64]*model.User
	todos      map[int64]*model.Todo
	tokens     []*model.Token
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[int64]*model.User),
		todos: make(map[int64]*model.Todo),
	}
}

func (m *memStore) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}

	m.nextUserID++
	user.ID = m.nextUserID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) EmailExists(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateToken(ctx context.Context, token *model.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *token
	m.tokens = append(m.tokens, &stored)
	return nil
}

func (m *memStore) CreateTodo(ctx context.Context, todo *model.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.todos {
		if existing.Title == todo.Title {
			return repository.ErrTitleExists
		}
	}

	m.nextTodoID++
	todo.ID = m.nextTodoID
	stored := *todo
	m.todos[todo.ID] = &stored
	return nil
}

func (m *memStore) GetTodoByID(ctx context.Context, id int64) (*model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok {
		return nil, repository.ErrTodoNotFound
	}
	copied := *todo
	return &copied, nil
}

func (m *memStore) ListTodosByOwner(ctx context.Context, userID int64) ([]*model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*model.Todo
	for _, todo := range m.todos {
		if todo.UserID == userID {
			copied := *todo
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memStore) UpdateTodoCompleted(ctx context.Context, id int64, hasCompleted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	todo, ok := m.todos[id]
	if !ok {
		return repository.ErrTodoNotFound
	}
	todo.HasCompleted = hasCompleted
	return nil
}

func (m *memStore) DeleteTodo(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.todos[id]; !ok {
		return repository.ErrTodoNotFound
	}
	delete(m.todos, id)
	return nil
}

func (m *memStore) TitleExists(ctx context.Context, title string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, todo := range m.todos {
		if todo.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// testEnv bundles a router wired against in-memory stores.
type testEnv struct {
	router *chi.Mux
	store  *memStore
}

// fakeAuth injects a fixed auth context, standing in for the real
// token middleware. The user id is taken from the X-Test-User header
// so one router serves multiple identities.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := int64(1)
		if v := r.Header.Get("X-Test-User"); v != "" {
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				panic("invalid X-Test-User header: " + v)
			}
			userID = parsed
		}
		ctx := auth.ContextWithAuth(r.Context(), &model.AuthContext{
			TokenID:     "test-token",
			TokenPrefix: "abc123",
			UserID:      userID,
			Name:        "Test User",
			Email:       "test@example.com",
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authSvc := service.NewAuthService(store, store, auth.EnvTest, nil)
	todoSvc := service.NewTodoService(store, nil)

	authHandler := NewAuthHandler(authSvc, logger)
	todoHandler := NewTodoHandler(todoSvc, logger)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})
		r.Route("/todos", func(r chi.Router) {
			r.Use(fakeAuth)
			r.Get("/", todoHandler.List)
			r.Post("/", todoHandler.Create)
			r.Get("/{id}", todoHandler.Show)
			r.Put("/{id}", todoHandler.Update)
			r.Delete("/{id}", todoHandler.Destroy)
		})
	})

	return &testEnv{router: r, store: store}
}

// doJSON performs a request with a JSON body and returns the recorder.
func (env *testEnv) doJSON(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a recorder body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

// fieldErrors extracts the errors bag for a field from a 400 body.
func fieldErrors(t *testing.T, body map[string]any, field string) []string {
	t.Helper()

	errs, ok := body["errors"].(map[string]any)
	if !ok {
		t.Fatalf("response has no errors object: %v", body)
	}
	raw, ok := errs[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// dataField extracts a field from the data envelope.
func dataField(t *testing.T, body map[string]any, field string) any {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	return data[field]
}
