package service

import (
	"context"
	"sort"
	"sync"

	"github.com/ticklist/ticklist/internal/model"
	"github.com/ticklist/ticklist/internal/repository"
)

// fakeUserStore is an in-memory UserStore for tests.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrEmailExists
		}
	}

	f.nextID++
	user.ID = f.nextID
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// fakeTokenStore is an in-memory TokenStore for tests.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens []*model.Token
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token *model.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *token
	f.tokens = append(f.tokens, &stored)
	return nil
}

func (f *fakeTokenStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

// fakeTodoStore is an in-memory TodoStore for tests.
type fakeTodoStore struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]*model.Todo
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{todos: make(map[int64]*model.Todo)}
}

func (f *fakeTodoStore) CreateTodo(ctx context.Context, todo *model.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.todos {
		if existing.Title == todo.Title {
			return repository.ErrTitleExists
		}
	}

	f.nextID++
	todo.ID = f.nextID
	stored := *todo
	f.todos[todo.ID] = &stored
	return nil
}

func (f *fakeTodoStore) GetTodoByID(ctx context.Context, id int64) (*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	todo, ok := f.todos[id]
	if !ok {
		return nil, repository.ErrTodoNotFound
	}
	copied := *todo
	return &copied, nil
}

func (f *fakeTodoStore) ListTodosByOwner(ctx context.Context, userID int64) ([]*model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*model.Todo
	for _, todo := range f.todos {
		if todo.UserID == userID {
			copied := *todo
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeTodoStore) UpdateTodoCompleted(ctx context.Context, id int64, hasCompleted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	todo, ok := f.todos[id]
	if !ok {
		return repository.ErrTodoNotFound
	}
	todo.HasCompleted = hasCompleted
	return nil
}

func (f *fakeTodoStore) DeleteTodo(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.todos[id]; !ok {
		return repository.ErrTodoNotFound
	}
	delete(f.todos, id)
	return nil
}

func (f *fakeTodoStore) TitleExists(ctx context.Context, title string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, todo := range f.todos {
		if todo.Title == title {
			return true, nil
		}
	}
	return false, nil
}
