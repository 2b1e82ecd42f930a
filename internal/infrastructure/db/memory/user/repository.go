package user

import (
	"context"
	"slices"
	"sync"

	"users-api/internal/domain/user"
)

// Repository keeps users in insertion order behind a single RWMutex.
// Ids come from a counter that only grows, so a deleted id is never reissued.
type Repository struct {
	mu     sync.RWMutex
	users  user.Users
	nextID user.ID
}

func NewRepository(seed ...user.User) *Repository {
	r := &Repository{
		users:  make(user.Users, 0, len(seed)),
		nextID: 1,
	}
	for _, u := range seed {
		r.insert(u)
	}

	return r
}

// NewSeededRepository starts with the three demo records, ids 1..3.
func NewSeededRepository() *Repository {
	return NewRepository(SeedUsers()...)
}

func (r *Repository) FetchUsers(_ context.Context) (user.Users, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	us := make(user.Users, len(r.users))
	for idx, u := range r.users {
		us[idx] = u.Clone()
	}

	return us, nil
}

func (r *Repository) FetchUserByID(_ context.Context, id user.ID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		return r.users[idx].Clone(), nil
	}

	return nil, nil
}

func (r *Repository) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insert(req).Clone(), nil
}

func (r *Repository) UpdateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(req.ID)
	if idx < 0 {
		return nil, nil
	}

	u := r.users[idx]
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = req.Email
	}

	return u.Clone(), nil
}

func (r *Repository) DeleteUser(_ context.Context, id user.ID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, nil
	}

	u := r.users[idx]
	r.users = slices.Delete(r.users, idx, idx+1)

	return u, nil
}

// insert must be called with mu held.
func (r *Repository) insert(req user.User) *user.User {
	u := &user.User{
		ID:    r.nextID,
		Name:  req.Name,
		Email: req.Email,
	}
	r.nextID++
	r.users = append(r.users, u)

	return u
}

// indexOf must be called with mu held.
func (r *Repository) indexOf(id user.ID) int {
	for idx, u := range r.users {
		if u.ID == id {
			return idx
		}
	}
	return -1
}
