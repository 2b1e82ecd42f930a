package user

import (
	"context"
)

// Repository returns (nil, nil) when the requested user does not exist.
type Repository interface {
	FetchUsers(ctx context.Context) (Users, error)
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	// UpdateUser overwrites only the non-empty fields of req, matched by req.ID.
	UpdateUser(ctx context.Context, req User) (*User, error)
	DeleteUser(ctx context.Context, id ID) (*User, error)
}
