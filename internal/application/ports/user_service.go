package ports

import (
	"context"

	"users-api/internal/domain/user"
)

type UserService interface {
	FindUsers(ctx context.Context) (user.Users, error)
	FindUserByID(ctx context.Context, id user.ID) (*user.User, error)
	CreateUser(ctx context.Context, u user.User) (*user.User, error)
	UpdateUser(ctx context.Context, u user.User) (*user.User, error)
	DeleteUser(ctx context.Context, id user.ID) (*user.User, error)
}
