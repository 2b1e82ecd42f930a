package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"users-api/internal/domain/user"
	"users-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the users table when it is missing.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, CreateUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := make(Users, 0)
	for rows.Next() {
		u := new(User)

		if err = rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
		); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	return r.queryOne(ctx, SelectUserByID, int64(id))
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	return r.queryOne(ctx, InsertUser, req.Name, req.Email)
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	return r.queryOne(ctx, UpdateUserByID, req.Name, req.Email, int64(req.ID))
}

func (r *Repository) DeleteUser(ctx context.Context, id user.ID) (*user.User, error) {
	return r.queryOne(ctx, DeleteUserByID, int64(id))
}

// queryOne scans a single "id, name, email" row, no row is (nil, nil).
func (r *Repository) queryOne(ctx context.Context, sql string, args ...any) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
