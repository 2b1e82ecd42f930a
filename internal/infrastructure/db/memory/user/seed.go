package user

import "users-api/internal/domain/user"

func SeedUsers() []user.User {
	return []user.User{
		{Name: "John Doe", Email: "john@example.com"},
		{Name: "Jane Smith", Email: "jane@example.com"},
		{Name: "Bob Johnson", Email: "bob@example.com"},
	}
}
