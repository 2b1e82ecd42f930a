package user

const (
	CreateUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	SelectUsers = `
		SELECT id, name, email
		FROM users
		ORDER BY id
	`
	SelectUserByID = `
		SELECT id, name, email
		FROM users
		WHERE id = $1
	`
	InsertUser = `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email
	`
	UpdateUserByID = `
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
		    email = COALESCE(NULLIF($2, ''), email),
		    updated_at = now()
		WHERE id = $3
		RETURNING id, name, email
	`
	DeleteUserByID = `
		DELETE FROM users
		WHERE id = $1
		RETURNING id, name, email
	`
)
