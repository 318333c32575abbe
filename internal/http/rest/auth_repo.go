package rest

import (
	"context"
	"fmt"

	"github.com/bwise1/court_cases/internal/model"
)

func (api *API) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`

	err := api.DB.QueryRow(ctx, stmt, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return exists, nil
}

func (api *API) CreateUserRepo(ctx context.Context, user model.User) error {
	stmt := `
        INSERT INTO users (
            username,
            password,
            role
        ) VALUES ($1, $2, $3)
    `
	_, err := api.DB.Exec(ctx, stmt, user.Username, user.PasswordHash, string(user.Role))
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByUsername returns pgx.ErrNoRows (wrapped) when the user is absent.
func (api *API) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var (
		user model.User
		role string
	)
	stmt := `SELECT username, password, role, created_at FROM users WHERE username = $1`

	err := api.DB.QueryRow(ctx, stmt, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("get user %q: %w", username, err)
	}
	user.Role = model.Role(role)
	return user, nil
}
