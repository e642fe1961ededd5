// Package repository provides PostgreSQL persistence for users, contacts
// and addresses.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"contactdesk/internal/models"
)

// PostgresUserRepository implements user persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a PostgresUserRepository using the given
// database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// ExistsByUsername reports whether a user with the given username exists.
func (r *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ExistsByUsername: %w", err)
	}
	return exists, nil
}

// Create inserts a new user record. The token column is left NULL: a fresh
// account starts logged out.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (username, name, password) VALUES ($1, $2, $3)`,
		user.Username, user.Name, user.Password,
	)
	if err != nil {
		return fmt.Errorf("Create user: %w", err)
	}
	return nil
}

// FindByUsername fetches a user by username. Returns sql.ErrNoRows when no
// such user exists.
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT username, name, password, token FROM users WHERE username = $1
	`, username).Scan(&user.Username, &user.Name, &user.Password, &user.Token)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByToken fetches the user holding the given session token. A NULL
// token column never matches. Returns sql.ErrNoRows when no user holds it.
func (r *PostgresUserRepository) FindByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT username, name, password, token FROM users WHERE token = $1
	`, token).Scan(&user.Username, &user.Name, &user.Password, &user.Token)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists the mutable profile fields (name, password hash) of user.
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET name = $1, password = $2 WHERE username = $3`,
		user.Name, user.Password, user.Username,
	)
	if err != nil {
		return fmt.Errorf("Update user: %w", err)
	}
	return nil
}

// UpdateToken sets or clears the session token of the given user. Passing
// an invalid NullString logs the user out.
func (r *PostgresUserRepository) UpdateToken(ctx context.Context, username string, token sql.NullString) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET token = $1 WHERE username = $2`,
		token, username,
	)
	if err != nil {
		return fmt.Errorf("UpdateToken: %w", err)
	}
	return nil
}
