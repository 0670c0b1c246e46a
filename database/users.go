package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/moody/moodyserver/models"
)

var ErrNotFound = errors.New("not found")

// CreateUser inserts a user with a bcrypt-hashed password.
func CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	_, err = DB.ExecContext(ctx,
		"INSERT INTO users(id,email,password_hash,created_at) VALUES($1,$2,$3,$4)",
		user.ID, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail fetches a user by email.
func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,created_at FROM users WHERE email=$1",
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID fetches a user by id.
func GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,created_at FROM users WHERE id=$1",
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyPassword compares a plaintext password against the stored hash.
func VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// DeleteUserData removes the user row; mood, vent and consent rows
// cascade with it. Used by the privacy endpoints.
func DeleteUserData(ctx context.Context, userID uuid.UUID) error {
	res, err := DB.ExecContext(ctx, "DELETE FROM users WHERE id=$1", userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
