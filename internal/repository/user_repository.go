package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"barwy-shop/internal/database"
	"barwy-shop/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

const userColumns = `id, email, user_name, password_hash, first_name, last_name, image, created_at, updated_at`

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Any(ctx context.Context) (bool, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. Emails are stored lower-cased.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(user.Email)
	if user.UserName == "" {
		user.UserName = user.Email
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	_, err := database.Executor(ctx, r.db).ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.UserName,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Image,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return fmt.Errorf("%w: %w", ErrUserAlreadyExists, ErrConflict)
		}
		return fmt.Errorf("failed to create user: %w", classify(err))
	}

	return nil
}

// FindByEmail retrieves a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, strings.ToLower(email))
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ` + where

	var firstName, lastName, image sql.NullString
	user := &domain.User{}
	err := database.Executor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.UserName,
		&user.PasswordHash,
		&firstName,
		&lastName,
		&image,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", classify(err))
	}

	user.FirstName, user.LastName, user.Image = firstName.String, lastName.String, image.String
	return user, nil
}

// Any reports whether at least one user exists
func (r *userRepository) Any(ctx context.Context) (bool, error) {
	var exists bool
	err := database.Executor(ctx, r.db).
		QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check users: %w", classify(err))
	}
	return exists, nil
}
