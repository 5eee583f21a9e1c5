package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"taskhive-be/internal/entities"
)

const userColumns = `id, email, first_name, last_name, password_hash, google_id, reset_otp, reset_otp_expires_at, created_at, updated_at`

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(ctx context.Context, email, firstName, lastName string, passwordHash, googleID *string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*entities.User, error)
	LinkGoogleID(ctx context.Context, userID, googleID string) error
	SetResetOTP(ctx context.Context, userID, otp string, expiresAt time.Time) error
	ClearResetOTP(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func scanUser(row *sql.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.GoogleID,
		&user.ResetOTP,
		&user.ResetOTPExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, email, firstName, lastName string, passwordHash, googleID *string) (*entities.User, error) {
	query := `
		INSERT INTO users (email, first_name, last_name, password_hash, google_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, email, firstName, lastName, passwordHash, googleID)
	user, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// FindByGoogleID finds a user by their linked Google account id
func (r *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE google_id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

// LinkGoogleID attaches a Google account id to an existing user
func (r *userRepository) LinkGoogleID(ctx context.Context, userID, googleID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET google_id = $1, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $2
	`, googleID, userID)
}

// SetResetOTP stores a password-reset OTP and its expiry for a user
func (r *userRepository) SetResetOTP(ctx context.Context, userID, otp string, expiresAt time.Time) error {
	return r.exec(ctx, `
		UPDATE users
		SET reset_otp = $1, reset_otp_expires_at = $2, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $3
	`, otp, expiresAt.UTC(), userID)
}

// ClearResetOTP removes any pending password-reset OTP for a user
func (r *userRepository) ClearResetOTP(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET reset_otp = NULL, reset_otp_expires_at = NULL, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $1
	`, userID)
}

// UpdatePassword replaces a user's password hash
func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.exec(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = (NOW() AT TIME ZONE 'UTC')
		WHERE id = $2
	`, passwordHash, userID)
}

func (r *userRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
