package repository

import (
	"context"
	"database/sql"
	"fmt"

	"taskhive-be/internal/entities"
)

// ShareWithUser is a share entry joined with the grantee's user record
type ShareWithUser struct {
	User   entities.User
	Access string
}

// ListRepository defines the interface for list database operations
type ListRepository interface {
	Create(ctx context.Context, title, ownerID string) (*entities.List, error)
	FindByID(ctx context.Context, id string) (*entities.List, error)
	FindIDsForUser(ctx context.Context, userID string) ([]string, error)
	FindShares(ctx context.Context, listID string) ([]entities.ShareEntry, error)
	FindSharesWithUsers(ctx context.Context, listID string) ([]ShareWithUser, error)
	UpdateTitle(ctx context.Context, listID, title string) error
	Delete(ctx context.Context, listID, ownerID string) error
	UpsertShare(ctx context.Context, listID, userID, access string) error
	RemoveShare(ctx context.Context, listID, userID string) error
}

type listRepository struct {
	db *sql.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *sql.DB) ListRepository {
	return &listRepository{db: db}
}

// Create inserts a new list owned by the given user
func (r *listRepository) Create(ctx context.Context, title, ownerID string) (*entities.List, error) {
	query := `
		INSERT INTO lists (title, owner_id)
		VALUES ($1, $2)
		RETURNING id, title, owner_id, created_at
	`

	var list entities.List
	err := r.db.QueryRowContext(ctx, query, title, ownerID).Scan(
		&list.ID,
		&list.Title,
		&list.OwnerID,
		&list.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return &list, nil
}

// FindByID finds a list by ID
func (r *listRepository) FindByID(ctx context.Context, id string) (*entities.List, error) {
	query := `SELECT id, title, owner_id, created_at FROM lists WHERE id = $1`

	var list entities.List
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&list.ID,
		&list.Title,
		&list.OwnerID,
		&list.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	return &list, nil
}

// FindIDsForUser returns the ids of every list the user owns or is shared on,
// newest first
func (r *listRepository) FindIDsForUser(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT DISTINCT l.id, l.created_at
		FROM lists l
		LEFT JOIN list_shares s ON s.list_id = l.id
		WHERE l.owner_id = $1 OR s.user_id = $1
		ORDER BY l.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find lists: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		var createdAt sql.NullTime
		if err := rows.Scan(&id, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan list id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}
	return ids, nil
}

// FindShares returns the share entries of a list
func (r *listRepository) FindShares(ctx context.Context, listID string) ([]entities.ShareEntry, error) {
	query := `SELECT list_id, user_id, access FROM list_shares WHERE list_id = $1`

	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to find shares: %w", err)
	}
	defer rows.Close()

	var shares []entities.ShareEntry
	for rows.Next() {
		var share entities.ShareEntry
		if err := rows.Scan(&share.ListID, &share.UserID, &share.Access); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shares: %w", err)
	}
	return shares, nil
}

// FindSharesWithUsers returns the share entries of a list with each grantee
// resolved to their user record
func (r *listRepository) FindSharesWithUsers(ctx context.Context, listID string) ([]ShareWithUser, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.created_at, u.updated_at, s.access
		FROM list_shares s
		JOIN users u ON u.id = s.user_id
		WHERE s.list_id = $1
		ORDER BY s.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to find shares: %w", err)
	}
	defer rows.Close()

	var shares []ShareWithUser
	for rows.Next() {
		var share ShareWithUser
		err := rows.Scan(
			&share.User.ID,
			&share.User.Email,
			&share.User.FirstName,
			&share.User.LastName,
			&share.User.CreatedAt,
			&share.User.UpdatedAt,
			&share.Access,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shares: %w", err)
	}
	return shares, nil
}

// UpdateTitle changes a list's title
func (r *listRepository) UpdateTitle(ctx context.Context, listID, title string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE lists SET title = $1 WHERE id = $2`, title, listID)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return checkAffected(result)
}

// Delete removes a list, scoped to its owner. Tasks and shares cascade.
func (r *listRepository) Delete(ctx context.Context, listID, ownerID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1 AND owner_id = $2`, listID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return checkAffected(result)
}

// UpsertShare grants a user access to a list, overwriting the access level
// if a share entry already exists for that (list, user) pair
func (r *listRepository) UpsertShare(ctx context.Context, listID, userID, access string) error {
	query := `
		INSERT INTO list_shares (list_id, user_id, access)
		VALUES ($1, $2, $3)
		ON CONFLICT (list_id, user_id) DO UPDATE SET access = EXCLUDED.access
	`
	if _, err := r.db.ExecContext(ctx, query, listID, userID, access); err != nil {
		return fmt.Errorf("failed to share list: %w", err)
	}
	return nil
}

// RemoveShare revokes a user's access to a list. Removing a user who is not
// shared is a no-op.
func (r *listRepository) RemoveShare(ctx context.Context, listID, userID string) error {
	query := `DELETE FROM list_shares WHERE list_id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, listID, userID); err != nil {
		return fmt.Errorf("failed to remove share: %w", err)
	}
	return nil
}

func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
