package repository

import (
	"context"
	"database/sql"
	"fmt"

	"taskhive-be/internal/entities"
)

const taskColumns = `id, list_id, name, status, priority, position, created_at`

// TaskRepository defines the interface for task database operations
type TaskRepository interface {
	Create(ctx context.Context, listID, name, status, priority string) (*entities.Task, error)
	FindByID(ctx context.Context, listID, id string) (*entities.Task, error)
	FindByListID(ctx context.Context, listID string) ([]*entities.Task, error)
	Update(ctx context.Context, listID, id string, name, status, priority *string) (*entities.Task, error)
	Delete(ctx context.Context, listID, id string) error
}

type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

func scanTask(row *sql.Row) (*entities.Task, error) {
	var task entities.Task
	err := row.Scan(
		&task.ID,
		&task.ListID,
		&task.Name,
		&task.Status,
		&task.Priority,
		&task.Position,
		&task.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return &task, nil
}

// Create inserts a new task at the end of the list's ordered collection
func (r *taskRepository) Create(ctx context.Context, listID, name, status, priority string) (*entities.Task, error) {
	query := `
		INSERT INTO tasks (list_id, name, status, priority, position)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE list_id = $1))
		RETURNING ` + taskColumns

	task, err := scanTask(r.db.QueryRowContext(ctx, query, listID, name, status, priority))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// FindByID finds a task by id, scoped to its list
func (r *taskRepository) FindByID(ctx context.Context, listID, id string) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND list_id = $2`
	return scanTask(r.db.QueryRowContext(ctx, query, id, listID))
}

// FindByListID returns the tasks of a list in collection order
func (r *taskRepository) FindByListID(ctx context.Context, listID string) ([]*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE list_id = $1 ORDER BY position ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entities.Task
	for rows.Next() {
		var task entities.Task
		err := rows.Scan(
			&task.ID,
			&task.ListID,
			&task.Name,
			&task.Status,
			&task.Priority,
			&task.Position,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the non-nil fields to a task and returns the updated record
func (r *taskRepository) Update(ctx context.Context, listID, id string, name, status, priority *string) (*entities.Task, error) {
	query := `
		UPDATE tasks
		SET name     = COALESCE($1, name),
		    status   = COALESCE($2, status),
		    priority = COALESCE($3, priority)
		WHERE id = $4 AND list_id = $5
		RETURNING ` + taskColumns

	return scanTask(r.db.QueryRowContext(ctx, query, name, status, priority, id, listID))
}

// Delete removes a task, scoped to its list
func (r *taskRepository) Delete(ctx context.Context, listID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND list_id = $2`, id, listID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkAffected(result)
}
