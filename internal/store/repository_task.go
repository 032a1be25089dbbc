package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/models"
)

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
// Reminder timestamps are persisted as a JSONB array and decoded on read.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// database connection and logger.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new task record at the list version it was drafted for.
func (r *taskRepository) Create(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTaskQuery(r.db.tables.tasks, task)
	if err != nil {
		log.Err(err).Str("func", "taskRepository.Create").Msg("failed to create query")
		return models.Task{}, err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "taskRepository.Create").Str("task_id", task.TaskID).Msg("failed to insert task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return task, nil
}

// GetByID retrieves the task with the given identifier.
// Returns [ErrTaskNotFound] when no such record exists.
func (r *taskRepository) GetByID(ctx context.Context, taskID string) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTaskQuery(r.db.tables.tasks, sq.Eq{"task_id": taskID})
	if err != nil {
		log.Err(err).Str("func", "taskRepository.GetByID").Msg("failed to create query")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		task      models.Task
		reminders []byte
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&task.TaskID,
		&task.UserID,
		&task.ListID,
		&task.TaskName,
		&task.Description,
		&reminders,
		&task.IsComplete,
		&task.IsPriority,
		&task.IsRecurring,
		&task.ListVersion,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		log.Err(err).Str("func", "taskRepository.GetByID").Msg("failed to scan task row")
		return models.Task{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err := json.Unmarshal(reminders, &task.Reminders); err != nil {
		log.Err(err).Str("func", "taskRepository.GetByID").Str("task_id", taskID).Msg("failed to decode reminders")
		return models.Task{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return task, nil
}

// GetByListAndVersion retrieves every task bound to the given list version.
// Returns an empty slice when the version holds no tasks.
func (r *taskRepository) GetByListAndVersion(ctx context.Context, listID string, version int) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTaskQuery(r.db.tables.tasks, sq.Eq{"list_id": listID, "list_version": version})
	if err != nil {
		log.Err(err).Str("func", "taskRepository.GetByListAndVersion").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.GetByListAndVersion").
			Str("list_id", listID).
			Int("list_version", version).
			Msg("failed to execute query for getting version tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Task, 0, 20)

	for rows.Next() {
		var (
			task      models.Task
			reminders []byte
		)

		scanErr := rows.Scan(
			&task.TaskID,
			&task.UserID,
			&task.ListID,
			&task.TaskName,
			&task.Description,
			&reminders,
			&task.IsComplete,
			&task.IsPriority,
			&task.IsRecurring,
			&task.ListVersion,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "taskRepository.GetByListAndVersion").
				Str("list_id", listID).
				Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if err := json.Unmarshal(reminders, &task.Reminders); err != nil {
			log.Err(err).
				Str("func", "taskRepository.GetByListAndVersion").
				Str("task_id", task.TaskID).
				Msg("failed to decode reminders")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		results = append(results, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "taskRepository.GetByListAndVersion").
			Str("list_id", listID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Update applies the non-nil fields of patch to the identified record and
// refreshes updated_at. The affected-row count is returned.
func (r *taskRepository) Update(ctx context.Context, taskID string, patch models.TaskUpdate) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTaskQuery(r.db.tables.tasks, taskID, patch, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, ErrEmptyPatch) {
			log.Err(err).Str("func", "taskRepository.Update").Msg("failed to create query")
		}
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "taskRepository.Update").Str("task_id", taskID).Msg("failed to update task")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// Delete removes the identified record and returns the affected-row count.
func (r *taskRepository) Delete(ctx context.Context, taskID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.db.tables.tasks, sq.Eq{"task_id": taskID})
	if err != nil {
		log.Err(err).Str("func", "taskRepository.Delete").Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "taskRepository.Delete").Str("task_id", taskID).Msg("failed to delete task")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
