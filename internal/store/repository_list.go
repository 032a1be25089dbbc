package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/models"
)

// listRepository is the PostgreSQL-backed implementation of [ListRepository].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (list_id, user_id, version).
type listRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewListRepository constructs a [ListRepository] backed by the provided
// database connection and logger.
func NewListRepository(db *DB, logger *logger.Logger) ListRepository {
	logger.Debug().Msg("creating list repository")
	return &listRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new list record as given, including its server-generated
// share token and initial version.
func (r *listRepository) Create(ctx context.Context, list models.List) (models.List, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertListQuery(r.db.tables.lists, list)
	if err != nil {
		log.Err(err).Str("func", "listRepository.Create").Msg("failed to create query")
		return models.List{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "listRepository.Create").Str("list_id", list.ListID).Msg("failed to insert list")
		return models.List{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return list, nil
}

// GetByID retrieves the list with the given identifier.
// Returns [ErrListNotFound] when no such record exists.
func (r *listRepository) GetByID(ctx context.Context, listID string) (models.List, error) {
	return r.getOne(ctx, "listRepository.GetByID", sq.Eq{"list_id": listID})
}

// GetByOwnerAndName retrieves the owner's list with the given name.
// Returns [ErrListNotFound] when no such record exists.
func (r *listRepository) GetByOwnerAndName(ctx context.Context, userID, listName string) (models.List, error) {
	return r.getOne(ctx, "listRepository.GetByOwnerAndName", sq.Eq{"user_id": userID, "list_name": listName})
}

// GetByShareToken retrieves the list carrying the given share token.
// Returns [ErrListNotFound] when no such record exists.
func (r *listRepository) GetByShareToken(ctx context.Context, shareToken string) (models.List, error) {
	return r.getOne(ctx, "listRepository.GetByShareToken", sq.Eq{"share_token": shareToken})
}

// GetAllByOwner retrieves every list owned by the given user.
// Returns an empty slice when the user owns no lists.
func (r *listRepository) GetAllByOwner(ctx context.Context, userID string) ([]models.List, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectListQuery(r.db.tables.lists, sq.Eq{"user_id": userID})
	if err != nil {
		log.Err(err).Str("func", "listRepository.GetAllByOwner").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "listRepository.GetAllByOwner").
			Str("user_id", userID).
			Msg("failed to execute query for getting user lists")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.List, 0, 10)

	for rows.Next() {
		var list models.List

		scanErr := rows.Scan(
			&list.ListID,
			&list.UserID,
			&list.ListName,
			&list.Version,
			&list.Visibility,
			&list.ShareToken,
			&list.CreatedAt,
			&list.LastUpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "listRepository.GetAllByOwner").
				Str("user_id", userID).
				Msg("failed to scan list row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, list)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "listRepository.GetAllByOwner").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Update applies the non-nil fields of patch to the identified record and
// refreshes last_updated_at. The version column is not reachable from a
// [models.ListUpdate]; use SetVersion for that.
func (r *listRepository) Update(ctx context.Context, listID string, patch models.ListUpdate) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateListQuery(r.db.tables.lists, listID, patch, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, ErrEmptyPatch) {
			log.Err(err).Str("func", "listRepository.Update").Msg("failed to create query")
			err = fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "listRepository.Update").Str("list_id", listID).Msg("failed to update list")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// SetVersion writes the given version number to the identified list. This is
// the only write path for the version column.
func (r *listRepository) SetVersion(ctx context.Context, listID string, version int) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSetListVersionQuery(r.db.tables.lists, listID, version, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "listRepository.SetVersion").Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "listRepository.SetVersion").
			Str("list_id", listID).
			Int("version", version).
			Msg("failed to set list version")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// Delete removes the identified record and returns the affected-row count.
func (r *listRepository) Delete(ctx context.Context, listID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.db.tables.lists, sq.Eq{"list_id": listID})
	if err != nil {
		log.Err(err).Str("func", "listRepository.Delete").Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "listRepository.Delete").Str("list_id", listID).Msg("failed to delete list")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

func (r *listRepository) getOne(ctx context.Context, fn string, filter sq.Eq) (models.List, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectListQuery(r.db.tables.lists, filter)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to create query")
		return models.List{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var list models.List
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&list.ListID,
		&list.UserID,
		&list.ListName,
		&list.Version,
		&list.Visibility,
		&list.ShareToken,
		&list.CreatedAt,
		&list.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.List{}, ErrListNotFound
		}
		log.Err(err).Str("func", fn).Msg("failed to scan list row")
		return models.List{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return list, nil
}
