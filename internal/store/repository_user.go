package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, OR-matching and mutation against the
// users table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new user record.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped in [ErrExecutingStatement].
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.tables.users, user)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Create").Msg("failed to create query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "userRepository.Create").Str("user_id", user.UserID).Msg("failed to insert user")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrUserAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

// GetByID retrieves the user with the given identifier.
// Returns [ErrUserNotFound] when no such record exists.
func (r *userRepository) GetByID(ctx context.Context, userID string) (models.User, error) {
	return r.getOne(ctx, "userRepository.GetByID", sq.Eq{"user_id": userID})
}

// GetByUsername retrieves the user with the given unique username.
// Returns [ErrUserNotFound] when no such record exists.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, "userRepository.GetByUsername", sq.Eq{"username": username})
}

// GetByExternalAuthID retrieves the user linked to the given external
// identity. Returns [ErrUserNotFound] when no such record exists.
func (r *userRepository) GetByExternalAuthID(ctx context.Context, externalAuthID string) (models.User, error) {
	return r.getOne(ctx, "userRepository.GetByExternalAuthID", sq.Eq{"external_auth_id": externalAuthID})
}

// Match runs the OR-existence query: the first stored user matching ANY
// non-empty criteria field is returned together with ok=true. No match is
// not an error. Empty criteria yield [ErrEmptyCriteria].
func (r *userRepository) Match(ctx context.Context, criteria models.UserCriteria) (models.User, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUserMatchQuery(r.db.tables.users, criteria)
	if err != nil {
		if !errors.Is(err, ErrEmptyCriteria) {
			log.Err(err).Str("func", "userRepository.Match").Msg("failed to create query")
			err = fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		return models.User{}, false, err
	}

	user, err := r.scanUserRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, false, nil
		}
		log.Err(err).Str("func", "userRepository.Match").Msg("failed to scan matched user")
		return models.User{}, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, true, nil
}

// Update applies the non-nil fields of patch to the identified record and
// refreshes last_updated_at. The affected-row count is returned; zero means
// no record carried the given id.
func (r *userRepository) Update(ctx context.Context, userID string, patch models.UserUpdate) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(r.db.tables.users, userID, patch, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, ErrEmptyPatch) {
			log.Err(err).Str("func", "userRepository.Update").Msg("failed to create query")
			err = fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Update").Str("user_id", userID).Msg("failed to update user")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return 0, ErrUserAlreadyExists
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// Delete removes the identified record and returns the affected-row count.
func (r *userRepository) Delete(ctx context.Context, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.db.tables.users, sq.Eq{"user_id": userID})
	if err != nil {
		log.Err(err).Str("func", "userRepository.Delete").Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Delete").Str("user_id", userID).Msg("failed to delete user")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

func (r *userRepository) getOne(ctx context.Context, fn string, filter sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(r.db.tables.users, filter)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to create query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := r.scanUserRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", fn).Msg("failed to scan user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) scanUserRow(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PhoneNumber,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.ExternalAuthID,
		&user.CreatedAt,
		&user.LastUpdatedAt,
	)
	return user, err
}
