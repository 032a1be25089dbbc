package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/avelara/go-todo-keeper/models"
)

// UserRepository persists user account records. Update and Delete return the
// number of affected rows so callers can distinguish a no-op from a write.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByExternalAuthID(ctx context.Context, externalAuthID string) (models.User, error)

	// Match reports whether any stored user matches ANY non-empty field of
	// the criteria. Empty criteria yield [ErrEmptyCriteria].
	Match(ctx context.Context, criteria models.UserCriteria) (models.User, bool, error)

	Update(ctx context.Context, userID string, patch models.UserUpdate) (int64, error)
	Delete(ctx context.Context, userID string) (int64, error)
}

// ListRepository persists to-do list records. The version column is writable
// only through SetVersion; Update carries no version field at the type level.
type ListRepository interface {
	Create(ctx context.Context, list models.List) (models.List, error)
	GetByID(ctx context.Context, listID string) (models.List, error)
	GetByOwnerAndName(ctx context.Context, userID, listName string) (models.List, error)
	GetByShareToken(ctx context.Context, shareToken string) (models.List, error)
	GetAllByOwner(ctx context.Context, userID string) ([]models.List, error)

	Update(ctx context.Context, listID string, patch models.ListUpdate) (int64, error)
	SetVersion(ctx context.Context, listID string, version int) (int64, error)
	Delete(ctx context.Context, listID string) (int64, error)
}

// TaskRepository persists task records. Tasks are scoped to one list version
// for their whole lifetime; version-scoped reads go through GetByListAndVersion.
type TaskRepository interface {
	Create(ctx context.Context, task models.Task) (models.Task, error)
	GetByID(ctx context.Context, taskID string) (models.Task, error)
	GetByListAndVersion(ctx context.Context, listID string, version int) ([]models.Task, error)

	Update(ctx context.Context, taskID string, patch models.TaskUpdate) (int64, error)
	Delete(ctx context.Context, taskID string) (int64, error)
}
