package service

import (
	"context"

	"github.com/avelara/go-todo-keeper/models"
)

// UserService owns user identity records: existence checks, account CRUD and
// credential verification.
type UserService interface {
	// Exists reports whether ANY supplied criteria field matches ANY stored
	// user. Empty criteria yield false without querying.
	Exists(ctx context.Context, criteria models.UserCriteria) (bool, error)

	Create(ctx context.Context, draft models.UserCreate) (models.UserView, error)
	Get(ctx context.Context, userID string) (models.UserView, error)
	Update(ctx context.Context, userID string, patch models.UserUpdate) (models.UserView, error)
	Delete(ctx context.Context, userID string) error

	// Authenticate verifies a username/password pair. A bad username or a
	// password mismatch yields ok=false, never an error, so callers can
	// render uniform invalid-login responses.
	Authenticate(ctx context.Context, credentials models.Credentials) (models.UserView, bool, error)

	// ExternalAuthenticate confirms that some user matches the OR-criteria.
	// Returns [ErrUserNotFound] when nothing matches.
	ExternalAuthenticate(ctx context.Context, criteria models.UserCriteria) (bool, error)

	GetByExternalAuthID(ctx context.Context, externalAuthID string) (models.UserView, error)
}

// ListService owns list records including their version counter, visibility
// and share token.
type ListService interface {
	// Exists matches by list id when supplied, otherwise by the complete
	// (owner, name) pair. Anything less is [ErrInvalidArguments].
	Exists(ctx context.Context, criteria models.ListCriteria) (bool, error)

	Create(ctx context.Context, draft models.ListCreate) (models.List, error)
	Get(ctx context.Context, listID string) (models.List, error)
	Update(ctx context.Context, listID string, patch models.ListUpdate) (models.List, error)
	Delete(ctx context.Context, listID string) error

	ListByOwner(ctx context.Context, userID string) ([]models.List, error)

	// IncrementVersion advances the list version by exactly one. This is the
	// sole sanctioned version mutation.
	IncrementVersion(ctx context.Context, listID string) (models.List, error)

	// GetByShareToken resolves a share token and applies the visibility
	// authorization rules for the requesting user.
	GetByShareToken(ctx context.Context, shareToken, requesterID string) (models.List, error)
}

// TaskService owns task records scoped to (list id, list version) and drives
// the version-transition algorithms.
type TaskService interface {
	Create(ctx context.Context, draft models.TaskCreate) (models.Task, error)
	Get(ctx context.Context, taskID string) (models.Task, error)
	Update(ctx context.Context, userID, taskID string, patch models.TaskUpdate) (models.Task, error)
	Delete(ctx context.Context, taskID string) error

	ToggleCompletion(ctx context.Context, taskID string) (models.Task, error)
	TogglePriority(ctx context.Context, taskID string) (models.Task, error)
	ToggleRecurring(ctx context.Context, taskID string) (models.Task, error)

	// CurrentTasks returns the tasks at the list's live version.
	CurrentTasks(ctx context.Context, listID string) ([]models.Task, error)

	// TasksAtVersion is a point lookup into one fixed version in [0, current].
	TasksAtVersion(ctx context.Context, listID string, version int) ([]models.Task, error)

	// ClearList advances the version carrying forward only recurring tasks.
	ClearList(ctx context.Context, listID string) ([]models.Task, error)

	// RolloverList advances the version carrying forward recurring tasks and
	// tasks not yet complete.
	RolloverList(ctx context.Context, listID string) ([]models.Task, error)

	// VersionsOfList returns per-version task collections for each version
	// in [pageStart, pageEnd), ascending.
	VersionsOfList(ctx context.Context, listID string, pageStart, pageEnd int) ([][]models.Task, error)
}
