package service

import "errors"

// Sentinel errors surfaced by the core services. The HTTP layer translates
// these to response statuses; match with [errors.Is].
var (
	ErrUserNotFound = errors.New("user was not found")
	ErrListNotFound = errors.New("list was not found")
	ErrTaskNotFound = errors.New("task was not found")

	// ErrUserAlreadyExists signals a collision on one of the unique user
	// fields (username, email, phone number) at creation or update.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrNoFieldsToUpdate signals an update call whose patch sets nothing.
	ErrNoFieldsToUpdate = errors.New("no fields provided to update")

	// ErrInvalidArguments signals a query with an insufficient or ambiguous
	// parameter combination.
	ErrInvalidArguments = errors.New("invalid arguments provided")

	// ErrInvalidVersion signals a history query outside the valid
	// [0, current] version range.
	ErrInvalidVersion = errors.New("requested version is invalid")

	// ErrListAccessDenied signals a share-token read blocked by the list's
	// visibility rules.
	ErrListAccessDenied = errors.New("access to list denied")

	// ErrDeleteFailed signals a remove that affected zero records where
	// exactly one was required.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrNoTasksToRemove signals a version transition attempted on a list
	// with no current tasks.
	ErrNoTasksToRemove = errors.New("no tasks to remove in list")

	// ErrInvalidVisibility signals a list update carrying a visibility value
	// outside the defined enum.
	ErrInvalidVisibility = errors.New("invalid visibility value")

	// ErrInvalidEmail signals a user draft whose email fails the syntactic
	// check.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrVersionImmutable signals an attempt to write a list's version
	// through the generic update path. The version advances only through
	// the increment operation.
	ErrVersionImmutable = errors.New("list version cannot be set directly")
)
