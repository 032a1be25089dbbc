package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when an INSERT into the users table
	// violates one of the unique indexes (username, email, phone_number).
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrListNotFound is returned when a query expected to match a list
	// record produces an empty result set.
	ErrListNotFound = errors.New("list was not found")

	// ErrTaskNotFound is returned when a query expected to match a task
	// record produces an empty result set.
	ErrTaskNotFound = errors.New("task was not found")

	// ErrEmptyCriteria is returned when a match query is built from criteria
	// with no fields set; such a query would otherwise match nothing or
	// everything depending on construction, so it is rejected outright.
	ErrEmptyCriteria = errors.New("no match criteria provided")

	// ErrEmptyPatch is returned when an UPDATE is requested with a patch
	// that sets no columns.
	ErrEmptyPatch = errors.New("no fields in update patch")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
