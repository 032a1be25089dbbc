package store

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avelara/go-todo-keeper/models"
)

// psql is the shared statement builder configured for PostgreSQL ($N)
// placeholders. All queries in this package are built through it; the
// persistence contract is exact-equality filters only, which map directly
// onto [sq.Eq] and [sq.Or].
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// tables holds the fully resolved table names used by the repositories.
// A deployment-specific prefix (e.g. "test_") is applied exactly once at
// construction instead of being re-derived per query.
type tables struct {
	users string
	lists string
	tasks string
}

func newTables(prefix string) tables {
	return tables{
		users: prefix + models.User{}.TableName(),
		lists: prefix + models.List{}.TableName(),
		tasks: prefix + models.Task{}.TableName(),
	}
}

var userColumns = []string{
	"user_id",
	"username",
	"email",
	"phone_number",
	"first_name",
	"last_name",
	"password_hash",
	"external_auth_id",
	"created_at",
	"last_updated_at",
}

var listColumns = []string{
	"list_id",
	"user_id",
	"list_name",
	"version",
	"visibility",
	"share_token",
	"created_at",
	"last_updated_at",
}

var taskColumns = []string{
	"task_id",
	"user_id",
	"list_id",
	"task_name",
	"description",
	"reminders",
	"is_complete",
	"is_priority",
	"is_recurring",
	"list_version",
	"created_at",
	"updated_at",
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(table string, user models.User) (string, []any, error) {
	return psql.Insert(table).
		Columns(userColumns...).
		Values(
			user.UserID,
			user.Username,
			user.Email,
			user.PhoneNumber,
			user.FirstName,
			user.LastName,
			user.PasswordHash,
			user.ExternalAuthID,
			user.CreatedAt,
			user.LastUpdatedAt,
		).
		ToSql()
}

func buildSelectUserQuery(table string, filter sq.Eq) (string, []any, error) {
	return psql.Select(userColumns...).
		From(table).
		Where(filter).
		ToSql()
}

// buildUserMatchQuery builds the OR-existence query: a user matches when ANY
// supplied criteria field equals the stored value. Criteria with no fields
// set are rejected with [ErrEmptyCriteria] before any SQL is produced.
func buildUserMatchQuery(table string, criteria models.UserCriteria) (string, []any, error) {
	conditions := sq.Or{}

	if criteria.Username != "" {
		conditions = append(conditions, sq.Eq{"username": criteria.Username})
	}
	if criteria.Email != "" {
		conditions = append(conditions, sq.Eq{"email": criteria.Email})
	}
	if criteria.PhoneNumber != "" {
		conditions = append(conditions, sq.Eq{"phone_number": criteria.PhoneNumber})
	}
	if criteria.UserID != "" {
		conditions = append(conditions, sq.Eq{"user_id": criteria.UserID})
	}
	if criteria.ExternalAuthID != "" {
		conditions = append(conditions, sq.Eq{"external_auth_id": criteria.ExternalAuthID})
	}

	if len(conditions) == 0 {
		return "", nil, ErrEmptyCriteria
	}

	return psql.Select(userColumns...).
		From(table).
		Where(conditions).
		Limit(1).
		ToSql()
}

func buildUpdateUserQuery(table, userID string, patch models.UserUpdate, now time.Time) (string, []any, error) {
	fields := map[string]any{}

	if patch.Username != nil {
		fields["username"] = *patch.Username
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.PhoneNumber != nil {
		fields["phone_number"] = *patch.PhoneNumber
	}
	if patch.FirstName != nil {
		fields["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		fields["last_name"] = *patch.LastName
	}
	if patch.ExternalAuthID != nil {
		fields["external_auth_id"] = *patch.ExternalAuthID
	}

	if len(fields) == 0 {
		return "", nil, ErrEmptyPatch
	}
	fields["last_updated_at"] = now

	return psql.Update(table).
		SetMap(fields).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// ── lists ─────────────────────────────────────────────────────────────────────

func buildInsertListQuery(table string, list models.List) (string, []any, error) {
	return psql.Insert(table).
		Columns(listColumns...).
		Values(
			list.ListID,
			list.UserID,
			list.ListName,
			list.Version,
			list.Visibility,
			list.ShareToken,
			list.CreatedAt,
			list.LastUpdatedAt,
		).
		ToSql()
}

func buildSelectListQuery(table string, filter sq.Eq) (string, []any, error) {
	return psql.Select(listColumns...).
		From(table).
		Where(filter).
		ToSql()
}

func buildUpdateListQuery(table, listID string, patch models.ListUpdate, now time.Time) (string, []any, error) {
	fields := map[string]any{}

	if patch.ListName != nil {
		fields["list_name"] = *patch.ListName
	}
	if patch.Visibility != nil {
		fields["visibility"] = *patch.Visibility
	}

	if len(fields) == 0 {
		return "", nil, ErrEmptyPatch
	}
	fields["last_updated_at"] = now

	return psql.Update(table).
		SetMap(fields).
		Where(sq.Eq{"list_id": listID}).
		ToSql()
}

// buildSetListVersionQuery builds the dedicated version write used by the
// increment operation. Generic list updates cannot touch the version column;
// this query is the only place it changes.
func buildSetListVersionQuery(table, listID string, version int, now time.Time) (string, []any, error) {
	return psql.Update(table).
		SetMap(map[string]any{
			"version":         version,
			"last_updated_at": now,
		}).
		Where(sq.Eq{"list_id": listID}).
		ToSql()
}

// ── tasks ─────────────────────────────────────────────────────────────────────

func buildInsertTaskQuery(table string, task models.Task) (string, []any, error) {
	reminders, err := json.Marshal(task.Reminders)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return psql.Insert(table).
		Columns(taskColumns...).
		Values(
			task.TaskID,
			task.UserID,
			task.ListID,
			task.TaskName,
			task.Description,
			reminders,
			task.IsComplete,
			task.IsPriority,
			task.IsRecurring,
			task.ListVersion,
			task.CreatedAt,
			task.UpdatedAt,
		).
		ToSql()
}

func buildSelectTaskQuery(table string, filter sq.Eq) (string, []any, error) {
	return psql.Select(taskColumns...).
		From(table).
		Where(filter).
		ToSql()
}

func buildUpdateTaskQuery(table, taskID string, patch models.TaskUpdate, now time.Time) (string, []any, error) {
	fields := map[string]any{}

	if patch.TaskName != nil {
		fields["task_name"] = *patch.TaskName
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Reminders != nil {
		reminders, err := json.Marshal(*patch.Reminders)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		fields["reminders"] = reminders
	}
	if patch.IsComplete != nil {
		fields["is_complete"] = *patch.IsComplete
	}
	if patch.IsPriority != nil {
		fields["is_priority"] = *patch.IsPriority
	}
	if patch.IsRecurring != nil {
		fields["is_recurring"] = *patch.IsRecurring
	}

	if len(fields) == 0 {
		return "", nil, ErrEmptyPatch
	}
	fields["updated_at"] = now

	return psql.Update(table).
		SetMap(fields).
		Where(sq.Eq{"task_id": taskID}).
		ToSql()
}

// ── shared ────────────────────────────────────────────────────────────────────

func buildDeleteQuery(table string, filter sq.Eq) (string, []any, error) {
	return psql.Delete(table).
		Where(filter).
		ToSql()
}
