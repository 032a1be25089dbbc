package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/models"
)

func newTestTaskRepo(t *testing.T) (*taskRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &taskRepository{
		db:     &DB{DB: db, tables: newTables(""), logger: l},
		logger: l,
	}
	return repo, mock, db
}

func taskRows(t *testing.T, tasks ...models.Task) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows(taskColumns)
	for _, task := range tasks {
		reminders, err := json.Marshal(task.Reminders)
		if err != nil {
			t.Fatalf("failed to encode reminders: %v", err)
		}
		rows.AddRow(
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
		)
	}
	return rows
}

func TestTaskRepositoryCreate_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	task := models.Task{
		TaskID:      "task-1",
		UserID:      "user-1",
		ListID:      "list-1",
		TaskName:    "water plants",
		Reminders:   []time.Time{time.Now().Add(time.Hour)},
		ListVersion: 1,
	}

	mock.ExpectExec("INSERT INTO tasks").
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ListVersion != 1 {
		t.Errorf("expected list_version 1, got %d", created.ListVersion)
	}
}

func TestTaskRepositoryGetByID_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	reminder := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	stored := models.Task{
		TaskID:      "task-1",
		UserID:      "user-1",
		ListID:      "list-1",
		TaskName:    "water plants",
		Reminders:   []time.Time{reminder},
		IsRecurring: true,
		ListVersion: 2,
	}

	mock.ExpectQuery("SELECT .+ FROM tasks").
		WithArgs("task-1").
		WillReturnRows(taskRows(t, stored))

	found, err := repo.GetByID(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found.Reminders) != 1 || !found.Reminders[0].Equal(reminder) {
		t.Errorf("expected decoded reminder %v, got %v", reminder, found.Reminders)
	}
	if !found.IsRecurring {
		t.Error("expected recurring flag to survive the round trip")
	}
}

func TestTaskRepositoryGetByID_NotFound(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM tasks").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskRepositoryGetByListAndVersion_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM tasks").
		WillReturnRows(taskRows(t,
			models.Task{TaskID: "task-1", ListID: "list-1", ListVersion: 2},
			models.Task{TaskID: "task-2", ListID: "list-1", ListVersion: 2, IsComplete: true},
		))

	tasks, err := repo.GetByListAndVersion(context.Background(), "list-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if !tasks[1].IsComplete {
		t.Error("expected second task to be complete")
	}
}

func TestTaskRepositoryGetByListAndVersion_EmptyVersion(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM tasks").
		WillReturnRows(taskRows(t))

	tasks, err := repo.GetByListAndVersion(context.Background(), "list-1", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty slice, got %d tasks", len(tasks))
	}
}

func TestTaskRepositoryGetByListAndVersion_QueryError(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM tasks").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByListAndVersion(context.Background(), "list-1", 1)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestTaskRepositoryUpdate_Success(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	complete := true

	mock.ExpectExec("UPDATE tasks").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Update(context.Background(), "task-1", models.TaskUpdate{IsComplete: &complete})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 affected row, got %d", affected)
	}
}

func TestTaskRepositoryUpdate_EmptyPatch(t *testing.T) {
	repo, _, db := newTestTaskRepo(t)
	defer db.Close()

	_, err := repo.Update(context.Background(), "task-1", models.TaskUpdate{})
	if !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}
}

func TestTaskRepositoryDelete_ReportsAffectedRows(t *testing.T) {
	repo, mock, db := newTestTaskRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs("task-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 affected row, got %d", affected)
	}
}
