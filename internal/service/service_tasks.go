package service

import (
	"context"
	"errors"
	"time"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/internal/store"
	"github.com/avelara/go-todo-keeper/internal/utils"
	"github.com/avelara/go-todo-keeper/models"
)

// taskService drives the task lifecycle and the version-transition
// algorithms. The list service stays the single authority on a list's
// current version; no version number is cached here.
type taskService struct {
	tasks store.TaskRepository
	users UserService
	lists ListService
	ids   *utils.UUIDGenerator

	logger *logger.Logger
}

func NewTaskService(tasks store.TaskRepository, users UserService, lists ListService, logger *logger.Logger) TaskService {
	return &taskService{
		tasks:  tasks,
		users:  users,
		lists:  lists,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// Create stores a new task after confirming the referenced user and list
// exist. Completion always starts false and the draft's list version is
// persisted exactly as given; the caller supplies the version it targets.
func (s *taskService) Create(ctx context.Context, draft models.TaskCreate) (models.Task, error) {
	log := logger.FromContext(ctx)

	userExists, err := s.users.Exists(ctx, models.UserCriteria{UserID: draft.UserID})
	if err != nil {
		return models.Task{}, err
	}
	if !userExists {
		return models.Task{}, ErrUserNotFound
	}

	listExists, err := s.lists.Exists(ctx, models.ListCriteria{ListID: draft.ListID})
	if err != nil {
		return models.Task{}, err
	}
	if !listExists {
		return models.Task{}, ErrListNotFound
	}

	now := time.Now().UTC()
	task := models.Task{
		TaskID:      s.ids.Generate(),
		UserID:      draft.UserID,
		ListID:      draft.ListID,
		TaskName:    draft.TaskName,
		Description: draft.Description,
		Reminders:   draft.Reminders,
		IsComplete:  false,
		IsPriority:  draft.IsPriority,
		IsRecurring: draft.IsRecurring,
		ListVersion: draft.ListVersion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Reminders == nil {
		task.Reminders = []time.Time{}
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		log.Err(err).Str("func", "taskService.Create").Str("list_id", draft.ListID).Msg("failed to create task")
		return models.Task{}, err
	}

	return created, nil
}

// Get fetches a single task by id.
func (s *taskService) Get(ctx context.Context, taskID string) (models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// Update applies the set fields of patch to the identified task and
// refreshes updatedAt, returning the refreshed task. The acting user and the
// task must both exist before the patch is inspected, so an empty patch
// against a missing task reports not-found.
func (s *taskService) Update(ctx context.Context, userID, taskID string, patch models.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	userExists, err := s.users.Exists(ctx, models.UserCriteria{UserID: userID})
	if err != nil {
		return models.Task{}, err
	}
	if !userExists {
		return models.Task{}, ErrUserNotFound
	}

	if _, err := s.Get(ctx, taskID); err != nil {
		return models.Task{}, err
	}

	if !patch.HasFields() {
		return models.Task{}, ErrNoFieldsToUpdate
	}

	affected, err := s.tasks.Update(ctx, taskID, patch)
	if err != nil {
		log.Err(err).Str("func", "taskService.Update").Str("task_id", taskID).Msg("failed to update task")
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	return s.Get(ctx, taskID)
}

// Delete removes the task record. A zero-affected remove after the task was
// seen is reported as [ErrDeleteFailed].
func (s *taskService) Delete(ctx context.Context, taskID string) error {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, taskID); err != nil {
		return err
	}

	affected, err := s.tasks.Delete(ctx, taskID)
	if err != nil {
		log.Err(err).Str("func", "taskService.Delete").Str("task_id", taskID).Msg("failed to delete task")
		return err
	}
	if affected == 0 {
		return ErrDeleteFailed
	}

	return nil
}

// ToggleCompletion flips the completion flag and returns the refreshed task.
func (s *taskService) ToggleCompletion(ctx context.Context, taskID string) (models.Task, error) {
	return s.toggle(ctx, taskID, func(task models.Task, patch *models.TaskUpdate) {
		flipped := !task.IsComplete
		patch.IsComplete = &flipped
	})
}

// TogglePriority flips the priority flag and returns the refreshed task.
func (s *taskService) TogglePriority(ctx context.Context, taskID string) (models.Task, error) {
	return s.toggle(ctx, taskID, func(task models.Task, patch *models.TaskUpdate) {
		flipped := !task.IsPriority
		patch.IsPriority = &flipped
	})
}

// ToggleRecurring flips the recurring flag and returns the refreshed task.
func (s *taskService) ToggleRecurring(ctx context.Context, taskID string) (models.Task, error) {
	return s.toggle(ctx, taskID, func(task models.Task, patch *models.TaskUpdate) {
		flipped := !task.IsRecurring
		patch.IsRecurring = &flipped
	})
}

// toggle fetches the task, flips exactly one flag through flip, and persists
// the single-field patch. Errors propagate as-is; a toggle either fully
// succeeds or fails with a specific kind.
func (s *taskService) toggle(ctx context.Context, taskID string, flip func(models.Task, *models.TaskUpdate)) (models.Task, error) {
	log := logger.FromContext(ctx)

	task, err := s.Get(ctx, taskID)
	if err != nil {
		return models.Task{}, err
	}

	var patch models.TaskUpdate
	flip(task, &patch)

	affected, err := s.tasks.Update(ctx, taskID, patch)
	if err != nil {
		log.Err(err).Str("func", "taskService.toggle").Str("task_id", taskID).Msg("failed to persist flag flip")
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	return s.Get(ctx, taskID)
}

// CurrentTasks reads the list's live version and returns the tasks bound to
// it. This is the authoritative "what does the user see right now" query.
func (s *taskService) CurrentTasks(ctx context.Context, listID string) ([]models.Task, error) {
	list, err := s.lists.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	return s.tasks.GetByListAndVersion(ctx, listID, list.Version)
}

// TasksAtVersion returns the tasks at one fixed version of the list. Any
// version in [0, current] is queryable as immutable history.
func (s *taskService) TasksAtVersion(ctx context.Context, listID string, version int) ([]models.Task, error) {
	list, err := s.lists.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	if version < 0 || version > list.Version {
		return nil, ErrInvalidVersion
	}

	return s.tasks.GetByListAndVersion(ctx, listID, version)
}

// duplicateForward copies a task onto a new list version through Create:
// the duplicate keeps the source's name, priority and recurrence, starts
// incomplete, and its reminders are reset since they were consumed on the
// old version.
func (s *taskService) duplicateForward(ctx context.Context, task models.Task, newVersion int) (models.Task, error) {
	return s.Create(ctx, models.TaskCreate{
		UserID:      task.UserID,
		ListID:      task.ListID,
		TaskName:    task.TaskName,
		Reminders:   []time.Time{},
		IsPriority:  task.IsPriority,
		IsRecurring: task.IsRecurring,
		ListVersion: newVersion,
	})
}

// ClearList advances the list to a fresh version, carrying forward only
// recurring tasks. Everything else is retired in place as history at the
// old version.
func (s *taskService) ClearList(ctx context.Context, listID string) ([]models.Task, error) {
	return s.transition(ctx, listID, func(task models.Task) bool {
		return task.IsRecurring
	})
}

// RolloverList advances the list to a fresh version, carrying forward
// recurring tasks and tasks not yet complete. Only tasks that are both
// non-recurring and complete are retired.
func (s *taskService) RolloverList(ctx context.Context, listID string) ([]models.Task, error) {
	return s.transition(ctx, listID, func(task models.Task) bool {
		return task.IsRecurring || !task.IsComplete
	})
}

// transition runs a version transition: snapshot the current tasks, advance
// the version, then duplicate forward every task passing carryForward. The
// increment is committed before any duplicate is written so copies always
// land on the new version. An empty list is never transitioned.
func (s *taskService) transition(ctx context.Context, listID string, carryForward func(models.Task) bool) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	current, err := s.CurrentTasks(ctx, listID)
	if err != nil {
		return nil, err
	}
	if len(current) == 0 {
		return nil, ErrNoTasksToRemove
	}

	advanced, err := s.lists.IncrementVersion(ctx, listID)
	if err != nil {
		return nil, err
	}

	for _, task := range current {
		if !carryForward(task) {
			continue
		}
		if _, err := s.duplicateForward(ctx, task, advanced.Version); err != nil {
			log.Err(err).
				Str("func", "taskService.transition").
				Str("list_id", listID).
				Str("task_id", task.TaskID).
				Int("version", advanced.Version).
				Msg("failed to duplicate task onto new version")
			return nil, err
		}
	}

	return s.CurrentTasks(ctx, listID)
}

// VersionsOfList returns the task collections for each version in
// [pageStart, pageEnd), ascending. Both bounds are validated against the
// list's current version.
func (s *taskService) VersionsOfList(ctx context.Context, listID string, pageStart, pageEnd int) ([][]models.Task, error) {
	list, err := s.lists.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	if pageStart < 0 || pageStart > list.Version {
		return nil, ErrInvalidVersion
	}
	if pageEnd < pageStart || pageEnd > list.Version+1 {
		return nil, ErrInvalidVersion
	}

	versions := make([][]models.Task, 0, pageEnd-pageStart)
	for page := pageStart; page < pageEnd; page++ {
		tasks, err := s.tasks.GetByListAndVersion(ctx, listID, page)
		if err != nil {
			return nil, err
		}
		versions = append(versions, tasks)
	}

	return versions, nil
}
