package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/internal/utils"
	"github.com/avelara/go-todo-keeper/models"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var draft models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.TaskService.Create(r.Context(), draft)
	if err != nil {
		h.writeError(w, r, err, "error creating task")
		return
	}

	log.Debug().Str("task_id", created.TaskID).Msg("task created")

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	task, err := h.services.TaskService.Get(r.Context(), taskID)
	if err != nil {
		h.writeError(w, r, err, "error getting task")
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

// taskUpdateRequest pairs the acting user with the partial update so the
// core can confirm the user exists before touching the task.
type taskUpdateRequest struct {
	UserID string `json:"user_id"`
	models.TaskUpdate
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	taskID := chi.URLParam(r, "taskID")

	var req taskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.TaskService.Update(r.Context(), req.UserID, taskID, req.TaskUpdate)
	if err != nil {
		h.writeError(w, r, err, "error updating task")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	if err := h.services.TaskService.Delete(r.Context(), taskID); err != nil {
		h.writeError(w, r, err, "error deleting task")
		return
	}

	utils.WriteJSON(w, models.Message{Message: "task deleted"}, http.StatusOK)
}

func (h *Handler) toggleCompletion(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.services.TaskService.ToggleCompletion, "error toggling task completion")
}

func (h *Handler) togglePriority(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.services.TaskService.TogglePriority, "error toggling task priority")
}

func (h *Handler) toggleRecurring(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.services.TaskService.ToggleRecurring, "error toggling task recurrence")
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, flip func(ctx context.Context, taskID string) (models.Task, error), msg string) {
	taskID := chi.URLParam(r, "taskID")

	toggled, err := flip(r.Context(), taskID)
	if err != nil {
		h.writeError(w, r, err, msg)
		return
	}

	utils.WriteJSON(w, toggled, http.StatusOK)
}

func (h *Handler) currentTasks(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	tasks, err := h.services.TaskService.CurrentTasks(r.Context(), listID)
	if err != nil {
		h.writeError(w, r, err, "error getting current tasks")
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) tasksAtVersion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	listID := chi.URLParam(r, "listID")

	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil {
		log.Err(err).Msg("version url param is not a number")
		http.Error(w, "version must be a number", http.StatusBadRequest)
		return
	}

	tasks, err := h.services.TaskService.TasksAtVersion(r.Context(), listID, version)
	if err != nil {
		h.writeError(w, r, err, "error getting tasks at version")
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	pageStart, ok := queryInt(w, r, "page_start", 0)
	if !ok {
		return
	}

	// an absent page_end means the whole remaining history, which requires
	// the list's live version to bound the range
	pageEnd, hasEnd := -1, r.URL.Query().Has("page_end")
	if hasEnd {
		if pageEnd, ok = queryInt(w, r, "page_end", 0); !ok {
			return
		}
	} else {
		list, err := h.services.ListService.Get(r.Context(), listID)
		if err != nil {
			h.writeError(w, r, err, "error getting list history")
			return
		}
		pageEnd = list.Version + 1
	}

	pages, err := h.services.TaskService.VersionsOfList(r.Context(), listID, pageStart, pageEnd)
	if err != nil {
		h.writeError(w, r, err, "error getting list history")
		return
	}

	utils.WriteJSON(w, pages, http.StatusOK)
}

func (h *Handler) clearList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	tasks, err := h.services.TaskService.ClearList(r.Context(), listID)
	if err != nil {
		h.writeError(w, r, err, "error clearing list")
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) rolloverList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	tasks, err := h.services.TaskService.RolloverList(r.Context(), listID)
	if err != nil {
		h.writeError(w, r, err, "error rolling over list")
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

// queryInt reads an optional integer query parameter, falling back to def
// when the parameter is absent. A non-numeric value renders a 400 and
// reports ok=false.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("param", name).Msg("query param is not a number")
		http.Error(w, name+" must be a number", http.StatusBadRequest)
		return 0, false
	}
	return value, true
}
