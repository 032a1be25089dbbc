package http

import (
	"errors"
	"net/http"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/internal/service"
	"github.com/avelara/go-todo-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrUserNotFound: http.StatusNotFound,
	service.ErrListNotFound: http.StatusNotFound,
	service.ErrTaskNotFound: http.StatusNotFound,

	service.ErrUserAlreadyExists: http.StatusConflict,

	service.ErrNoFieldsToUpdate:  http.StatusBadRequest,
	service.ErrInvalidArguments:  http.StatusBadRequest,
	service.ErrInvalidVersion:    http.StatusBadRequest,
	service.ErrInvalidVisibility: http.StatusBadRequest,
	service.ErrInvalidEmail:      http.StatusBadRequest,
	service.ErrVersionImmutable:  http.StatusBadRequest,
	service.ErrNoTasksToRemove:   http.StatusBadRequest,

	service.ErrListAccessDenied: http.StatusForbidden,

	service.ErrDeleteFailed: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and renders it with the status from errorStatusMap.
// Internal failures get the generic status text so storage details never
// reach the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	log.Err(err).Msg(msg)

	status := statusFromError(err)
	body := err.Error()
	if status == http.StatusInternalServerError {
		body = http.StatusText(http.StatusInternalServerError)
	}
	http.Error(w, body, status)
}
