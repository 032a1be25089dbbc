package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelara/go-todo-keeper/internal/service"
	"github.com/avelara/go-todo-keeper/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: service.ErrUserNotFound, want: http.StatusNotFound},
		{err: service.ErrListNotFound, want: http.StatusNotFound},
		{err: service.ErrTaskNotFound, want: http.StatusNotFound},
		{err: service.ErrUserAlreadyExists, want: http.StatusConflict},
		{err: service.ErrNoFieldsToUpdate, want: http.StatusBadRequest},
		{err: service.ErrInvalidArguments, want: http.StatusBadRequest},
		{err: service.ErrInvalidVersion, want: http.StatusBadRequest},
		{err: service.ErrInvalidVisibility, want: http.StatusBadRequest},
		{err: service.ErrInvalidEmail, want: http.StatusBadRequest},
		{err: service.ErrVersionImmutable, want: http.StatusBadRequest},
		{err: service.ErrNoTasksToRemove, want: http.StatusBadRequest},
		{err: service.ErrListAccessDenied, want: http.StatusForbidden},
		{err: service.ErrDeleteFailed, want: http.StatusInternalServerError},
		{err: store.ErrExecutingQuery, want: http.StatusInternalServerError},
		{err: errTest, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestStatusFromError_MatchesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("while handling request: %w", service.ErrListAccessDenied)

	assert.Equal(t, http.StatusForbidden, statusFromError(wrapped))
}
