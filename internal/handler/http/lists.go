package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/internal/utils"
	"github.com/avelara/go-todo-keeper/models"
)

func (h *Handler) createList(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var draft models.ListCreate
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.ListService.Create(r.Context(), draft)
	if err != nil {
		h.writeError(w, r, err, "error creating list")
		return
	}

	log.Debug().Str("list_id", created.ListID).Msg("list created")

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	list, err := h.services.ListService.Get(r.Context(), listID)
	if err != nil {
		h.writeError(w, r, err, "error getting list")
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) updateList(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	listID := chi.URLParam(r, "listID")

	var patch models.ListUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.ListService.Update(r.Context(), listID, patch)
	if err != nil {
		h.writeError(w, r, err, "error updating list")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) incrementListVersion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	listID := chi.URLParam(r, "listID")

	advanced, err := h.services.ListService.IncrementVersion(r.Context(), listID)
	if err != nil {
		h.writeError(w, r, err, "error incrementing list version")
		return
	}

	log.Debug().Str("list_id", listID).Int("version", advanced.Version).Msg("list version incremented")

	utils.WriteJSON(w, advanced, http.StatusOK)
}

func (h *Handler) deleteList(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")

	if err := h.services.ListService.Delete(r.Context(), listID); err != nil {
		h.writeError(w, r, err, "error deleting list")
		return
	}

	utils.WriteJSON(w, models.Message{Message: "list deleted"}, http.StatusOK)
}

func (h *Handler) listsByOwner(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	lists, err := h.services.ListService.ListByOwner(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "error getting lists by owner")
		return
	}

	utils.WriteJSON(w, lists, http.StatusOK)
}

func (h *Handler) getSharedList(w http.ResponseWriter, r *http.Request) {
	shareToken := chi.URLParam(r, "shareToken")
	requesterID := r.URL.Query().Get("requester_id")

	list, err := h.services.ListService.GetByShareToken(r.Context(), shareToken, requesterID)
	if err != nil {
		h.writeError(w, r, err, "error resolving shared list")
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}
