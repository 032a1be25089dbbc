package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/internal/utils"
	"github.com/avelara/go-todo-keeper/models"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var draft models.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	created, err := h.services.UserService.Create(ctx, draft)
	if err != nil {
		h.writeError(w, r, err, "error creating user")
		return
	}

	log.Debug().Str("user_id", created.UserID).Msg("user created")

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := h.services.UserService.Get(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "error getting user")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "userID")

	var patch models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updated, err := h.services.UserService.Update(r.Context(), userID, patch)
	if err != nil {
		h.writeError(w, r, err, "error updating user")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.services.UserService.Delete(r.Context(), userID); err != nil {
		h.writeError(w, r, err, "error deleting user")
		return
	}

	utils.WriteJSON(w, models.Message{Message: "user deleted"}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	user, ok, err := h.services.UserService.Authenticate(ctx, credentials)
	if err != nil {
		h.writeError(w, r, err, "error authenticating user")
		return
	}
	if !ok {
		// unknown username and wrong password render the same answer
		log.Debug().Str("username", credentials.Username).Msg("invalid login/password")
		http.Error(w, "invalid login/password", http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) externalAuth(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var criteria models.UserCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	authenticated, err := h.services.UserService.ExternalAuthenticate(r.Context(), criteria)
	if err != nil {
		h.writeError(w, r, err, "error checking external auth linkage")
		return
	}

	utils.WriteJSON(w, models.AuthConfirmation{Authenticated: authenticated}, http.StatusOK)
}

func (h *Handler) getUserByExternalAuthID(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "externalID")

	user, err := h.services.UserService.GetByExternalAuthID(r.Context(), externalID)
	if err != nil {
		h.writeError(w, r, err, "error getting user by external auth id")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
