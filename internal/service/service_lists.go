package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelara/go-todo-keeper/internal/logger"
	"github.com/avelara/go-todo-keeper/internal/store"
	"github.com/avelara/go-todo-keeper/internal/utils"
	"github.com/avelara/go-todo-keeper/models"
)

type listService struct {
	lists store.ListRepository
	users UserService
	ids   *utils.UUIDGenerator

	logger *logger.Logger
}

func NewListService(lists store.ListRepository, users UserService, logger *logger.Logger) ListService {
	return &listService{
		lists:  lists,
		users:  users,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// Exists matches by list id when supplied; the (owner, name) pair is
// consulted only when the id is absent. An incomplete pair without an id is
// rejected with [ErrInvalidArguments].
func (s *listService) Exists(ctx context.Context, criteria models.ListCriteria) (bool, error) {
	switch {
	case criteria.ListID != "":
		_, err := s.lists.GetByID(ctx, criteria.ListID)
		if err != nil {
			if errors.Is(err, store.ErrListNotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil

	case criteria.UserID != "" && criteria.ListName != "":
		_, err := s.lists.GetByOwnerAndName(ctx, criteria.UserID, criteria.ListName)
		if err != nil {
			if errors.Is(err, store.ErrListNotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil

	default:
		return false, ErrInvalidArguments
	}
}

// Create stores a new list at version 1 with PRIVATE visibility and a fresh
// crypto-random share token. The owner is recorded as given and is not
// required to exist yet.
func (s *listService) Create(ctx context.Context, draft models.ListCreate) (models.List, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateShareToken(models.ShareTokenBytes)
	if err != nil {
		log.Err(err).Str("func", "listService.Create").Msg("failed to generate share token")
		return models.List{}, fmt.Errorf("generating share token: %w", err)
	}

	now := time.Now().UTC()
	list := models.List{
		ListID:        s.ids.Generate(),
		UserID:        draft.UserID,
		ListName:      draft.ListName,
		Version:       1,
		Visibility:    models.VisibilityPrivate,
		ShareToken:    token,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	created, err := s.lists.Create(ctx, list)
	if err != nil {
		log.Err(err).Str("func", "listService.Create").Msg("failed to create list")
		return models.List{}, err
	}

	return created, nil
}

// Get fetches a single list by id.
func (s *listService) Get(ctx context.Context, listID string) (models.List, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return models.List{}, ErrListNotFound
		}
		return models.List{}, err
	}
	return list, nil
}

// Update applies the writable fields of patch and refreshes last_updated_at.
// The list must exist before the patch is inspected, so not-found takes
// precedence over every patch-shape complaint. A patch carrying a version
// value is then rejected outright; the version advances only through
// IncrementVersion.
func (s *listService) Update(ctx context.Context, listID string, patch models.ListUpdate) (models.List, error) {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, listID); err != nil {
		return models.List{}, err
	}

	if patch.Version != nil {
		return models.List{}, ErrVersionImmutable
	}
	if !patch.HasFields() {
		return models.List{}, ErrNoFieldsToUpdate
	}
	if patch.Visibility != nil && !patch.Visibility.Valid() {
		return models.List{}, ErrInvalidVisibility
	}

	affected, err := s.lists.Update(ctx, listID, patch)
	if err != nil {
		log.Err(err).Str("func", "listService.Update").Str("list_id", listID).Msg("failed to update list")
		return models.List{}, err
	}
	if affected == 0 {
		return models.List{}, ErrListNotFound
	}

	return s.Get(ctx, listID)
}

// Delete removes the list record. A zero-affected remove after the list was
// seen is reported as [ErrDeleteFailed].
func (s *listService) Delete(ctx context.Context, listID string) error {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, listID); err != nil {
		return err
	}

	affected, err := s.lists.Delete(ctx, listID)
	if err != nil {
		log.Err(err).Str("func", "listService.Delete").Str("list_id", listID).Msg("failed to delete list")
		return err
	}
	if affected == 0 {
		return ErrDeleteFailed
	}

	return nil
}

// ListByOwner returns every list owned by the given user, order unspecified.
func (s *listService) ListByOwner(ctx context.Context, userID string) ([]models.List, error) {
	ok, err := s.users.Exists(ctx, models.UserCriteria{UserID: userID})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	return s.lists.GetAllByOwner(ctx, userID)
}

// IncrementVersion advances the list version by exactly one and returns the
// refreshed list. No other code path writes the version column.
func (s *listService) IncrementVersion(ctx context.Context, listID string) (models.List, error) {
	log := logger.FromContext(ctx)

	current, err := s.Get(ctx, listID)
	if err != nil {
		return models.List{}, err
	}

	affected, err := s.lists.SetVersion(ctx, listID, current.Version+1)
	if err != nil {
		log.Err(err).
			Str("func", "listService.IncrementVersion").
			Str("list_id", listID).
			Int("version", current.Version+1).
			Msg("failed to advance list version")
		return models.List{}, err
	}
	if affected == 0 {
		return models.List{}, ErrListNotFound
	}

	return s.Get(ctx, listID)
}

// GetByShareToken is the authorization gate for shared access. The owner
// always passes; other requesters pass by visibility: PRIVATE never,
// ORGANIZATION_ONLY when the email domains match, PUBLIC always.
func (s *listService) GetByShareToken(ctx context.Context, shareToken, requesterID string) (models.List, error) {
	list, err := s.lists.GetByShareToken(ctx, shareToken)
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return models.List{}, ErrListNotFound
		}
		return models.List{}, err
	}

	owner, err := s.users.Get(ctx, list.UserID)
	if err != nil {
		return models.List{}, err
	}
	requester, err := s.users.Get(ctx, requesterID)
	if err != nil {
		return models.List{}, err
	}

	if requester.UserID == owner.UserID {
		return list, nil
	}

	switch list.Visibility {
	case models.VisibilityPrivate:
		return models.List{}, ErrListAccessDenied

	case models.VisibilityOrganizationOnly:
		if owner.Domain() != requester.Domain() {
			return models.List{}, ErrListAccessDenied
		}
		return list, nil

	default: // PUBLIC
		return list, nil
	}
}
