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

type userService struct {
	users store.UserRepository
	ids   *utils.UUIDGenerator

	logger *logger.Logger
}

func NewUserService(users store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		users:  users,
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// Exists reports whether any stored user matches any supplied criteria
// field. Empty criteria short-circuit to false without touching the store.
func (s *userService) Exists(ctx context.Context, criteria models.UserCriteria) (bool, error) {
	if criteria.Empty() {
		return false, nil
	}

	_, ok, err := s.users.Match(ctx, criteria)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Create registers a new account. The draft's email must be syntactically
// valid and none of the unique fields may collide with a stored user. The
// plaintext password is hashed before the record is persisted.
func (s *userService) Create(ctx context.Context, draft models.UserCreate) (models.UserView, error) {
	log := logger.FromContext(ctx)

	if err := draft.Validate(); err != nil {
		return models.UserView{}, ErrInvalidEmail
	}

	taken, err := s.Exists(ctx, models.UserCriteria{
		Username:    draft.Username,
		Email:       draft.Email,
		PhoneNumber: draft.PhoneNumber,
	})
	if err != nil {
		log.Err(err).Str("func", "userService.Create").Msg("failed to check user uniqueness")
		return models.UserView{}, err
	}
	if taken {
		return models.UserView{}, ErrUserAlreadyExists
	}

	hash, err := utils.HashPassword(draft.Password)
	if err != nil {
		log.Err(err).Str("func", "userService.Create").Msg("failed to hash password")
		return models.UserView{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := models.User{
		UserID:         s.ids.Generate(),
		Username:       draft.Username,
		Email:          draft.Email,
		PhoneNumber:    draft.PhoneNumber,
		FirstName:      draft.FirstName,
		LastName:       draft.LastName,
		PasswordHash:   hash,
		ExternalAuthID: draft.ExternalAuthID,
		CreatedAt:      now,
		LastUpdatedAt:  now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// unique indexes guard the race between the existence check above
		// and this insert
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return models.UserView{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "userService.Create").Msg("failed to create user")
		return models.UserView{}, err
	}

	return created.View(), nil
}

// Get fetches a single account by id. The view excludes the password hash.
func (s *userService) Get(ctx context.Context, userID string) (models.UserView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.UserView{}, ErrUserNotFound
		}
		return models.UserView{}, err
	}
	return user.View(), nil
}

// Update applies the set fields of patch and refreshes last_updated_at,
// returning the refreshed view. The account must exist before the patch is
// inspected, so an empty patch against a missing user reports not-found.
func (s *userService) Update(ctx context.Context, userID string, patch models.UserUpdate) (models.UserView, error) {
	log := logger.FromContext(ctx)

	if _, err := s.Get(ctx, userID); err != nil {
		return models.UserView{}, err
	}

	if !patch.HasFields() {
		return models.UserView{}, ErrNoFieldsToUpdate
	}

	affected, err := s.users.Update(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return models.UserView{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "userService.Update").Str("user_id", userID).Msg("failed to update user")
		return models.UserView{}, err
	}
	if affected == 0 {
		return models.UserView{}, ErrUserNotFound
	}

	return s.Get(ctx, userID)
}

// Delete permanently removes the account. Lists and tasks owned by the user
// are left in place.
func (s *userService) Delete(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	affected, err := s.users.Delete(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "userService.Delete").Str("user_id", userID).Msg("failed to delete user")
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Authenticate verifies the credentials against the stored hash. An unknown
// username and a wrong password are both reported as ok=false with no error,
// so the caller cannot distinguish the two.
func (s *userService) Authenticate(ctx context.Context, credentials models.Credentials) (models.UserView, bool, error) {
	user, err := s.users.GetByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.UserView{}, false, nil
		}
		return models.UserView{}, false, err
	}

	if !utils.VerifyPassword(credentials.Password, user.PasswordHash) {
		return models.UserView{}, false, nil
	}

	return user.View(), true, nil
}

// ExternalAuthenticate confirms that some stored user matches the criteria.
// It reports linkage only; no record is returned.
func (s *userService) ExternalAuthenticate(ctx context.Context, criteria models.UserCriteria) (bool, error) {
	ok, err := s.Exists(ctx, criteria)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrUserNotFound
	}
	return true, nil
}

// GetByExternalAuthID fetches the account linked to the given external
// identity.
func (s *userService) GetByExternalAuthID(ctx context.Context, externalAuthID string) (models.UserView, error) {
	user, err := s.users.GetByExternalAuthID(ctx, externalAuthID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.UserView{}, ErrUserNotFound
		}
		return models.UserView{}, err
	}
	return user.View(), nil
}
