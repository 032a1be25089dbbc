package models

import (
	"errors"
	"strings"
	"time"
)

// User represents a stored account record, including credential data.
// Sensitive fields must never be exposed outside trusted boundaries;
// callers that return user data outward should use [User.View].
type User struct {
	// UserID is the opaque unique identifier assigned at creation.
	UserID string `json:"user_id"`

	// Username is the unique login name of the user.
	Username string `json:"username"`

	// Email is the unique email address of the user. The substring after
	// '@' is the user's organization domain for list-sharing purposes.
	Email string `json:"email"`

	// PhoneNumber is the unique phone number of the user.
	PhoneNumber string `json:"phone_number"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// PasswordHash stores the one-way hash of the user's password.
	// This value MUST be a hash, never plaintext, and is never serialized.
	PasswordHash string `json:"-"`

	// ExternalAuthID links the account to an external identity provider.
	ExternalAuthID string `json:"external_auth_id"`

	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Domain returns the organization domain of the user's email address:
// the substring following the first '@'. Returns an empty string when the
// email contains no '@'.
func (u User) Domain() string {
	_, domain, found := strings.Cut(u.Email, "@")
	if !found {
		return ""
	}
	return domain
}

// View strips credential data from the record for outward exposure.
func (u User) View() UserView {
	return UserView{
		UserID:         u.UserID,
		Username:       u.Username,
		Email:          u.Email,
		PhoneNumber:    u.PhoneNumber,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ExternalAuthID: u.ExternalAuthID,
		CreatedAt:      u.CreatedAt,
		LastUpdatedAt:  u.LastUpdatedAt,
	}
}

// UserView is the outward representation of a user. It carries everything a
// [User] does except the password hash.
type UserView struct {
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ExternalAuthID string    `json:"external_auth_id"`
	CreatedAt      time.Time `json:"created_at"`
	LastUpdatedAt  time.Time `json:"last_updated_at"`
}

// Domain returns the organization domain of the view's email address.
func (v UserView) Domain() string {
	_, domain, found := strings.Cut(v.Email, "@")
	if !found {
		return ""
	}
	return domain
}

// ErrInvalidEmail is returned by [UserCreate.Validate] when the email field
// fails the syntactic check.
var ErrInvalidEmail = errors.New("invalid email format")

// UserCreate is the draft used to register a new user.
type UserCreate struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`

	// Password is the plaintext password supplied at signup. It is hashed
	// before storage and never persisted as-is.
	Password string `json:"password"`

	ExternalAuthID string `json:"external_auth_id"`
}

// Validate performs syntactic input validation on the draft.
// The only rule is that Email must contain an '@'; this is an input
// contract, not an invariant of stored data.
func (c UserCreate) Validate() error {
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// UserUpdate is a partial update of a user record. Nil fields are left
// untouched; only non-nil fields are written.
type UserUpdate struct {
	Username       *string `json:"username,omitempty"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	ExternalAuthID *string `json:"external_auth_id,omitempty"`
}

// HasFields reports whether at least one field of the partial is set.
func (u UserUpdate) HasFields() bool {
	return u.Username != nil ||
		u.Email != nil ||
		u.PhoneNumber != nil ||
		u.FirstName != nil ||
		u.LastName != nil ||
		u.ExternalAuthID != nil
}

// UserCriteria is the OR-matching lookup criteria accepted by existence and
// external-authentication checks. A user matches when ANY supplied
// (non-empty) field matches the stored record.
type UserCriteria struct {
	Username       string `json:"username,omitempty"`
	Email          string `json:"email,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	ExternalAuthID string `json:"external_auth_id,omitempty"`
}

// Empty reports whether no criteria fields are supplied.
func (c UserCriteria) Empty() bool {
	return c.Username == "" &&
		c.Email == "" &&
		c.PhoneNumber == "" &&
		c.UserID == "" &&
		c.ExternalAuthID == ""
}

// Credentials is the payload of a username/password login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
