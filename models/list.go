package models

import "time"

// Visibility controls who may read a list through its share token.
type Visibility string

const (
	// VisibilityPrivate restricts access to the list owner.
	VisibilityPrivate Visibility = "PRIVATE"

	// VisibilityOrganizationOnly grants access to requesters whose email
	// domain matches the owner's.
	VisibilityOrganizationOnly Visibility = "ORGANIZATION_ONLY"

	// VisibilityPublic grants access to any known user holding the token.
	VisibilityPublic Visibility = "PUBLIC"
)

// Valid reports whether v is one of the three defined visibility levels.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityOrganizationOnly, VisibilityPublic:
		return true
	}
	return false
}

// ShareTokenBytes is the entropy, in bytes, of a generated share token.
const ShareTokenBytes = 43

// List represents a to-do list owned by a single user.
//
// Version is a snapshot counter: task records are permanently scoped to one
// version, and the counter only ever advances by one through the version
// increment operation. ShareToken is generated once at creation and stays
// stable across version increments.
type List struct {
	ListID        string     `json:"list_id"`
	UserID        string     `json:"user_id"`
	ListName      string     `json:"list_name"`
	Version       int        `json:"version"`
	Visibility    Visibility `json:"visibility"`
	ShareToken    string     `json:"share_token"`
	CreatedAt     time.Time  `json:"created_at"`
	LastUpdatedAt time.Time  `json:"last_updated_at"`
}

// TableName returns the name of the database table
// associated with the List model.
func (l List) TableName() string {
	return "lists"
}

// ListCreate is the draft used to create a new list. Ownership is recorded
// as given; the owner is not required to exist at creation time.
type ListCreate struct {
	UserID   string `json:"user_id"`
	ListName string `json:"list_name"`
}

// ListUpdate is a partial update of a list record. ShareToken is absent
// because the token is immutable. Version is carried only so that the core
// can reject direct writes to it; the version advances solely through the
// increment operation and no persistence path reads this field.
type ListUpdate struct {
	ListName   *string     `json:"list_name,omitempty"`
	Visibility *Visibility `json:"visibility,omitempty"`
	Version    *int        `json:"version,omitempty"`
}

// HasFields reports whether at least one writable field of the partial is set.
func (u ListUpdate) HasFields() bool {
	return u.ListName != nil || u.Visibility != nil
}

// ListCriteria identifies a list for existence checks. When ListID is
// supplied it alone determines the match; the (UserID, ListName) pair is
// consulted only when ListID is absent.
type ListCriteria struct {
	ListID   string `json:"list_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	ListName string `json:"list_name,omitempty"`
}
