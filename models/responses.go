package models

// Message is a minimal response envelope for operations that return no
// entity, such as deletes.
type Message struct {
	Message string `json:"message"`
}

// AuthConfirmation is returned by the external-authentication check.
// It confirms account linkage without exposing the full record.
type AuthConfirmation struct {
	Authenticated bool `json:"authenticated"`
}
