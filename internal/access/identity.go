package access

import "github.com/google/uuid"

// Identity is the authenticated caller, built once per request from verified
// token claims. It is never persisted.
type Identity struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	IsAdmin   bool       `json:"is_admin"`
	ProfileID *uuid.UUID `json:"profile_id,omitempty"`
}
