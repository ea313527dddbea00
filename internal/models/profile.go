package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a named bundle of grants shared by the users that reference it.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
