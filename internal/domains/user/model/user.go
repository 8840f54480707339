package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. New signups wait in a pending state until
// an admin approves them; unapproved users cannot log in.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`

	PasswordHash string `json:"-"`

	IsApproved bool       `json:"is_approved"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
