package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a read model over the identity directory. This service never
// mutates users; it only resolves names, emails and activity for
// notification fan-out.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FullName     string     `json:"full_name" db:"full_name"`
	Email        string     `json:"email" db:"email"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	PrimaryOrgID *uuid.UUID `json:"primary_org_id,omitempty" db:"primary_org_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
