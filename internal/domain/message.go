package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. Seq is assigned by the database at
// insert time and defines the total order within a thread.
type Message struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ThreadID    uuid.UUID  `json:"thread_id" db:"thread_id"`
	SenderID    uuid.UUID  `json:"sender_id" db:"sender_id"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty" db:"recipient_id"`
	Body        string     `json:"body" db:"body"`
	Seq         int64      `json:"seq" db:"seq"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// SendMessageInput addresses a message either by thread id or by a
// (property, recipient) pair which resolves to a direct thread.
type SendMessageInput struct {
	ThreadID    *uuid.UUID `json:"thread_id"`
	PropertyID  *uuid.UUID `json:"property_id"`
	RecipientID *uuid.UUID `json:"recipient_id"`
	Body        string     `json:"body"`
}

type CreateGroupThreadInput struct {
	Title          string      `json:"title"`
	ParticipantIDs []uuid.UUID `json:"participant_ids"`
	OrgID          *uuid.UUID  `json:"org_id"`
}
