package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifGeneral NotificationType = "GENERAL"
	NotifMessage NotificationType = "MESSAGE"
)

func (t NotificationType) Valid() bool {
	return t == NotifGeneral || t == NotifMessage
}

// Notification is one row per (user, event). A message to a five-person
// group produces four rows: one per recipient, none for the sender.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Data      json.RawMessage  `json:"data,omitempty" db:"data"`
	RefID     *uuid.UUID       `json:"ref_id,omitempty" db:"ref_id"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

// NotificationCounter is a cached projection of the unread notification
// rows, maintained in the same transaction as every row mutation. Count
// covers GENERAL rows, MessageCount covers MESSAGE rows.
type NotificationCounter struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Count        int64     `json:"count" db:"general_count"`
	MessageCount int64     `json:"message_count" db:"message_count"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
