package domain

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

// BroadcastDelivery records the outcome of one partner-org delivery inside
// a broadcast. Failures are recorded here instead of failing the broadcast.
type BroadcastDelivery struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	DeveloperOrgID uuid.UUID      `json:"developer_org_id" db:"developer_org_id"`
	BrokerageOrgID uuid.UUID      `json:"brokerage_org_id" db:"brokerage_org_id"`
	ThreadID       *uuid.UUID     `json:"thread_id,omitempty" db:"thread_id"`
	MessageID      *uuid.UUID     `json:"message_id,omitempty" db:"message_id"`
	Status         DeliveryStatus `json:"status" db:"status"`
	Error          *string        `json:"error,omitempty" db:"error"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// BroadcastResult reports partner organizations reached and distinct
// threads touched, not individual human recipients.
type BroadcastResult struct {
	Delivered int `json:"delivered"`
	Threads   int `json:"threads"`
}

type BroadcastInput struct {
	DeveloperOrgID uuid.UUID `json:"developer_org_id"`
	Title          *string   `json:"title"`
	Body           string    `json:"body"`
}
