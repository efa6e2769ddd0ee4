package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ThreadType string

const (
	ThreadDirect    ThreadType = "DIRECT"
	ThreadGroup     ThreadType = "GROUP"
	ThreadBroadcast ThreadType = "BROADCAST"
)

// MessageThread groups an ordered sequence of messages. Direct and group
// threads carry explicit participants; broadcast threads are scoped to a
// (developer org, brokerage org) pair and their audience is resolved from
// active memberships at send time.
type MessageThread struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Type           ThreadType `json:"type" db:"type"`
	Title          *string    `json:"title,omitempty" db:"title"`
	PropertyID     *uuid.UUID `json:"property_id,omitempty" db:"property_id"`
	DeveloperOrgID *uuid.UUID `json:"developer_org_id,omitempty" db:"developer_org_id"`
	BrokerageOrgID *uuid.UUID `json:"brokerage_org_id,omitempty" db:"brokerage_org_id"`
	DirectKey      *string    `json:"-" db:"direct_key"`
	LastMessageAt  *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// DirectThreadSpec identifies a one-to-one conversation, optionally scoped
// to a property. The same pair of users with the same property scope always
// resolves to the same thread.
type DirectThreadSpec struct {
	UserA      uuid.UUID
	UserB      uuid.UUID
	PropertyID *uuid.UUID
}

func (s DirectThreadSpec) Validate() error {
	if s.UserA == uuid.Nil || s.UserB == uuid.Nil {
		return fmt.Errorf("%w: direct thread requires two participants", ErrInvalidThreadSpec)
	}
	if s.UserA == s.UserB {
		return fmt.Errorf("%w: direct thread participants must be distinct", ErrInvalidThreadSpec)
	}
	return nil
}

// Key returns the deterministic resolution key: the sorted participant pair
// plus the property scope. Swapping UserA and UserB yields the same key.
func (s DirectThreadSpec) Key() string {
	a, b := s.UserA.String(), s.UserB.String()
	if b < a {
		a, b = b, a
	}
	if s.PropertyID != nil {
		return a + ":" + b + ":" + s.PropertyID.String()
	}
	return a + ":" + b
}

// GroupThreadSpec describes an explicit group conversation. Groups are never
// deduplicated; every create call produces a new thread.
type GroupThreadSpec struct {
	Title          string
	ParticipantIDs []uuid.UUID
	OrgID          *uuid.UUID
}

func (s GroupThreadSpec) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("%w: group thread requires a title", ErrInvalidThreadSpec)
	}
	if len(s.ParticipantIDs) < 2 {
		return fmt.Errorf("%w: group thread requires at least two participants", ErrInvalidThreadSpec)
	}
	return nil
}

// BroadcastThreadSpec identifies the single channel between a developer org
// and one of its partner brokerages.
type BroadcastThreadSpec struct {
	DeveloperOrgID uuid.UUID
	BrokerageOrgID uuid.UUID
}

func (s BroadcastThreadSpec) Validate() error {
	if s.DeveloperOrgID == uuid.Nil || s.BrokerageOrgID == uuid.Nil {
		return fmt.Errorf("%w: broadcast thread requires both organizations", ErrInvalidThreadSpec)
	}
	if s.DeveloperOrgID == s.BrokerageOrgID {
		return fmt.Errorf("%w: broadcast thread organizations must be distinct", ErrInvalidThreadSpec)
	}
	return nil
}
