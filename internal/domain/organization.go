package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrgType string

const (
	OrgBrokerage OrgType = "BROKERAGE"
	OrgDeveloper OrgType = "DEVELOPER"
)

// Organization is a read model over the org directory, owned externally.
type Organization struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Type      OrgType   `json:"type" db:"type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type OrgRole string

const (
	RoleOwner      OrgRole = "OWNER"
	RoleAdmin      OrgRole = "ADMIN"
	RoleManager    OrgRole = "MANAGER"
	RoleMarketing  OrgRole = "MARKETING"
	RoleAgent      OrgRole = "AGENT"
	RoleAccounting OrgRole = "ACCOUNTING"
)

// CanBroadcast reports whether the role may send partner broadcasts on
// behalf of a developer organization.
func (r OrgRole) CanBroadcast() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager, RoleMarketing:
		return true
	default:
		return false
	}
}

type MembershipStatus string

const (
	MembershipInvited MembershipStatus = "INVITED"
	MembershipActive  MembershipStatus = "ACTIVE"
	MembershipRemoved MembershipStatus = "REMOVED"
)

type OrgMembership struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	OrgID     uuid.UUID        `json:"org_id" db:"org_id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Role      OrgRole          `json:"role" db:"role"`
	Status    MembershipStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type PartnershipStatus string

const (
	PartnershipPending  PartnershipStatus = "PENDING"
	PartnershipApproved PartnershipStatus = "APPROVED"
	PartnershipRejected PartnershipStatus = "REJECTED"
)

// OrgPartnership gates whether a developer org may broadcast to a broker
// org. At most one non-rejected partnership exists per org pair.
type OrgPartnership struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	BrokerOrgID    uuid.UUID         `json:"broker_org_id" db:"broker_org_id"`
	DeveloperOrgID uuid.UUID         `json:"developer_org_id" db:"developer_org_id"`
	Status         PartnershipStatus `json:"status" db:"status"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
}
