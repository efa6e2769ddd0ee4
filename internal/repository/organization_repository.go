package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hunian-marketplace/internal/domain"
)

// OrganizationRepository reads the org directory: organizations, their
// memberships and the partnerships gating broadcasts. Read-only.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.OrgMembership, error)
	ListActiveMemberIDs(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error)
	ListApprovedPartners(ctx context.Context, developerOrgID uuid.UUID) ([]domain.Organization, error)
}

type organizationRepository struct {
	db *sqlx.DB
}

func NewOrganizationRepository(db *sqlx.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	query := `SELECT * FROM organizations WHERE id = $1`

	err := r.db.GetContext(ctx, &org, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetMembership(ctx context.Context, orgID, userID uuid.UUID) (*domain.OrgMembership, error) {
	var membership domain.OrgMembership
	query := `SELECT * FROM org_memberships WHERE org_id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &membership, query, orgID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *organizationRepository) ListActiveMemberIDs(ctx context.Context, orgID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `
		SELECT m.user_id FROM org_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.org_id = $1 AND m.status = $2 AND u.is_active = true
		ORDER BY m.created_at`

	err := r.db.SelectContext(ctx, &ids, query, orgID, domain.MembershipActive)
	return ids, err
}

// ListApprovedPartners returns the broker organizations with a currently
// approved partnership. Partnership status is read here on every call, never
// cached: approval can be revoked between broadcasts.
func (r *organizationRepository) ListApprovedPartners(ctx context.Context, developerOrgID uuid.UUID) ([]domain.Organization, error) {
	var orgs []domain.Organization
	query := `
		SELECT DISTINCT o.* FROM organizations o
		JOIN org_partnerships p ON p.broker_org_id = o.id
		WHERE p.developer_org_id = $1 AND p.status = $2`

	err := r.db.SelectContext(ctx, &orgs, query, developerOrgID, domain.PartnershipApproved)
	return orgs, err
}
