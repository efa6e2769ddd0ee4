package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hunian-marketplace/internal/domain"
)

type DeliveryLogRepository interface {
	Create(ctx context.Context, delivery *domain.BroadcastDelivery) error
	ListByDeveloperOrg(ctx context.Context, developerOrgID uuid.UUID, params domain.PaginationParams) ([]domain.BroadcastDelivery, int64, error)
}

type deliveryLogRepository struct {
	db *sqlx.DB
}

func NewDeliveryLogRepository(db *sqlx.DB) DeliveryLogRepository {
	return &deliveryLogRepository{db: db}
}

func (r *deliveryLogRepository) Create(ctx context.Context, delivery *domain.BroadcastDelivery) error {
	query := `
		INSERT INTO broadcast_deliveries (id, developer_org_id, brokerage_org_id, thread_id, message_id, status, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		delivery.ID, delivery.DeveloperOrgID, delivery.BrokerageOrgID,
		delivery.ThreadID, delivery.MessageID, delivery.Status, delivery.Error,
	).Scan(&delivery.CreatedAt)
}

func (r *deliveryLogRepository) ListByDeveloperOrg(ctx context.Context, developerOrgID uuid.UUID, params domain.PaginationParams) ([]domain.BroadcastDelivery, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM broadcast_deliveries WHERE developer_org_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, developerOrgID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM broadcast_deliveries
		WHERE developer_org_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var deliveries []domain.BroadcastDelivery
	err := r.db.SelectContext(ctx, &deliveries, query, developerOrgID, params.PageSize, params.Offset())
	return deliveries, total, err
}
