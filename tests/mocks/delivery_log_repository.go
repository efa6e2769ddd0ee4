package mocks

import (
	"context"

	"hunian-marketplace/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type DeliveryLogRepository struct {
	mock.Mock
}

func (m *DeliveryLogRepository) Create(ctx context.Context, delivery *domain.BroadcastDelivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *DeliveryLogRepository) ListByDeveloperOrg(ctx context.Context, developerOrgID uuid.UUID, params domain.PaginationParams) ([]domain.BroadcastDelivery, int64, error) {
	args := m.Called(ctx, developerOrgID, params)
	return args.Get(0).([]domain.BroadcastDelivery), args.Get(1).(int64), args.Error(2)
}
