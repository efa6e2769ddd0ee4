package mocks

import (
	"context"

	"hunian-marketplace/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Append(ctx context.Context, msg *domain.Message, notifications []domain.Notification) error {
	args := m.Called(ctx, msg, notifications)
	return args.Error(0)
}

func (m *MessageRepository) ListByThread(ctx context.Context, threadID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	args := m.Called(ctx, threadID, params)
	return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MessageRepository) ListByProperty(ctx context.Context, propertyID, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	args := m.Called(ctx, propertyID, userID, params)
	return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
}
