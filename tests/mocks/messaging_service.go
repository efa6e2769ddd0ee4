package mocks

import (
	"context"

	"hunian-marketplace/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MessagingService struct {
	mock.Mock
}

func (m *MessagingService) Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	args := m.Called(ctx, senderID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MessagingService) AppendToThread(ctx context.Context, th *domain.MessageThread, senderID uuid.UUID, body string) (*domain.Message, error) {
	args := m.Called(ctx, th, senderID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MessagingService) ListByThread(ctx context.Context, userID, threadID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	args := m.Called(ctx, userID, threadID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Message]), args.Error(1)
}

func (m *MessagingService) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	args := m.Called(ctx, userID, propertyID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Message]), args.Error(1)
}
