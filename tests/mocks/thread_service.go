package mocks

import (
	"context"

	"hunian-marketplace/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ThreadService struct {
	mock.Mock
}

func (m *ThreadService) ResolveDirect(ctx context.Context, spec domain.DirectThreadSpec) (*domain.MessageThread, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageThread), args.Error(1)
}

func (m *ThreadService) ResolveBroadcast(ctx context.Context, spec domain.BroadcastThreadSpec, title *string) (*domain.MessageThread, error) {
	args := m.Called(ctx, spec, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageThread), args.Error(1)
}

func (m *ThreadService) CreateGroup(ctx context.Context, creatorID uuid.UUID, input domain.CreateGroupThreadInput) (*domain.MessageThread, error) {
	args := m.Called(ctx, creatorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageThread), args.Error(1)
}

func (m *ThreadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageThread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageThread), args.Error(1)
}

func (m *ThreadService) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.MessageThread], error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.MessageThread]), args.Error(1)
}

func (m *ThreadService) InvalidateListCache(ctx context.Context, userIDs []uuid.UUID) {
	m.Called(ctx, userIDs)
}
