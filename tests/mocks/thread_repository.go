package mocks

import (
	"context"

	"hunian-marketplace/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ThreadRepository struct {
	mock.Mock
}

func (m *ThreadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageThread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MessageThread), args.Error(1)
}

func (m *ThreadRepository) ResolveDirect(ctx context.Context, spec domain.DirectThreadSpec) (*domain.MessageThread, bool, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.MessageThread), args.Bool(1), args.Error(2)
}

func (m *ThreadRepository) ResolveBroadcast(ctx context.Context, spec domain.BroadcastThreadSpec, title *string) (*domain.MessageThread, bool, error) {
	args := m.Called(ctx, spec, title)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.MessageThread), args.Bool(1), args.Error(2)
}

func (m *ThreadRepository) CreateGroup(ctx context.Context, thread *domain.MessageThread, participantIDs []uuid.UUID) error {
	args := m.Called(ctx, thread, participantIDs)
	return args.Error(0)
}

func (m *ThreadRepository) ListParticipantIDs(ctx context.Context, threadID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, threadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *ThreadRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.MessageThread, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.MessageThread), args.Get(1).(int64), args.Error(2)
}

func (m *ThreadRepository) CanAccess(ctx context.Context, threadID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, threadID, userID)
	return args.Bool(0), args.Error(1)
}
