package thread_test

import (
	"context"
	"testing"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/service/thread"
	"hunian-marketplace/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestThreadService_ResolveDirect(t *testing.T) {
	ctx := context.Background()
	userA := uuid.New()
	userB := uuid.New()

	t.Run("returns existing thread", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		spec := domain.DirectThreadSpec{UserA: userA, UserB: userB}
		existing := &domain.MessageThread{ID: uuid.New(), Type: domain.ThreadDirect}
		mockThreadRepo.On("ResolveDirect", ctx, spec).Return(existing, false, nil).Once()

		th, err := svc.ResolveDirect(ctx, spec)

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, th.ID)
		mockThreadRepo.AssertExpectations(t)
	})

	t.Run("rejects self conversation without touching the repo", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		_, err := svc.ResolveDirect(ctx, domain.DirectThreadSpec{UserA: userA, UserB: userA})

		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
		mockThreadRepo.AssertNotCalled(t, "ResolveDirect", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing participant", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		_, err := svc.ResolveDirect(ctx, domain.DirectThreadSpec{UserA: userA})

		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
	})
}

func TestThreadService_ResolveBroadcast(t *testing.T) {
	ctx := context.Background()
	devOrgID := uuid.New()
	brokerOrgID := uuid.New()

	developer := &domain.Organization{ID: devOrgID, Name: "PT Griya Makmur", Type: domain.OrgDeveloper}
	brokerage := &domain.Organization{ID: brokerOrgID, Name: "Properti Sentosa", Type: domain.OrgBrokerage}

	t.Run("success", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		spec := domain.BroadcastThreadSpec{DeveloperOrgID: devOrgID, BrokerageOrgID: brokerOrgID}
		existing := &domain.MessageThread{ID: uuid.New(), Type: domain.ThreadBroadcast}

		mockOrgRepo.On("GetByID", ctx, devOrgID).Return(developer, nil).Once()
		mockOrgRepo.On("GetByID", ctx, brokerOrgID).Return(brokerage, nil).Once()
		mockThreadRepo.On("ResolveBroadcast", ctx, spec, (*string)(nil)).Return(existing, true, nil).Once()

		th, err := svc.ResolveBroadcast(ctx, spec, nil)

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, th.ID)
		mockOrgRepo.AssertExpectations(t)
		mockThreadRepo.AssertExpectations(t)
	})

	t.Run("rejects swapped org types", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		spec := domain.BroadcastThreadSpec{DeveloperOrgID: brokerOrgID, BrokerageOrgID: devOrgID}
		mockOrgRepo.On("GetByID", ctx, brokerOrgID).Return(brokerage, nil).Once()

		_, err := svc.ResolveBroadcast(ctx, spec, nil)

		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
		mockThreadRepo.AssertNotCalled(t, "ResolveBroadcast", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown developer org", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		spec := domain.BroadcastThreadSpec{DeveloperOrgID: devOrgID, BrokerageOrgID: brokerOrgID}
		mockOrgRepo.On("GetByID", ctx, devOrgID).Return(nil, nil).Once()

		_, err := svc.ResolveBroadcast(ctx, spec, nil)

		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
	})

	t.Run("rejects identical orgs before hitting the repo", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		spec := domain.BroadcastThreadSpec{DeveloperOrgID: devOrgID, BrokerageOrgID: devOrgID}

		_, err := svc.ResolveBroadcast(ctx, spec, nil)

		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
		mockOrgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestThreadService_CreateGroup(t *testing.T) {
	ctx := context.Background()
	creatorID := uuid.New()
	memberA := uuid.New()
	memberB := uuid.New()

	t.Run("dedups participants and includes the creator", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		input := domain.CreateGroupThreadInput{
			Title:          "Proyek Cluster Melati",
			ParticipantIDs: []uuid.UUID{memberA, memberB, memberA, creatorID},
		}

		mockThreadRepo.On("CreateGroup", ctx, mock.MatchedBy(func(th *domain.MessageThread) bool {
			return th.Type == domain.ThreadGroup && th.Title != nil && *th.Title == input.Title
		}), mock.MatchedBy(func(ids []uuid.UUID) bool {
			return len(ids) == 3 && ids[0] == creatorID
		})).Return(nil).Once()

		th, err := svc.CreateGroup(ctx, creatorID, input)

		assert.NoError(t, err)
		assert.NotNil(t, th)
		mockThreadRepo.AssertExpectations(t)
	})

	t.Run("rejects group without enough participants", func(t *testing.T) {
		mockThreadRepo := new(mocks.ThreadRepository)
		mockOrgRepo := new(mocks.OrganizationRepository)
		svc := thread.NewService(mockThreadRepo, mockOrgRepo, nil)

		input := domain.CreateGroupThreadInput{
			Title:          "Proyek Cluster Melati",
			ParticipantIDs: []uuid.UUID{memberA},
		}

		_, err := svc.CreateGroup(ctx, creatorID, input)

		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
		mockThreadRepo.AssertNotCalled(t, "CreateGroup", mock.Anything, mock.Anything, mock.Anything)
	})
}
