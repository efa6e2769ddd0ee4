package broadcast_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/service/broadcast"
	"hunian-marketplace/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type broadcastMocks struct {
	orgRepo      *mocks.OrganizationRepository
	deliveryRepo *mocks.DeliveryLogRepository
	threads      *mocks.ThreadService
	messages     *mocks.MessagingService
}

func newBroadcastService(workers int) (broadcast.Service, *broadcastMocks) {
	m := &broadcastMocks{
		orgRepo:      new(mocks.OrganizationRepository),
		deliveryRepo: new(mocks.DeliveryLogRepository),
		threads:      new(mocks.ThreadService),
		messages:     new(mocks.MessagingService),
	}
	svc := broadcast.NewService(m.orgRepo, m.deliveryRepo, m.threads, m.messages, workers, time.Second)
	return svc, m
}

func activeMembership(orgID, userID uuid.UUID, role domain.OrgRole) *domain.OrgMembership {
	return &domain.OrgMembership{
		OrgID:  orgID,
		UserID: userID,
		Role:   role,
		Status: domain.MembershipActive,
	}
}

func TestBroadcastService_Send(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	devOrgID := uuid.New()
	input := domain.BroadcastInput{DeveloperOrgID: devOrgID, Body: "Unit baru tersedia"}

	t.Run("agent role cannot broadcast", func(t *testing.T) {
		svc, m := newBroadcastService(2)

		m.orgRepo.On("GetMembership", ctx, devOrgID, senderID).
			Return(activeMembership(devOrgID, senderID, domain.RoleAgent), nil).Once()

		_, err := svc.Send(ctx, senderID, input)

		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		m.orgRepo.AssertNotCalled(t, "ListApprovedPartners", mock.Anything, mock.Anything)
	})

	t.Run("non member cannot broadcast", func(t *testing.T) {
		svc, m := newBroadcastService(2)

		m.orgRepo.On("GetMembership", ctx, devOrgID, senderID).Return(nil, nil).Once()

		_, err := svc.Send(ctx, senderID, input)

		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("no approved partners is a successful empty broadcast", func(t *testing.T) {
		svc, m := newBroadcastService(2)

		m.orgRepo.On("GetMembership", ctx, devOrgID, senderID).
			Return(activeMembership(devOrgID, senderID, domain.RoleMarketing), nil).Once()
		m.orgRepo.On("ListApprovedPartners", ctx, devOrgID).Return([]domain.Organization{}, nil).Once()

		result, err := svc.Send(ctx, senderID, input)

		assert.NoError(t, err)
		assert.Equal(t, 0, result.Delivered)
		assert.Equal(t, 0, result.Threads)
		m.threads.AssertNotCalled(t, "ResolveBroadcast", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delivers to every approved partner", func(t *testing.T) {
		svc, m := newBroadcastService(2)

		partnerA := domain.Organization{ID: uuid.New(), Name: "Properti Sentosa", Type: domain.OrgBrokerage}
		partnerB := domain.Organization{ID: uuid.New(), Name: "Rumah Idaman", Type: domain.OrgBrokerage}

		m.orgRepo.On("GetMembership", ctx, devOrgID, senderID).
			Return(activeMembership(devOrgID, senderID, domain.RoleOwner), nil).Once()
		m.orgRepo.On("ListApprovedPartners", ctx, devOrgID).
			Return([]domain.Organization{partnerA, partnerB}, nil).Once()

		for _, partner := range []domain.Organization{partnerA, partnerB} {
			th := &domain.MessageThread{ID: uuid.New(), Type: domain.ThreadBroadcast}
			spec := domain.BroadcastThreadSpec{DeveloperOrgID: devOrgID, BrokerageOrgID: partner.ID}
			m.threads.On("ResolveBroadcast", mock.Anything, spec, (*string)(nil)).Return(th, nil).Once()
			m.messages.On("AppendToThread", mock.Anything, th, senderID, input.Body).
				Return(&domain.Message{ID: uuid.New(), ThreadID: th.ID}, nil).Once()
		}
		m.deliveryRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.BroadcastDelivery) bool {
			return d.Status == domain.DeliveryDelivered
		})).Return(nil).Twice()

		result, err := svc.Send(ctx, senderID, input)

		assert.NoError(t, err)
		assert.Equal(t, 2, result.Delivered)
		assert.Equal(t, 2, result.Threads)
		m.threads.AssertExpectations(t)
		m.messages.AssertExpectations(t)
		m.deliveryRepo.AssertExpectations(t)
	})

	t.Run("a failing partner does not abort the rest", func(t *testing.T) {
		svc, m := newBroadcastService(1)

		partnerA := domain.Organization{ID: uuid.New(), Name: "Properti Sentosa", Type: domain.OrgBrokerage}
		partnerB := domain.Organization{ID: uuid.New(), Name: "Rumah Idaman", Type: domain.OrgBrokerage}

		m.orgRepo.On("GetMembership", ctx, devOrgID, senderID).
			Return(activeMembership(devOrgID, senderID, domain.RoleAdmin), nil).Once()
		m.orgRepo.On("ListApprovedPartners", ctx, devOrgID).
			Return([]domain.Organization{partnerA, partnerB}, nil).Once()

		specA := domain.BroadcastThreadSpec{DeveloperOrgID: devOrgID, BrokerageOrgID: partnerA.ID}
		m.threads.On("ResolveBroadcast", mock.Anything, specA, (*string)(nil)).
			Return(nil, errors.New("db down")).Once()

		thB := &domain.MessageThread{ID: uuid.New(), Type: domain.ThreadBroadcast}
		specB := domain.BroadcastThreadSpec{DeveloperOrgID: devOrgID, BrokerageOrgID: partnerB.ID}
		m.threads.On("ResolveBroadcast", mock.Anything, specB, (*string)(nil)).Return(thB, nil).Once()
		m.messages.On("AppendToThread", mock.Anything, thB, senderID, input.Body).
			Return(&domain.Message{ID: uuid.New(), ThreadID: thB.ID}, nil).Once()

		m.deliveryRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BroadcastDelivery")).Return(nil).Twice()

		result, err := svc.Send(ctx, senderID, input)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Delivered)
		assert.Equal(t, 1, result.Threads)

		var failed int
		for _, call := range m.deliveryRepo.Calls {
			d := call.Arguments.Get(1).(*domain.BroadcastDelivery)
			if d.Status == domain.DeliveryFailed {
				failed++
				assert.NotNil(t, d.Error)
				assert.Equal(t, partnerA.ID, d.BrokerageOrgID)
			}
		}
		assert.Equal(t, 1, failed)
	})

	t.Run("duplicate partner rows are delivered once", func(t *testing.T) {
		svc, m := newBroadcastService(2)

		partner := domain.Organization{ID: uuid.New(), Name: "Properti Sentosa", Type: domain.OrgBrokerage}

		m.orgRepo.On("GetMembership", ctx, devOrgID, senderID).
			Return(activeMembership(devOrgID, senderID, domain.RoleManager), nil).Once()
		m.orgRepo.On("ListApprovedPartners", ctx, devOrgID).
			Return([]domain.Organization{partner, partner}, nil).Once()

		th := &domain.MessageThread{ID: uuid.New(), Type: domain.ThreadBroadcast}
		spec := domain.BroadcastThreadSpec{DeveloperOrgID: devOrgID, BrokerageOrgID: partner.ID}
		m.threads.On("ResolveBroadcast", mock.Anything, spec, (*string)(nil)).Return(th, nil).Once()
		m.messages.On("AppendToThread", mock.Anything, th, senderID, input.Body).
			Return(&domain.Message{ID: uuid.New(), ThreadID: th.ID}, nil).Once()
		m.deliveryRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.BroadcastDelivery")).Return(nil).Once()

		result, err := svc.Send(ctx, senderID, input)

		assert.NoError(t, err)
		assert.Equal(t, 1, result.Delivered)
		assert.Equal(t, 1, result.Threads)
		m.threads.AssertExpectations(t)
	})
}

func TestBroadcastService_ListDeliveries(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	devOrgID := uuid.New()
	params := domain.PaginationParams{Page: 1, PageSize: 20}

	t.Run("requires an active membership", func(t *testing.T) {
		svc, m := newBroadcastService(2)

		m.orgRepo.On("GetMembership", ctx, devOrgID, userID).Return(nil, nil).Once()

		_, err := svc.ListDeliveries(ctx, userID, devOrgID, params)

		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	})

	t.Run("success", func(t *testing.T) {
		svc, m := newBroadcastService(2)

		deliveries := []domain.BroadcastDelivery{{ID: uuid.New(), DeveloperOrgID: devOrgID, Status: domain.DeliveryDelivered}}
		m.orgRepo.On("GetMembership", ctx, devOrgID, userID).
			Return(activeMembership(devOrgID, userID, domain.RoleAgent), nil).Once()
		m.deliveryRepo.On("ListByDeveloperOrg", ctx, devOrgID, params).Return(deliveries, int64(1), nil).Once()

		result, err := svc.ListDeliveries(ctx, userID, devOrgID, params)

		assert.NoError(t, err)
		assert.Len(t, result.Data, 1)
	})
}
