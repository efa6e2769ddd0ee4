package messaging_test

import (
	"context"
	"testing"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/service/messaging"
	"hunian-marketplace/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type messagingMocks struct {
	messageRepo *mocks.MessageRepository
	threadRepo  *mocks.ThreadRepository
	orgRepo     *mocks.OrganizationRepository
	userRepo    *mocks.UserRepository
	threads     *mocks.ThreadService
}

func newMessagingService() (messaging.Service, *messagingMocks) {
	m := &messagingMocks{
		messageRepo: new(mocks.MessageRepository),
		threadRepo:  new(mocks.ThreadRepository),
		orgRepo:     new(mocks.OrganizationRepository),
		userRepo:    new(mocks.UserRepository),
		threads:     new(mocks.ThreadService),
	}
	svc := messaging.NewService(m.messageRepo, m.threadRepo, m.orgRepo, m.userRepo, m.threads, nil)
	return svc, m
}

func TestMessagingService_Send(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()
	recipientID := uuid.New()

	sender := &domain.User{ID: senderID, FullName: "Budi Santoso", Email: "budi@example.com"}

	t.Run("rejects message without address", func(t *testing.T) {
		svc, _ := newMessagingService()

		_, err := svc.Send(ctx, senderID, domain.SendMessageInput{Body: "Halo"})

		assert.ErrorIs(t, err, domain.ErrInvalidThreadSpec)
	})

	t.Run("unknown thread", func(t *testing.T) {
		svc, m := newMessagingService()

		threadID := uuid.New()
		m.threadRepo.On("GetByID", ctx, threadID).Return(nil, nil).Once()

		_, err := svc.Send(ctx, senderID, domain.SendMessageInput{ThreadID: &threadID, Body: "Halo"})

		assert.ErrorIs(t, err, domain.ErrThreadNotFound)
		m.messageRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("recipient address resolves a direct thread", func(t *testing.T) {
		svc, m := newMessagingService()

		th := &domain.MessageThread{ID: uuid.New(), Type: domain.ThreadDirect}
		spec := domain.DirectThreadSpec{UserA: senderID, UserB: recipientID}

		m.threads.On("ResolveDirect", ctx, spec).Return(th, nil).Once()
		m.threadRepo.On("ListParticipantIDs", ctx, th.ID).Return([]uuid.UUID{senderID, recipientID}, nil).Once()
		m.userRepo.On("GetByID", ctx, senderID).Return(sender, nil).Once()
		m.messageRepo.On("Append", ctx, mock.MatchedBy(func(msg *domain.Message) bool {
			return msg.ThreadID == th.ID && msg.SenderID == senderID && msg.RecipientID != nil && *msg.RecipientID == recipientID
		}), mock.MatchedBy(func(notifications []domain.Notification) bool {
			return len(notifications) == 1 &&
				notifications[0].UserID == recipientID &&
				notifications[0].Type == domain.NotifMessage
		})).Return(nil).Once()
		m.threads.On("InvalidateListCache", ctx, mock.Anything).Return().Once()

		msg, err := svc.Send(ctx, senderID, domain.SendMessageInput{RecipientID: &recipientID, Body: "Halo"})

		assert.NoError(t, err)
		assert.Equal(t, "Halo", msg.Body)
		m.messageRepo.AssertExpectations(t)
		m.threads.AssertExpectations(t)
	})
}

func TestMessagingService_AppendToThread(t *testing.T) {
	ctx := context.Background()
	senderID := uuid.New()

	sender := &domain.User{ID: senderID, FullName: "Budi Santoso", Email: "budi@example.com"}

	t.Run("group fan-out excludes the sender", func(t *testing.T) {
		svc, m := newMessagingService()

		memberA := uuid.New()
		memberB := uuid.New()
		title := "Tim Pemasaran"
		th := &domain.MessageThread{ID: uuid.New(), Type: domain.ThreadGroup, Title: &title}

		m.threadRepo.On("ListParticipantIDs", ctx, th.ID).Return([]uuid.UUID{senderID, memberA, memberB}, nil).Once()
		m.userRepo.On("GetByID", ctx, senderID).Return(sender, nil).Once()
		m.messageRepo.On("Append", ctx, mock.AnythingOfType("*domain.Message"), mock.MatchedBy(func(notifications []domain.Notification) bool {
			if len(notifications) != 2 {
				return false
			}
			for _, n := range notifications {
				if n.UserID == senderID {
					return false
				}
			}
			return true
		})).Return(nil).Once()
		m.threads.On("InvalidateListCache", ctx, mock.Anything).Return().Once()

		_, err := svc.AppendToThread(ctx, th, senderID, "Rapat jam 10")

		assert.NoError(t, err)
		m.messageRepo.AssertExpectations(t)
	})

	t.Run("non participant cannot send", func(t *testing.T) {
		svc, m := newMessagingService()

		th := &domain.MessageThread{ID: uuid.New(), Type: domain.ThreadDirect}
		m.threadRepo.On("ListParticipantIDs", ctx, th.ID).Return([]uuid.UUID{uuid.New(), uuid.New()}, nil).Once()

		_, err := svc.AppendToThread(ctx, th, senderID, "Halo")

		assert.ErrorIs(t, err, domain.ErrSenderNotAuthorized)
		m.messageRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("broadcast requires an active developer membership", func(t *testing.T) {
		svc, m := newMessagingService()

		devOrgID := uuid.New()
		brokerOrgID := uuid.New()
		th := &domain.MessageThread{
			ID:             uuid.New(),
			Type:           domain.ThreadBroadcast,
			DeveloperOrgID: &devOrgID,
			BrokerageOrgID: &brokerOrgID,
		}

		m.orgRepo.On("GetMembership", ctx, devOrgID, senderID).Return(nil, nil).Once()

		_, err := svc.AppendToThread(ctx, th, senderID, "Promo baru")

		assert.ErrorIs(t, err, domain.ErrSenderNotAuthorized)
	})

	t.Run("broadcast audience is the brokerage's active members", func(t *testing.T) {
		svc, m := newMessagingService()

		devOrgID := uuid.New()
		brokerOrgID := uuid.New()
		agentA := uuid.New()
		agentB := uuid.New()
		th := &domain.MessageThread{
			ID:             uuid.New(),
			Type:           domain.ThreadBroadcast,
			DeveloperOrgID: &devOrgID,
			BrokerageOrgID: &brokerOrgID,
		}

		membership := &domain.OrgMembership{
			OrgID:  devOrgID,
			UserID: senderID,
			Role:   domain.RoleMarketing,
			Status: domain.MembershipActive,
		}
		developer := &domain.Organization{ID: devOrgID, Name: "PT Griya Makmur", Type: domain.OrgDeveloper}

		m.orgRepo.On("GetMembership", ctx, devOrgID, senderID).Return(membership, nil).Once()
		m.orgRepo.On("ListActiveMemberIDs", ctx, brokerOrgID).Return([]uuid.UUID{agentA, agentB}, nil).Once()
		m.orgRepo.On("GetByID", ctx, devOrgID).Return(developer, nil).Once()
		m.userRepo.On("GetByID", ctx, senderID).Return(sender, nil).Once()
		m.messageRepo.On("Append", ctx, mock.AnythingOfType("*domain.Message"), mock.MatchedBy(func(notifications []domain.Notification) bool {
			return len(notifications) == 2 && notifications[0].Title == "Siaran Mitra"
		})).Return(nil).Once()
		m.threads.On("InvalidateListCache", ctx, mock.Anything).Return().Once()

		_, err := svc.AppendToThread(ctx, th, senderID, "Promo cluster baru")

		assert.NoError(t, err)
		m.messageRepo.AssertExpectations(t)
	})
}

func TestMessagingService_ListByThread(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	threadID := uuid.New()
	params := domain.PaginationParams{Page: 1, PageSize: 20}

	t.Run("hidden thread reads as not found", func(t *testing.T) {
		svc, m := newMessagingService()

		m.threadRepo.On("CanAccess", ctx, threadID, userID).Return(false, nil).Once()

		_, err := svc.ListByThread(ctx, userID, threadID, params)

		assert.ErrorIs(t, err, domain.ErrThreadNotFound)
		m.messageRepo.AssertNotCalled(t, "ListByThread", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		svc, m := newMessagingService()

		messages := []domain.Message{{ID: uuid.New(), ThreadID: threadID, Seq: 1}}
		m.threadRepo.On("CanAccess", ctx, threadID, userID).Return(true, nil).Once()
		m.messageRepo.On("ListByThread", ctx, threadID, params).Return(messages, int64(1), nil).Once()

		result, err := svc.ListByThread(ctx, userID, threadID, params)

		assert.NoError(t, err)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, int64(1), result.TotalItems)
	})
}
