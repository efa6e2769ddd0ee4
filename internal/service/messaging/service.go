package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/repository"
	"hunian-marketplace/internal/service/email"
	"hunian-marketplace/internal/service/thread"
)

// Service is the message store. Sending validates the sender against the
// thread, appends the immutable message and fans out one unread
// notification per recipient with its counter increment, atomically.
type Service interface {
	Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	AppendToThread(ctx context.Context, th *domain.MessageThread, senderID uuid.UUID, body string) (*domain.Message, error)
	ListByThread(ctx context.Context, userID, threadID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
	ListByProperty(ctx context.Context, userID, propertyID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error)
}

type service struct {
	messageRepo repository.MessageRepository
	threadRepo  repository.ThreadRepository
	orgRepo     repository.OrganizationRepository
	userRepo    repository.UserRepository
	threads     thread.Service
	emailSvc    email.Service
}

func NewService(
	messageRepo repository.MessageRepository,
	threadRepo repository.ThreadRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	threads thread.Service,
	emailSvc email.Service,
) Service {
	return &service{
		messageRepo: messageRepo,
		threadRepo:  threadRepo,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		threads:     threads,
		emailSvc:    emailSvc,
	}
}

func (s *service) Send(ctx context.Context, senderID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	var th *domain.MessageThread
	var err error

	switch {
	case input.ThreadID != nil:
		th, err = s.threadRepo.GetByID(ctx, *input.ThreadID)
		if err != nil {
			return nil, err
		}
		if th == nil {
			return nil, domain.ErrThreadNotFound
		}
	case input.RecipientID != nil:
		th, err = s.threads.ResolveDirect(ctx, domain.DirectThreadSpec{
			UserA:      senderID,
			UserB:      *input.RecipientID,
			PropertyID: input.PropertyID,
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: message needs a thread or a recipient", domain.ErrInvalidThreadSpec)
	}

	return s.AppendToThread(ctx, th, senderID, input.Body)
}

func (s *service) AppendToThread(ctx context.Context, th *domain.MessageThread, senderID uuid.UUID, body string) (*domain.Message, error) {
	recipients, err := s.resolveRecipients(ctx, th, senderID)
	if err != nil {
		return nil, err
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, domain.ErrSenderNotAuthorized
	}

	msg := &domain.Message{
		ID:       uuid.New(),
		ThreadID: th.ID,
		SenderID: senderID,
		Body:     body,
	}
	if th.Type == domain.ThreadDirect && len(recipients) == 1 {
		msg.RecipientID = &recipients[0]
	}

	notifications, err := s.buildNotifications(ctx, th, sender, msg, recipients)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.Append(ctx, msg, notifications); err != nil {
		return nil, err
	}

	s.threads.InvalidateListCache(ctx, append(recipients, senderID))
	s.sendEmails(th, sender, msg, recipients)

	return msg, nil
}

// resolveRecipients checks sender eligibility and returns the notification
// audience. Direct/group threads require the sender to be a participant;
// broadcast threads require an active developer-org membership, and the
// audience is the brokerage's active members resolved at send time.
func (s *service) resolveRecipients(ctx context.Context, th *domain.MessageThread, senderID uuid.UUID) ([]uuid.UUID, error) {
	switch th.Type {
	case domain.ThreadDirect, domain.ThreadGroup:
		participants, err := s.threadRepo.ListParticipantIDs(ctx, th.ID)
		if err != nil {
			return nil, err
		}
		recipients := make([]uuid.UUID, 0, len(participants))
		isParticipant := false
		for _, id := range participants {
			if id == senderID {
				isParticipant = true
				continue
			}
			recipients = append(recipients, id)
		}
		if !isParticipant {
			return nil, domain.ErrSenderNotAuthorized
		}
		return recipients, nil

	case domain.ThreadBroadcast:
		if th.DeveloperOrgID == nil || th.BrokerageOrgID == nil {
			return nil, fmt.Errorf("%w: broadcast thread %s is missing its org scope", domain.ErrInvalidThreadSpec, th.ID)
		}
		membership, err := s.orgRepo.GetMembership(ctx, *th.DeveloperOrgID, senderID)
		if err != nil {
			return nil, err
		}
		if membership == nil || membership.Status != domain.MembershipActive {
			return nil, domain.ErrSenderNotAuthorized
		}

		members, err := s.orgRepo.ListActiveMemberIDs(ctx, *th.BrokerageOrgID)
		if err != nil {
			return nil, err
		}
		recipients := make([]uuid.UUID, 0, len(members))
		for _, id := range members {
			if id != senderID {
				recipients = append(recipients, id)
			}
		}
		return recipients, nil

	default:
		return nil, fmt.Errorf("%w: unknown thread type %q", domain.ErrInvalidThreadSpec, th.Type)
	}
}

func (s *service) buildNotifications(ctx context.Context, th *domain.MessageThread, sender *domain.User, msg *domain.Message, recipients []uuid.UUID) ([]domain.Notification, error) {
	title := "Pesan Baru"
	text := fmt.Sprintf("%s mengirim pesan baru", sender.FullName)
	if th.Type == domain.ThreadBroadcast {
		developer, err := s.orgRepo.GetByID(ctx, *th.DeveloperOrgID)
		if err != nil {
			return nil, err
		}
		developerName := sender.FullName
		if developer != nil {
			developerName = developer.Name
		}
		title = "Siaran Mitra"
		text = fmt.Sprintf("%s mengirim siaran baru", developerName)
	}

	data, _ := json.Marshal(map[string]string{
		"thread_id":  th.ID.String(),
		"message_id": msg.ID.String(),
	})

	notifications := make([]domain.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notifications = append(notifications, domain.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Type:    domain.NotifMessage,
			Title:   title,
			Message: text,
			Data:    data,
			RefID:   &msg.ID,
		})
	}
	return notifications, nil
}

func (s *service) sendEmails(th *domain.MessageThread, sender *domain.User, msg *domain.Message, recipients []uuid.UUID) {
	if s.emailSvc == nil || len(recipients) == 0 {
		return
	}

	preview := messagePreview(msg.Body)
	broadcast := th.Type == domain.ThreadBroadcast

	go func() {
		ctx := context.Background()
		users, err := s.userRepo.GetByIDs(ctx, recipients)
		if err != nil {
			return
		}
		for _, user := range users {
			if user.Email == "" {
				continue
			}
			if broadcast {
				_ = s.emailSvc.SendBroadcastEmail(ctx, user.Email, user.FullName, sender.FullName, "", preview)
			} else {
				_ = s.emailSvc.SendNewMessageEmail(ctx, user.Email, user.FullName, sender.FullName, preview)
			}
		}
	}()
}

func (s *service) ListByThread(ctx context.Context, userID, threadID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	ok, err := s.threadRepo.CanAccess(ctx, threadID, userID)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, err
	}
	if !ok {
		return domain.PaginatedResponse[domain.Message]{}, domain.ErrThreadNotFound
	}

	messages, total, err := s.messageRepo.ListByThread(ctx, threadID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, err
	}
	return domain.NewPaginatedResponse(messages, params.Page, params.PageSize, total), nil
}

func (s *service) ListByProperty(ctx context.Context, userID, propertyID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Message], error) {
	messages, total, err := s.messageRepo.ListByProperty(ctx, propertyID, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Message]{}, err
	}
	return domain.NewPaginatedResponse(messages, params.Page, params.PageSize, total), nil
}

func messagePreview(body string) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= 120 {
		return body
	}
	return string(runes[:117]) + "..."
}
