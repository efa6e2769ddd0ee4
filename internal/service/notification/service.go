package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/repository"
)

// Service is the notification ledger and counter surface. The counters are
// maintained by the repository inside the same transaction as every ledger
// mutation; this layer validates input and shapes responses.
type Service interface {
	Notify(ctx context.Context, userID uuid.UUID, ntype domain.NotificationType, title, message string, ref *uuid.UUID) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID, ntype *domain.NotificationType, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAsUnread(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAsReadByType(ctx context.Context, userID uuid.UUID, types []domain.NotificationType) (int64, error)
	Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	GetCounter(ctx context.Context, userID uuid.UUID) (*domain.NotificationCounter, error)
}

type service struct {
	notifRepo repository.NotificationRepository
}

func NewService(notifRepo repository.NotificationRepository) Service {
	return &service{notifRepo: notifRepo}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, ntype domain.NotificationType, title, message string, ref *uuid.UUID) (*domain.Notification, error) {
	if !ntype.Valid() {
		return nil, fmt.Errorf("unknown notification type %q", ntype)
	}

	var data json.RawMessage
	if ref != nil {
		data, _ = json.Marshal(map[string]string{"ref_id": ref.String()})
	}

	notif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Data:    data,
		RefID:   ref,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, ntype *domain.NotificationType, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	if ntype != nil && !ntype.Valid() {
		return domain.PaginatedResponse[domain.Notification]{}, fmt.Errorf("unknown notification type %q", *ntype)
	}

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, ntype, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	return s.notifRepo.MarkAsRead(ctx, userID, ids)
}

func (s *service) MarkAsUnread(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	return s.notifRepo.MarkAsUnread(ctx, userID, ids)
}

func (s *service) MarkAsReadByType(ctx context.Context, userID uuid.UUID, types []domain.NotificationType) (int64, error) {
	for _, t := range types {
		if !t.Valid() {
			return 0, fmt.Errorf("unknown notification type %q", t)
		}
	}
	return s.notifRepo.MarkAsReadByType(ctx, userID, types)
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	return s.notifRepo.Delete(ctx, userID, ids)
}

func (s *service) GetCounter(ctx context.Context, userID uuid.UUID) (*domain.NotificationCounter, error) {
	return s.notifRepo.GetCounter(ctx, userID)
}
