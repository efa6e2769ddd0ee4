package broadcast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/repository"
	"hunian-marketplace/internal/service/messaging"
	"hunian-marketplace/internal/service/thread"
)

// Service fans one message out to every currently-approved partner
// brokerage of a developer org: one broadcast thread per partner, one
// appended message per thread. Delivery is best-effort multicast — a
// failing partner is logged and skipped, never aborts the rest.
type Service interface {
	Send(ctx context.Context, senderID uuid.UUID, input domain.BroadcastInput) (*domain.BroadcastResult, error)
	ListDeliveries(ctx context.Context, userID, developerOrgID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.BroadcastDelivery], error)
}

type service struct {
	orgRepo      repository.OrganizationRepository
	deliveryRepo repository.DeliveryLogRepository
	threads      thread.Service
	messages     messaging.Service
	workers      int
	perPartner   time.Duration
}

func NewService(
	orgRepo repository.OrganizationRepository,
	deliveryRepo repository.DeliveryLogRepository,
	threads thread.Service,
	messages messaging.Service,
	workers int,
	perPartnerTimeout time.Duration,
) Service {
	if workers < 1 {
		workers = 1
	}
	if perPartnerTimeout <= 0 {
		perPartnerTimeout = 10 * time.Second
	}
	return &service{
		orgRepo:      orgRepo,
		deliveryRepo: deliveryRepo,
		threads:      threads,
		messages:     messages,
		workers:      workers,
		perPartner:   perPartnerTimeout,
	}
}

func (s *service) Send(ctx context.Context, senderID uuid.UUID, input domain.BroadcastInput) (*domain.BroadcastResult, error) {
	membership, err := s.orgRepo.GetMembership(ctx, input.DeveloperOrgID, senderID)
	if err != nil {
		return nil, err
	}
	if membership == nil || membership.Status != domain.MembershipActive || !membership.Role.CanBroadcast() {
		return nil, domain.ErrNotAuthorized
	}

	// The eligibility set is read fresh on every broadcast so a revoked
	// partnership stops receiving immediately.
	partners, err := s.orgRepo.ListApprovedPartners(ctx, input.DeveloperOrgID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(partners))
	var (
		mu        sync.Mutex
		delivered int
		threadIDs = make(map[uuid.UUID]struct{})
	)

	g := &errgroup.Group{}
	g.SetLimit(s.workers)

	for _, partner := range partners {
		if _, dup := seen[partner.ID]; dup {
			continue
		}
		seen[partner.ID] = struct{}{}

		partner := partner
		g.Go(func() error {
			threadID, messageID, err := s.deliverToPartner(ctx, senderID, input, partner.ID)

			delivery := &domain.BroadcastDelivery{
				ID:             uuid.New(),
				DeveloperOrgID: input.DeveloperOrgID,
				BrokerageOrgID: partner.ID,
				ThreadID:       threadID,
				MessageID:      messageID,
			}
			if err != nil {
				delivery.Status = domain.DeliveryFailed
				reason := fmt.Errorf("%w: %v", domain.ErrPartnerUnreachable, err).Error()
				delivery.Error = &reason
			} else {
				delivery.Status = domain.DeliveryDelivered
				mu.Lock()
				delivered++
				threadIDs[*threadID] = struct{}{}
				mu.Unlock()
			}
			_ = s.deliveryRepo.Create(ctx, delivery)

			// Per-partner failures surface only through the counts.
			return nil
		})
	}

	_ = g.Wait()

	return &domain.BroadcastResult{
		Delivered: delivered,
		Threads:   len(threadIDs),
	}, nil
}

// deliverToPartner is one independently timed-out unit of the fan-out.
func (s *service) deliverToPartner(ctx context.Context, senderID uuid.UUID, input domain.BroadcastInput, partnerOrgID uuid.UUID) (*uuid.UUID, *uuid.UUID, error) {
	pctx, cancel := context.WithTimeout(ctx, s.perPartner)
	defer cancel()

	th, err := s.threads.ResolveBroadcast(pctx, domain.BroadcastThreadSpec{
		DeveloperOrgID: input.DeveloperOrgID,
		BrokerageOrgID: partnerOrgID,
	}, input.Title)
	if err != nil {
		return nil, nil, err
	}

	msg, err := s.messages.AppendToThread(pctx, th, senderID, input.Body)
	if err != nil {
		return &th.ID, nil, err
	}
	return &th.ID, &msg.ID, nil
}

func (s *service) ListDeliveries(ctx context.Context, userID, developerOrgID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.BroadcastDelivery], error) {
	membership, err := s.orgRepo.GetMembership(ctx, developerOrgID, userID)
	if err != nil {
		return domain.PaginatedResponse[domain.BroadcastDelivery]{}, err
	}
	if membership == nil || membership.Status != domain.MembershipActive {
		return domain.PaginatedResponse[domain.BroadcastDelivery]{}, domain.ErrNotAuthorized
	}

	deliveries, total, err := s.deliveryRepo.ListByDeveloperOrg(ctx, developerOrgID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.BroadcastDelivery]{}, err
	}
	return domain.NewPaginatedResponse(deliveries, params.Page, params.PageSize, total), nil
}
