package thread

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/repository"
)

// Service is the thread resolver: it maps a conversation shape to exactly
// one thread. Direct and broadcast resolution are deterministic and safe
// under concurrent calls; group creation is explicit and never deduplicated.
type Service interface {
	ResolveDirect(ctx context.Context, spec domain.DirectThreadSpec) (*domain.MessageThread, error)
	ResolveBroadcast(ctx context.Context, spec domain.BroadcastThreadSpec, title *string) (*domain.MessageThread, error)
	CreateGroup(ctx context.Context, creatorID uuid.UUID, input domain.CreateGroupThreadInput) (*domain.MessageThread, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageThread, error)
	List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.MessageThread], error)
	InvalidateListCache(ctx context.Context, userIDs []uuid.UUID)
}

type service struct {
	threadRepo repository.ThreadRepository
	orgRepo    repository.OrganizationRepository
	redis      *redis.Client
}

func NewService(threadRepo repository.ThreadRepository, orgRepo repository.OrganizationRepository, redis *redis.Client) Service {
	return &service{
		threadRepo: threadRepo,
		orgRepo:    orgRepo,
		redis:      redis,
	}
}

func (s *service) ResolveDirect(ctx context.Context, spec domain.DirectThreadSpec) (*domain.MessageThread, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	thread, created, err := s.threadRepo.ResolveDirect(ctx, spec)
	if err != nil {
		return nil, err
	}
	if created {
		s.InvalidateListCache(ctx, []uuid.UUID{spec.UserA, spec.UserB})
	}
	return thread, nil
}

func (s *service) ResolveBroadcast(ctx context.Context, spec domain.BroadcastThreadSpec, title *string) (*domain.MessageThread, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	developer, err := s.orgRepo.GetByID(ctx, spec.DeveloperOrgID)
	if err != nil {
		return nil, err
	}
	if developer == nil || developer.Type != domain.OrgDeveloper {
		return nil, fmt.Errorf("%w: %s is not a developer organization", domain.ErrInvalidThreadSpec, spec.DeveloperOrgID)
	}

	brokerage, err := s.orgRepo.GetByID(ctx, spec.BrokerageOrgID)
	if err != nil {
		return nil, err
	}
	if brokerage == nil || brokerage.Type != domain.OrgBrokerage {
		return nil, fmt.Errorf("%w: %s is not a brokerage organization", domain.ErrInvalidThreadSpec, spec.BrokerageOrgID)
	}

	thread, _, err := s.threadRepo.ResolveBroadcast(ctx, spec, title)
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *service) CreateGroup(ctx context.Context, creatorID uuid.UUID, input domain.CreateGroupThreadInput) (*domain.MessageThread, error) {
	spec := domain.GroupThreadSpec{
		Title:          input.Title,
		ParticipantIDs: input.ParticipantIDs,
		OrgID:          input.OrgID,
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	participants := make([]uuid.UUID, 0, len(input.ParticipantIDs)+1)
	seen := make(map[uuid.UUID]struct{})
	for _, id := range append([]uuid.UUID{creatorID}, input.ParticipantIDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		participants = append(participants, id)
	}

	thread := &domain.MessageThread{
		ID:    uuid.New(),
		Type:  domain.ThreadGroup,
		Title: &input.Title,
	}
	if err := s.threadRepo.CreateGroup(ctx, thread, participants); err != nil {
		return nil, err
	}

	s.InvalidateListCache(ctx, participants)
	return thread, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageThread, error) {
	return s.threadRepo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.MessageThread], error) {
	params.Validate()
	cacheKey := fmt.Sprintf("threads:%s:%d:%d", userID, params.Page, params.PageSize)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var result domain.PaginatedResponse[domain.MessageThread]
			if json.Unmarshal([]byte(cached), &result) == nil {
				return result, nil
			}
		}
	}

	threads, total, err := s.threadRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.MessageThread]{}, err
	}

	result := domain.NewPaginatedResponse(threads, params.Page, params.PageSize, total)

	if s.redis != nil {
		if resultJSON, err := json.Marshal(result); err == nil {
			_ = s.redis.Set(ctx, cacheKey, resultJSON, 2*time.Minute).Err()
		}
	}

	return result, nil
}

// InvalidateListCache drops the cached thread lists for the given users.
// Called after anything that reorders or extends their thread lists.
func (s *service) InvalidateListCache(ctx context.Context, userIDs []uuid.UUID) {
	if s.redis == nil {
		return
	}
	for _, userID := range userIDs {
		pattern := fmt.Sprintf("threads:%s:*", userID)
		keys, _ := s.redis.Keys(ctx, pattern).Result()
		if len(keys) > 0 {
			_ = s.redis.Del(ctx, keys...).Err()
		}
	}
}
