package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hunian-marketplace/internal/domain"
)

type ThreadRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageThread, error)
	// ResolveDirect returns the thread for the spec's deterministic key,
	// creating it if absent. The bool reports whether this call created it.
	ResolveDirect(ctx context.Context, spec domain.DirectThreadSpec) (*domain.MessageThread, bool, error)
	// ResolveBroadcast does the same for the (developer org, brokerage org)
	// pair. Title is applied only when the thread is created.
	ResolveBroadcast(ctx context.Context, spec domain.BroadcastThreadSpec, title *string) (*domain.MessageThread, bool, error)
	CreateGroup(ctx context.Context, thread *domain.MessageThread, participantIDs []uuid.UUID) error
	ListParticipantIDs(ctx context.Context, threadID uuid.UUID) ([]uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.MessageThread, int64, error)
	CanAccess(ctx context.Context, threadID, userID uuid.UUID) (bool, error)
}

type threadRepository struct {
	db *sqlx.DB
}

func NewThreadRepository(db *sqlx.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageThread, error) {
	var thread domain.MessageThread
	query := `SELECT * FROM message_threads WHERE id = $1`

	err := r.db.GetContext(ctx, &thread, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// resolveAttempts bounds the lookup/insert loop. More than one retry only
// happens when a concurrent creator aborts between our conflict and reread.
const resolveAttempts = 3

func (r *threadRepository) ResolveDirect(ctx context.Context, spec domain.DirectThreadSpec) (*domain.MessageThread, bool, error) {
	key := spec.Key()

	for attempt := 0; attempt < resolveAttempts; attempt++ {
		var existing domain.MessageThread
		err := r.db.GetContext(ctx, &existing, `SELECT * FROM message_threads WHERE direct_key = $1`, key)
		if err == nil {
			return &existing, false, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, err
		}

		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return nil, false, err
		}

		var thread domain.MessageThread
		err = tx.QueryRowxContext(ctx, `
			INSERT INTO message_threads (id, type, direct_key, property_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (direct_key) DO NOTHING
			RETURNING *`,
			uuid.New(), domain.ThreadDirect, key, spec.PropertyID,
		).StructScan(&thread)
		if errors.Is(err, sql.ErrNoRows) {
			// Lost the race to a concurrent resolve; reread on next pass.
			_ = tx.Rollback()
			continue
		}
		if err != nil {
			_ = tx.Rollback()
			return nil, false, err
		}

		for _, userID := range []uuid.UUID{spec.UserA, spec.UserB} {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO thread_participants (thread_id, user_id)
				VALUES ($1, $2)`, thread.ID, userID); err != nil {
				_ = tx.Rollback()
				return nil, false, err
			}
		}

		if err := tx.Commit(); err != nil {
			return nil, false, err
		}
		return &thread, true, nil
	}

	return nil, false, fmt.Errorf("direct thread resolution did not converge for key %s", key)
}

func (r *threadRepository) ResolveBroadcast(ctx context.Context, spec domain.BroadcastThreadSpec, title *string) (*domain.MessageThread, bool, error) {
	for attempt := 0; attempt < resolveAttempts; attempt++ {
		var existing domain.MessageThread
		err := r.db.GetContext(ctx, &existing, `
			SELECT * FROM message_threads
			WHERE type = $1 AND developer_org_id = $2 AND brokerage_org_id = $3`,
			domain.ThreadBroadcast, spec.DeveloperOrgID, spec.BrokerageOrgID)
		if err == nil {
			return &existing, false, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, err
		}

		var thread domain.MessageThread
		err = r.db.QueryRowxContext(ctx, `
			INSERT INTO message_threads (id, type, title, developer_org_id, brokerage_org_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (developer_org_id, brokerage_org_id) WHERE type = 'BROADCAST' DO NOTHING
			RETURNING *`,
			uuid.New(), domain.ThreadBroadcast, title, spec.DeveloperOrgID, spec.BrokerageOrgID,
		).StructScan(&thread)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return &thread, true, nil
	}

	return nil, false, fmt.Errorf("broadcast thread resolution did not converge for orgs %s/%s",
		spec.DeveloperOrgID, spec.BrokerageOrgID)
}

func (r *threadRepository) CreateGroup(ctx context.Context, thread *domain.MessageThread, participantIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO message_threads (id, type, title, property_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		thread.ID, domain.ThreadGroup, thread.Title, thread.PropertyID,
	).Scan(&thread.CreatedAt, &thread.UpdatedAt)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, userID := range participantIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO thread_participants (thread_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (thread_id, user_id) DO NOTHING`, thread.ID, userID); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *threadRepository) ListParticipantIDs(ctx context.Context, threadID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := `SELECT user_id FROM thread_participants WHERE thread_id = $1 ORDER BY joined_at`
	err := r.db.SelectContext(ctx, &ids, query, threadID)
	return ids, err
}

// ListByUser returns threads visible to the user: threads they participate
// in, plus broadcast threads of orgs they are an active member of.
func (r *threadRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.MessageThread, int64, error) {
	params.Validate()

	visible := `
		FROM message_threads t
		WHERE EXISTS (
			SELECT 1 FROM thread_participants tp
			WHERE tp.thread_id = t.id AND tp.user_id = $1
		)
		OR (t.type = 'BROADCAST' AND EXISTS (
			SELECT 1 FROM org_memberships m
			WHERE m.user_id = $1 AND m.status = 'ACTIVE'
			  AND m.org_id IN (t.developer_org_id, t.brokerage_org_id)
		))`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) `+visible, userID); err != nil {
		return nil, 0, err
	}

	var threads []domain.MessageThread
	query := `SELECT t.* ` + visible + `
		ORDER BY t.last_message_at DESC NULLS LAST, t.created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &threads, query, userID, params.PageSize, params.Offset())
	return threads, total, err
}

func (r *threadRepository) CanAccess(ctx context.Context, threadID, userID uuid.UUID) (bool, error) {
	var ok bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM message_threads t
			WHERE t.id = $1 AND (
				EXISTS (
					SELECT 1 FROM thread_participants tp
					WHERE tp.thread_id = t.id AND tp.user_id = $2
				)
				OR (t.type = 'BROADCAST' AND EXISTS (
					SELECT 1 FROM org_memberships m
					WHERE m.user_id = $2 AND m.status = 'ACTIVE'
					  AND m.org_id IN (t.developer_org_id, t.brokerage_org_id)
				))
			)
		)`
	err := r.db.GetContext(ctx, &ok, query, threadID, userID)
	return ok, err
}
