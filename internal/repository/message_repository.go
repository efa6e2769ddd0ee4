package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hunian-marketplace/internal/domain"
)

type MessageRepository interface {
	// Append writes the message, advances the thread's last_message_at and
	// inserts the recipients' notifications with their counter increments,
	// all in one transaction. A failed append leaves no message, no
	// notification and no counter change behind.
	Append(ctx context.Context, msg *domain.Message, notifications []domain.Notification) error
	ListByThread(ctx context.Context, threadID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
	ListByProperty(ctx context.Context, propertyID, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Append(ctx context.Context, msg *domain.Message, notifications []domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO messages (id, thread_id, sender_id, recipient_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq, created_at`,
		msg.ID, msg.ThreadID, msg.SenderID, msg.RecipientID, msg.Body,
	).Scan(&msg.Seq, &msg.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE message_threads SET last_message_at = $2, updated_at = $2
		WHERE id = $1`, msg.ThreadID, msg.CreatedAt)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if affected, err := res.RowsAffected(); err != nil || affected == 0 {
		_ = tx.Rollback()
		if err != nil {
			return err
		}
		return domain.ErrThreadNotFound
	}

	for i := range notifications {
		n := &notifications[i]
		if err := insertNotificationTx(ctx, tx, n); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := bumpCounterTx(ctx, tx, n.UserID, n.Type, 1); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *messageRepository) ListByThread(ctx context.Context, threadID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM messages WHERE thread_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, threadID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM messages
		WHERE thread_id = $1
		ORDER BY seq
		LIMIT $2 OFFSET $3`

	var messages []domain.Message
	err := r.db.SelectContext(ctx, &messages, query, threadID, params.PageSize, params.Offset())
	return messages, total, err
}

// ListByProperty returns the user's own property-scoped conversation
// history: messages from threads about the property that the user
// participates in. Other users' threads about the same property stay hidden.
func (r *messageRepository) ListByProperty(ctx context.Context, propertyID, userID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	params.Validate()

	scope := `
		FROM messages m
		JOIN message_threads t ON t.id = m.thread_id
		JOIN thread_participants tp ON tp.thread_id = t.id AND tp.user_id = $2
		WHERE t.property_id = $1`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) `+scope, propertyID, userID); err != nil {
		return nil, 0, err
	}

	query := `SELECT m.* ` + scope + `
		ORDER BY m.seq
		LIMIT $3 OFFSET $4`

	var messages []domain.Message
	err := r.db.SelectContext(ctx, &messages, query, propertyID, userID, params.PageSize, params.Offset())
	return messages, total, err
}
