package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hunian-marketplace/internal/domain"
)

// NotificationRepository owns the notification ledger and its per-user
// counters. Every method that flips or removes rows adjusts the counters by
// the number of rows actually changed, inside the same transaction, so the
// counters always equal the true unread row counts.
type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, ntype *domain.NotificationType, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAsUnread(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	MarkAsReadByType(ctx context.Context, userID uuid.UUID, types []domain.NotificationType) (int64, error)
	Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	GetCounter(ctx context.Context, userID uuid.UUID) (*domain.NotificationCounter, error)
	CountUnread(ctx context.Context, userID uuid.UUID, ntype domain.NotificationType) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// insertNotificationTx writes one unread ledger row. Callers pair it with
// bumpCounterTx in the same transaction.
func insertNotificationTx(ctx context.Context, tx *sqlx.Tx, n *domain.Notification) error {
	return tx.QueryRowxContext(ctx, `
		INSERT INTO notifications (id, user_id, type, title, message, data, ref_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Data, n.RefID,
	).Scan(&n.CreatedAt)
}

// bumpCounterTx adjusts one counter field by delta. The upsert takes a row
// lock on the user's counter row, so concurrent operations for the same
// user serialize here and no delta is lost. A result that would go negative
// means the ledger and counter have diverged; the caller must roll back.
func bumpCounterTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, ntype domain.NotificationType, delta int64) error {
	if delta == 0 {
		return nil
	}

	column := "general_count"
	if ntype == domain.NotifMessage {
		column = "message_count"
	}

	query := fmt.Sprintf(`
		INSERT INTO notification_counters (user_id, %s)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET %s = notification_counters.%s + EXCLUDED.%s, updated_at = NOW()
		RETURNING general_count, message_count`, column, column, column, column)

	var general, message int64
	if err := tx.QueryRowxContext(ctx, query, userID, delta).Scan(&general, &message); err != nil {
		return err
	}
	if general < 0 || message < 0 {
		return fmt.Errorf("%w: user %s would reach general=%d message=%d",
			domain.ErrCounterInconsistency, userID, general, message)
	}
	return nil
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err := insertNotificationTx(ctx, tx, notif); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := bumpCounterTx(ctx, tx, notif.UserID, notif.Type, 1); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, ntype *domain.NotificationType, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	params.Validate()

	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if ntype != nil {
		args = append(args, *ntype)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if unreadOnly {
		where += " AND is_read = false"
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications `+where, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT * FROM notifications %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, total, err
}

// MarkAsRead flips the caller's unread rows among ids to read and returns
// the number flipped. Rows already read are untouched, so repeating the
// call cannot decrement the counters twice.
func (r *notificationRepository) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.flipAndSettle(ctx, userID, -1, `
		UPDATE notifications SET is_read = true, read_at = NOW()
		WHERE user_id = $1 AND id = ANY($2) AND is_read = false
		RETURNING type`, pq.Array(ids))
}

func (r *notificationRepository) MarkAsUnread(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.flipAndSettle(ctx, userID, 1, `
		UPDATE notifications SET is_read = false, read_at = NULL
		WHERE user_id = $1 AND id = ANY($2) AND is_read = true
		RETURNING type`, pq.Array(ids))
}

// MarkAsReadByType flips every currently-unread row of the given types. The
// counter decrement equals the rows flipped in this statement, not a reset
// to zero, so an unread notification arriving concurrently keeps its count.
func (r *notificationRepository) MarkAsReadByType(ctx context.Context, userID uuid.UUID, types []domain.NotificationType) (int64, error) {
	if len(types) == 0 {
		return 0, nil
	}
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}
	return r.flipAndSettle(ctx, userID, -1, `
		UPDATE notifications SET is_read = true, read_at = NOW()
		WHERE user_id = $1 AND type = ANY($2) AND is_read = false
		RETURNING type`, pq.Array(typeNames))
}

// flipAndSettle runs an UPDATE returning the type of every flipped row and
// applies sign*count per type to the counters, all in one transaction.
func (r *notificationRepository) flipAndSettle(ctx context.Context, userID uuid.UUID, sign int64, query string, arg interface{}) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}

	var flipped []domain.NotificationType
	if err := tx.SelectContext(ctx, &flipped, query, userID, arg); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	for ntype, count := range countByType(flipped) {
		if err := bumpCounterTx(ctx, tx, userID, ntype, sign*count); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int64(len(flipped)), nil
}

// Delete removes rows and decrements the counters for each removed row that
// was still unread.
func (r *notificationRepository) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}

	rows, err := tx.QueryxContext(ctx, `
		DELETE FROM notifications
		WHERE user_id = $1 AND id = ANY($2)
		RETURNING type, is_read`, userID, pq.Array(ids))
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	var removed int64
	unread := make(map[domain.NotificationType]int64)
	for rows.Next() {
		var ntype domain.NotificationType
		var isRead bool
		if err := rows.Scan(&ntype, &isRead); err != nil {
			rows.Close()
			_ = tx.Rollback()
			return 0, err
		}
		removed++
		if !isRead {
			unread[ntype]++
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		_ = tx.Rollback()
		return 0, err
	}
	rows.Close()

	for ntype, count := range unread {
		if err := bumpCounterTx(ctx, tx, userID, ntype, -count); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return removed, nil
}

// GetCounter returns the cached projection, or zero values when no counter
// row exists yet. Reading never creates the row.
func (r *notificationRepository) GetCounter(ctx context.Context, userID uuid.UUID) (*domain.NotificationCounter, error) {
	var counter domain.NotificationCounter
	query := `SELECT * FROM notification_counters WHERE user_id = $1`

	err := r.db.GetContext(ctx, &counter, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotificationCounter{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

// CountUnread recounts the ledger directly. Used by invariant checks; the
// API serves counters from the cached projection.
func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID, ntype domain.NotificationType) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND type = $2 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID, ntype)
	return count, err
}

func countByType(types []domain.NotificationType) map[domain.NotificationType]int64 {
	counts := make(map[domain.NotificationType]int64)
	for _, t := range types {
		counts[t]++
	}
	return counts
}
