package repository

import (
	"context"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/db"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
)

type NotificationRepository struct {
	DB *db.Postgres
}

func (r NotificationRepository) Create(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	stored := n
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, message, type, reference, created_at)
		VALUES ($1,$2,$3,$4,$5, now())
		RETURNING id, created_at
	`, n.UserID, n.Title, n.Message, string(n.Type), n.Reference).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// HasUnreadForReference backs manager notification dedupe: one unread
// notification per subject per user.
func (r NotificationRepository) HasUnreadForReference(ctx context.Context, userID int64, reference string) (bool, error) {
	var exists bool
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id=$1 AND reference=$2 AND read_at IS NULL
		)
	`, userID, reference).Scan(&exists)
	return exists, err
}

func (r NotificationRepository) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, user_id, title, message, type, reference, created_at, read_at
		FROM notifications
		WHERE user_id=$1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &typ, &n.Reference, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, err
		}
		n.Type = domain.NotificationType(typ)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r NotificationRepository) MarkRead(ctx context.Context, userID, id int64) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE notifications SET read_at=now() WHERE id=$1 AND user_id=$2 AND read_at IS NULL
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("notification not found")
	}
	return nil
}
