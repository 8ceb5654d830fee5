package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type NotificationRepositoryAdapter struct {
	db dbtx
}

func NewNotificationRepositoryAdapter(db *sqlx.DB) *NotificationRepositoryAdapter {
	return &NotificationRepositoryAdapter{db: db}
}

func (r *NotificationRepositoryAdapter) Create(ctx context.Context, n *entity.Notification) error {
	payload := n.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	query := `
		INSERT INTO notifications (id, user_id, kind, payload, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.UserID, n.Kind, []byte(payload), n.IsRead, n.CreatedAt)
	return mapError(err, nil, "não foi possível salvar a notificação")
}

func (r *NotificationRepositoryAdapter) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	var rows []notificationRow
	query := `
		SELECT id, user_id, kind, payload, is_read, created_at
		FROM notifications WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, mapError(err, nil, "não foi possível listar as notificações")
	}
	result := make([]*entity.Notification, len(rows))
	for i, row := range rows {
		result[i] = &entity.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Kind:      row.Kind,
			Payload:   json.RawMessage(row.Payload),
			IsRead:    row.IsRead,
			CreatedAt: row.CreatedAt,
		}
	}
	return result, nil
}

func (r *NotificationRepositoryAdapter) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, mapError(err, nil, "não foi possível contar as notificações")
	}
	return count, nil
}

func (r *NotificationRepositoryAdapter) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapError(err, nil, "não foi possível marcar a notificação como lida")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperror.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryAdapter) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	return mapError(err, nil, "não foi possível marcar as notificações como lidas")
}

type notificationRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Kind      string    `db:"kind"`
	Payload   []byte    `db:"payload"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}
