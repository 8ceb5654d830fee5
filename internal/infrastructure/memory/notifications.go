package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type notificationRepo struct {
	store *Store
}

func (r *notificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	return r.store.write(false, func(st *state) error {
		st.notifications[n.ID] = cloneNotification(n)
		st.notifSeq = append(st.notifSeq, n.ID)
		return nil
	})
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Notification, error) {
	var result []*entity.Notification
	err := r.store.read(func(st *state) error {
		for i := len(st.notifSeq) - 1; i >= 0; i-- {
			n := st.notifications[st.notifSeq[i]]
			if n.UserID == userID {
				result = append(result, cloneNotification(n))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page(result, limit, offset), nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	err := r.store.read(func(st *state) error {
		for _, n := range st.notifications {
			if n.UserID == userID && !n.IsRead {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return r.store.write(false, func(st *state) error {
		n, ok := st.notifications[id]
		if !ok || n.UserID != userID {
			return apperror.ErrNotificationNotFound
		}
		n.IsRead = true
		return nil
	})
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.store.write(false, func(st *state) error {
		for _, n := range st.notifications {
			if n.UserID == userID {
				n.IsRead = true
			}
		}
		return nil
	})
}
