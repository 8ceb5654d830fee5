package ws

import (
	"context"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
)

// InboxSaver сохраняет доменное событие во входящих получателя.
type InboxSaver interface {
	Save(ctx context.Context, record domainevent.Record) (*entity.Notification, error)
}

// NotificationSink - подписчик эмиттера: сохраняет уведомление и отправляет его подключённым клиентам.
type NotificationSink struct {
	hub   *Hub
	inbox InboxSaver
}

func NewNotificationSink(hub *Hub, inbox InboxSaver) *NotificationSink {
	return &NotificationSink{hub: hub, inbox: inbox}
}

func (s *NotificationSink) Name() string { return "ws" }

// Deliver без активных подключений только сохраняет уведомление.
func (s *NotificationSink) Deliver(ctx context.Context, record domainevent.Record) error {
	if s.inbox != nil {
		if _, err := s.inbox.Save(ctx, record); err != nil {
			return err
		}
	}
	if s.hub.Connected(record.RecipientID) == 0 {
		return nil
	}
	return s.hub.SendToUser(ctx, record.RecipientID, string(record.Kind), record)
}
