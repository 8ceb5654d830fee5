package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
)

// EventFilter - параметры выборки открытых событий для ленты профессионала.
// Limit 0 - без ограничения.
type EventFilter struct {
	City      string
	EventType valueobject.EventType
	Limit     int
	Offset    int
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	// FindByIDForUpdate блокирует строку события до конца транзакции.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Event, error)
	ListOpen(ctx context.Context, filter EventFilter) ([]*entity.Event, error)
	// UpdateStatus сохраняет статус и нанятое предложение, только если текущий статус равен expected.
	UpdateStatus(ctx context.Context, event *entity.Event, expected valueobject.EventStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
