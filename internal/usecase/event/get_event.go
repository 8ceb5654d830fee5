package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
)

const (
	defaultOpenLimit = 20
	maxOpenLimit     = 100
)

type GetEventUseCase struct {
	eventRepo repository.EventRepository
}

func NewGetEventUseCase(eventRepo repository.EventRepository) *GetEventUseCase {
	return &GetEventUseCase{eventRepo: eventRepo}
}

func (uc *GetEventUseCase) Execute(ctx context.Context, eventID uuid.UUID) (*entity.Event, error) {
	return uc.eventRepo.FindByID(ctx, eventID)
}

type ListClientEventsUseCase struct {
	eventRepo repository.EventRepository
}

func NewListClientEventsUseCase(eventRepo repository.EventRepository) *ListClientEventsUseCase {
	return &ListClientEventsUseCase{eventRepo: eventRepo}
}

func (uc *ListClientEventsUseCase) Execute(ctx context.Context, clientID uuid.UUID) ([]*entity.Event, error) {
	return uc.eventRepo.FindByClientID(ctx, clientID)
}

type ListOpenEventsUseCase struct {
	eventRepo repository.EventRepository
}

func NewListOpenEventsUseCase(eventRepo repository.EventRepository) *ListOpenEventsUseCase {
	return &ListOpenEventsUseCase{eventRepo: eventRepo}
}

func (uc *ListOpenEventsUseCase) Execute(ctx context.Context, filter repository.EventFilter) ([]*entity.Event, error) {
	return uc.eventRepo.ListOpen(ctx, NormalizeFilter(filter))
}

// NormalizeFilter ограничивает размер страницы.
func NormalizeFilter(filter repository.EventFilter) repository.EventFilter {
	if filter.Limit <= 0 {
		filter.Limit = defaultOpenLimit
	}
	if filter.Limit > maxOpenLimit {
		filter.Limit = maxOpenLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}
