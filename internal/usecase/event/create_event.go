package event

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/metrics"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gastro-backend/internal/validation"
)

type CreateEventUseCase struct {
	eventRepo repository.EventRepository
}

func NewCreateEventUseCase(eventRepo repository.EventRepository) *CreateEventUseCase {
	return &CreateEventUseCase{eventRepo: eventRepo}
}

// Execute создаёт событие в статусе OPEN. Создавать события могут клиенты и администраторы.
func (uc *CreateEventUseCase) Execute(ctx context.Context, actor entity.Actor, attrs entity.EventAttributes) (*entity.Event, error) {
	if actor.IsProfessional() {
		return nil, apperror.ErrForbidden
	}

	if err := validation.ValidateEvent(validation.EventInput{
		Name:          attrs.Name,
		Description:   attrs.Description,
		GuestCount:    attrs.GuestCount,
		City:          attrs.City,
		State:         attrs.State,
		CuisineStyles: attrs.CuisineStyles,
		ServiceTypes:  attrs.ServiceTypes,
	}); err != nil {
		return nil, err
	}

	event, err := entity.NewEvent(actor.ID, attrs, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	err = uc.eventRepo.Create(ctx, event)
	metrics.RecordLifecycle("create_event", err)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"client_id": event.ClientID,
	}).Info("событие создано")

	return event, nil
}
