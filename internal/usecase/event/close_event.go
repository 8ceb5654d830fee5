package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
)

// Close переводит событие в CLOSED с нанятым предложением. Принимает только репозитории,
// привязанные к транзакции принятия предложения, и не доступен обработчикам напрямую.
func Close(ctx context.Context, repos repository.Repositories, eventID, hiredProposalID uuid.UUID, at time.Time) (*entity.Event, error) {
	event, err := repos.Events.FindByIDForUpdate(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.Close(hiredProposalID, at); err != nil {
		return nil, err
	}
	if err := repos.Events.UpdateStatus(ctx, event, valueobject.EventStatusOpen); err != nil {
		return nil, err
	}
	return event, nil
}
