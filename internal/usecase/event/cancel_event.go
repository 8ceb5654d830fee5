package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/metrics"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type CancelEventUseCase struct {
	tx      repository.Transactor
	emitter domainevent.Emitter
}

func NewCancelEventUseCase(tx repository.Transactor, emitter domainevent.Emitter) *CancelEventUseCase {
	return &CancelEventUseCase{tx: tx, emitter: emitter}
}

// Execute отменяет событие и отклоняет все ожидающие предложения в одной транзакции.
// Отменить может владелец события или администратор.
func (uc *CancelEventUseCase) Execute(ctx context.Context, eventID uuid.UUID, actor entity.Actor) (*entity.Event, error) {
	var (
		event    *entity.Event
		rejected []*entity.Proposal
	)

	err := uc.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		e, err := repos.Events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if !e.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
			return apperror.ErrForbidden
		}

		now := time.Now().UTC()
		if err := e.Cancel(now); err != nil {
			return err
		}
		if err := repos.Events.UpdateStatus(ctx, e, valueobject.EventStatusOpen); err != nil {
			return err
		}

		rejected, err = repos.Proposals.RejectPendingByEvent(ctx, e.ID, nil, now)
		if err != nil {
			return err
		}
		event = e
		return nil
	})
	metrics.RecordLifecycle("cancel_event", err)
	if err != nil {
		return nil, err
	}

	records := make([]domainevent.Record, 0, len(rejected))
	for _, p := range rejected {
		records = append(records, domainevent.EventCancelled(p.ProfessionalID, event.ID, p.ID, event.UpdatedAt))
	}
	uc.emitter.Emit(ctx, records...)

	logger.Log.WithFields(logrus.Fields{
		"event_id": event.ID,
		"actor_id": actor.ID,
		"rejected": len(rejected),
	}).Info("событие отменено")

	return event, nil
}
