package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/metrics"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type DeleteEventUseCase struct {
	tx repository.Transactor
}

func NewDeleteEventUseCase(tx repository.Transactor) *DeleteEventUseCase {
	return &DeleteEventUseCase{tx: tx}
}

// Execute физически удаляет событие вместе с предложениями. Только для администраторов.
func (uc *DeleteEventUseCase) Execute(ctx context.Context, eventID uuid.UUID, actor entity.Actor) error {
	if !actor.IsAdmin() {
		return apperror.ErrForbidden
	}

	err := uc.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if _, err := repos.Events.FindByIDForUpdate(ctx, eventID); err != nil {
			return err
		}
		if err := repos.Proposals.DeleteByEventID(ctx, eventID); err != nil {
			return err
		}
		return repos.Events.Delete(ctx, eventID)
	})
	metrics.RecordLifecycle("delete_event", err)
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"event_id": eventID,
		"actor_id": actor.ID,
	}).Warn("событие удалено администратором")
	return nil
}
