package proposal

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
	eventuc "github.com/ignatzorin/gastro-backend/internal/usecase/event"
)

type RespondProposalUseCase struct {
	tx      repository.Transactor
	emitter domainevent.Emitter
}

func NewRespondProposalUseCase(tx repository.Transactor, emitter domainevent.Emitter) *RespondProposalUseCase {
	return &RespondProposalUseCase{tx: tx, emitter: emitter}
}

// Execute принимает или отклоняет предложение от имени владельца события.
// Принятие закрывает событие и отклоняет остальные ожидающие предложения в той же транзакции.
func (uc *RespondProposalUseCase) Execute(ctx context.Context, proposalID uuid.UUID, actor entity.Actor, action valueobject.ResponseAction) (*entity.Proposal, error) {
	var (
		proposal *entity.Proposal
		siblings []*entity.Proposal
	)

	err := uc.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		p, err := repos.Proposals.FindByID(ctx, proposalID)
		if err != nil {
			return err
		}

		event, err := repos.Events.FindByIDForUpdate(ctx, p.EventID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.ErrProposalNotFound
			}
			return err
		}
		if !event.IsOwnedBy(actor.ID) {
			return apperror.ErrForbidden
		}

		// Перечитываем под блокировкой события: конкурентное принятие могло уже отклонить это предложение.
		p, err = repos.Proposals.FindByID(ctx, proposalID)
		if err != nil {
			return err
		}
		if !p.IsPending() || !event.AcceptsProposals() {
			return apperror.ErrProposalUnavailable
		}

		now := time.Now().UTC()
		switch action {
		case valueobject.ResponseActionAccept:
			if err := p.Accept(now); err != nil {
				return err
			}
			if err := repos.Proposals.UpdateStatus(ctx, p, valueobject.ProposalStatusPending); err != nil {
				return err
			}
			if _, err := eventuc.Close(ctx, repos, event.ID, p.ID, now); err != nil {
				if apperror.IsInvalidState(err) {
					return apperror.ErrProposalUnavailable
				}
				return err
			}
			siblings, err = repos.Proposals.RejectPendingByEvent(ctx, event.ID, &p.ID, now)
			if err != nil {
				return err
			}
		case valueobject.ResponseActionReject:
			if err := p.Reject(now); err != nil {
				return err
			}
			if err := repos.Proposals.UpdateStatus(ctx, p, valueobject.ProposalStatusPending); err != nil {
				return err
			}
		default:
			return apperror.New(apperror.ErrCodeValidation, "ação inválida")
		}

		proposal = p
		return nil
	})
	metrics.RecordLifecycle(string(action)+"_proposal", err)
	if err != nil {
		return nil, err
	}

	at := *proposal.RespondedAt
	records := make([]domainevent.Record, 0, len(siblings)+1)
	if proposal.IsAccepted() {
		records = append(records, domainevent.ProposalAccepted(proposal.ProfessionalID, proposal.EventID, proposal.ID, at))
	} else {
		records = append(records, domainevent.ProposalRejected(proposal.ProfessionalID, proposal.EventID, proposal.ID, false, at))
	}
	for _, s := range siblings {
		records = append(records, domainevent.ProposalRejected(s.ProfessionalID, s.EventID, s.ID, true, at))
	}
	uc.emitter.Emit(ctx, records...)

	logger.Log.WithFields(logrus.Fields{
		"event_id":    proposal.EventID,
		"proposal_id": proposal.ID,
		"actor_id":    actor.ID,
		"action":      action,
		"rejected":    len(siblings),
	}).Info("ответ на предложение сохранён")

	return proposal, nil
}
