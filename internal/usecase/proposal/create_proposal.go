package proposal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/metrics"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gastro-backend/internal/validation"
)

type CreateProposalInput struct {
	EventID       uuid.UUID
	TotalPrice    float64
	PricePerGuest *float64
	Message       string
}

type CreateProposalUseCase struct {
	tx      repository.Transactor
	emitter domainevent.Emitter
}

func NewCreateProposalUseCase(tx repository.Transactor, emitter domainevent.Emitter) *CreateProposalUseCase {
	return &CreateProposalUseCase{tx: tx, emitter: emitter}
}

// Execute создаёт предложение от профессионала. Проверки идут в порядке: событие существует,
// у профессионала ещё нет предложения (в любом статусе), событие открыто.
func (uc *CreateProposalUseCase) Execute(ctx context.Context, actor entity.Actor, input CreateProposalInput) (*entity.Proposal, error) {
	if !actor.IsProfessional() {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidateProposal(input.TotalPrice, input.PricePerGuest, input.Message); err != nil {
		return nil, err
	}

	var (
		proposal *entity.Proposal
		clientID uuid.UUID
	)
	err := uc.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		event, err := repos.Events.FindByIDForUpdate(ctx, input.EventID)
		if err != nil {
			return err
		}

		existing, err := repos.Proposals.FindByEventAndProfessional(ctx, event.ID, actor.ID)
		switch {
		case err == nil && existing != nil:
			return apperror.ErrDuplicateProposal
		case err != nil && !apperror.IsNotFound(err):
			return err
		}

		if !event.AcceptsProposals() {
			return apperror.ErrEventNotOpen
		}

		p, err := entity.NewProposal(event.ID, actor.ID, input.TotalPrice, input.PricePerGuest, input.Message, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := repos.Proposals.Create(ctx, p); err != nil {
			return err
		}
		proposal = p
		clientID = event.ClientID
		return nil
	})
	metrics.RecordLifecycle("create_proposal", err)
	if err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, domainevent.ProposalCreated(clientID, proposal.EventID, proposal.ID, proposal.ProfessionalID, proposal.TotalPrice.Amount, proposal.SentAt))

	logger.Log.WithFields(logrus.Fields{
		"event_id":    proposal.EventID,
		"proposal_id": proposal.ID,
		"actor_id":    actor.ID,
	}).Info("предложение отправлено")

	return proposal, nil
}
