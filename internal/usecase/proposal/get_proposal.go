package proposal

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type GetProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	eventRepo    repository.EventRepository
}

func NewGetProposalUseCase(proposalRepo repository.ProposalRepository, eventRepo repository.EventRepository) *GetProposalUseCase {
	return &GetProposalUseCase{proposalRepo: proposalRepo, eventRepo: eventRepo}
}

// Execute возвращает предложение автору, владельцу события или администратору.
func (uc *GetProposalUseCase) Execute(ctx context.Context, proposalID uuid.UUID, actor entity.Actor) (*entity.Proposal, error) {
	proposal, err := uc.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.IsOwnedBy(actor.ID) || actor.IsAdmin() {
		return proposal, nil
	}

	event, err := uc.eventRepo.FindByID(ctx, proposal.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(actor.ID) {
		return nil, apperror.ErrForbidden
	}
	return proposal, nil
}

type ListEventProposalsUseCase struct {
	proposalRepo repository.ProposalRepository
	eventRepo    repository.EventRepository
}

func NewListEventProposalsUseCase(proposalRepo repository.ProposalRepository, eventRepo repository.EventRepository) *ListEventProposalsUseCase {
	return &ListEventProposalsUseCase{proposalRepo: proposalRepo, eventRepo: eventRepo}
}

func (uc *ListEventProposalsUseCase) Execute(ctx context.Context, eventID uuid.UUID, actor entity.Actor) ([]*entity.Proposal, error) {
	event, err := uc.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	return uc.proposalRepo.FindByEventID(ctx, eventID)
}

type ListMyProposalsUseCase struct {
	proposalRepo repository.ProposalRepository
}

func NewListMyProposalsUseCase(proposalRepo repository.ProposalRepository) *ListMyProposalsUseCase {
	return &ListMyProposalsUseCase{proposalRepo: proposalRepo}
}

func (uc *ListMyProposalsUseCase) Execute(ctx context.Context, professionalID uuid.UUID) ([]*entity.Proposal, error) {
	return uc.proposalRepo.FindByProfessionalID(ctx, professionalID)
}
