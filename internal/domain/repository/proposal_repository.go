package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
)

type ProposalRepository interface {
	// Create возвращает ErrDuplicateProposal, если у профессионала уже есть предложение на это событие.
	Create(ctx context.Context, proposal *entity.Proposal) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Proposal, error)
	FindByProfessionalID(ctx context.Context, professionalID uuid.UUID) ([]*entity.Proposal, error)
	FindByEventAndProfessional(ctx context.Context, eventID, professionalID uuid.UUID) (*entity.Proposal, error)
	// UpdateStatus применяет ответ, только если текущий статус равен expected; иначе ErrProposalUnavailable.
	UpdateStatus(ctx context.Context, proposal *entity.Proposal, expected valueobject.ProposalStatus) error
	// RejectPendingByEvent переводит все PENDING предложения события, кроме exceptID, в REJECTED
	// и возвращает затронутые записи.
	RejectPendingByEvent(ctx context.Context, eventID uuid.UUID, exceptID *uuid.UUID, at time.Time) ([]*entity.Proposal, error)
	DeleteByEventID(ctx context.Context, eventID uuid.UUID) error
}
