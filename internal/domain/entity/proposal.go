package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

type Proposal struct {
	ID             uuid.UUID
	EventID        uuid.UUID
	ProfessionalID uuid.UUID
	TotalPrice     valueobject.Money
	PricePerGuest  *float64
	Message        string
	Status         valueobject.ProposalStatus
	SentAt         time.Time
	RespondedAt    *time.Time
}

func NewProposal(eventID, professionalID uuid.UUID, totalPrice float64, pricePerGuest *float64, message string, now time.Time) (*Proposal, error) {
	price, err := valueobject.NewMoney(totalPrice, valueobject.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	if pricePerGuest != nil && *pricePerGuest < 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "o preço por convidado não pode ser negativo")
	}

	return &Proposal{
		ID:             uuid.New(),
		EventID:        eventID,
		ProfessionalID: professionalID,
		TotalPrice:     price,
		PricePerGuest:  pricePerGuest,
		Message:        strings.TrimSpace(message),
		Status:         valueobject.ProposalStatusPending,
		SentAt:         now,
	}, nil
}

func (p *Proposal) Accept(at time.Time) error {
	return p.respond(valueobject.ProposalStatusAccepted, at)
}

func (p *Proposal) Reject(at time.Time) error {
	return p.respond(valueobject.ProposalStatusRejected, at)
}

func (p *Proposal) respond(status valueobject.ProposalStatus, at time.Time) error {
	if p.Status != valueobject.ProposalStatusPending {
		return apperror.ErrProposalUnavailable
	}
	p.Status = status
	p.RespondedAt = &at
	return nil
}

func (p *Proposal) IsOwnedBy(userID uuid.UUID) bool {
	return p.ProfessionalID == userID
}

func (p *Proposal) IsPending() bool {
	return p.Status == valueobject.ProposalStatusPending
}

func (p *Proposal) IsAccepted() bool {
	return p.Status == valueobject.ProposalStatusAccepted
}
