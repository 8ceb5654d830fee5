package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
)

type CreateProposalRequest struct {
	TotalPrice    float64  `json:"total_price"`
	PricePerGuest *float64 `json:"price_per_guest"`
	Message       string   `json:"message"`
}

type RespondProposalRequest struct {
	Action string `json:"action"`
}

type ProposalResponse struct {
	ID             uuid.UUID  `json:"id"`
	EventID        uuid.UUID  `json:"event_id"`
	ProfessionalID uuid.UUID  `json:"professional_id"`
	TotalPrice     float64    `json:"total_price"`
	Currency       string     `json:"currency"`
	PricePerGuest  *float64   `json:"price_per_guest"`
	Message        string     `json:"message"`
	Status         string     `json:"status"`
	SentAt         time.Time  `json:"sent_at"`
	RespondedAt    *time.Time `json:"responded_at"`
}

func ToProposalResponse(p *entity.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:             p.ID,
		EventID:        p.EventID,
		ProfessionalID: p.ProfessionalID,
		TotalPrice:     p.TotalPrice.Amount,
		Currency:       p.TotalPrice.Currency,
		PricePerGuest:  p.PricePerGuest,
		Message:        p.Message,
		Status:         string(p.Status),
		SentAt:         p.SentAt,
		RespondedAt:    p.RespondedAt,
	}
}

func ToProposalResponses(proposals []*entity.Proposal) []ProposalResponse {
	responses := make([]ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		responses = append(responses, ToProposalResponse(p))
	}
	return responses
}
