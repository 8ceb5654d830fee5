// Package domainevent описывает внутренние уведомления о переходах жизненного цикла,
// которые эмиттер раздаёт подписчикам после фиксации транзакции.
package domainevent

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindProposalCreated  Kind = "proposal.created"
	KindProposalAccepted Kind = "proposal.accepted"
	KindProposalRejected Kind = "proposal.rejected"
	KindEventCancelled   Kind = "event.cancelled"
	KindEventMatched     Kind = "event.matched"
	KindReviewCreated    Kind = "review.created"
)

// Record - одно доменное событие, адресованное конкретному получателю.
type Record struct {
	ID          uuid.UUID      `json:"id"`
	Kind        Kind           `json:"kind"`
	RecipientID uuid.UUID      `json:"recipient_id"`
	EventID     uuid.UUID      `json:"event_id"`
	ProposalID  *uuid.UUID     `json:"proposal_id,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

func newRecord(kind Kind, recipientID, eventID uuid.UUID, proposalID *uuid.UUID, data map[string]any, at time.Time) Record {
	return Record{
		ID:          uuid.New(),
		Kind:        kind,
		RecipientID: recipientID,
		EventID:     eventID,
		ProposalID:  proposalID,
		Data:        data,
		OccurredAt:  at,
	}
}

// ProposalCreated адресовано клиенту-владельцу события.
func ProposalCreated(clientID, eventID, proposalID, professionalID uuid.UUID, totalPrice float64, at time.Time) Record {
	return newRecord(KindProposalCreated, clientID, eventID, &proposalID, map[string]any{
		"professional_id": professionalID,
		"total_price":     totalPrice,
		"message":         "Você recebeu uma nova proposta",
	}, at)
}

// ProposalAccepted адресовано профессионалу, чьё предложение приняли.
func ProposalAccepted(professionalID, eventID, proposalID uuid.UUID, at time.Time) Record {
	return newRecord(KindProposalAccepted, professionalID, eventID, &proposalID, map[string]any{
		"message": "Sua proposta foi aceita",
	}, at)
}

// ProposalRejected адресовано профессионалу; auto=true, если отклонено из-за выбора другого предложения.
func ProposalRejected(professionalID, eventID, proposalID uuid.UUID, auto bool, at time.Time) Record {
	return newRecord(KindProposalRejected, professionalID, eventID, &proposalID, map[string]any{
		"auto":    auto,
		"message": "Sua proposta não foi selecionada",
	}, at)
}

// EventCancelled отправляется каждому профессионалу, чьё предложение было затронуто отменой.
func EventCancelled(professionalID, eventID, proposalID uuid.UUID, at time.Time) Record {
	return newRecord(KindEventCancelled, professionalID, eventID, &proposalID, map[string]any{
		"message": "O evento foi cancelado pelo cliente",
	}, at)
}

// EventMatched - проактивное приглашение профессионалу с высокой совместимостью.
func EventMatched(professionalID, eventID uuid.UUID, score int, reasons []string, at time.Time) Record {
	return newRecord(KindEventMatched, professionalID, eventID, nil, map[string]any{
		"score":   score,
		"reasons": reasons,
		"message": "Um novo evento combina com o seu perfil",
	}, at)
}

// ReviewCreated запускает пересчёт рейтинга профессионала.
func ReviewCreated(professionalID, eventID, reviewID uuid.UUID, rating int, at time.Time) Record {
	return newRecord(KindReviewCreated, professionalID, eventID, nil, map[string]any{
		"review_id": reviewID,
		"rating":    rating,
		"message":   "Você recebeu uma nova avaliação",
	}, at)
}

// Emitter принимает доменные события после фиксации транзакции. Доставка best-effort:
// ошибки подписчиков не возвращаются вызывающему.
type Emitter interface {
	Emit(ctx context.Context, records ...Record)
}
