package valueobject

import "github.com/ignatzorin/gastro-backend/internal/pkg/apperror"

type EventStatus string

const (
	EventStatusOpen      EventStatus = "OPEN"
	EventStatusClosed    EventStatus = "CLOSED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusOpen, EventStatusClosed, EventStatusCancelled:
		return true
	}
	return false
}

// IsTerminal сообщает, что из статуса больше нет переходов.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusClosed || s == EventStatusCancelled
}

func (s EventStatus) CanTransitionTo(newStatus EventStatus) bool {
	transitions := map[EventStatus][]EventStatus{
		EventStatusOpen:      {EventStatusClosed, EventStatusCancelled},
		EventStatusClosed:    {},
		EventStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

func NewEventStatus(status string) (EventStatus, error) {
	s := EventStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "status de evento inválido")
	}
	return s, nil
}

type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "PENDING"
	ProposalStatusAccepted ProposalStatus = "ACCEPTED"
	ProposalStatusRejected ProposalStatus = "REJECTED"
	ProposalStatusExpired  ProposalStatus = "EXPIRED"
)

func (s ProposalStatus) IsValid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusExpired:
		return true
	}
	return false
}

// IsTerminal: из PENDING можно выйти только один раз.
func (s ProposalStatus) IsTerminal() bool {
	return s != ProposalStatusPending
}

func NewProposalStatus(status string) (ProposalStatus, error) {
	s := ProposalStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "status de proposta inválido")
	}
	return s, nil
}

// ResponseAction - решение клиента по предложению.
type ResponseAction string

const (
	ResponseActionAccept ResponseAction = "accept"
	ResponseActionReject ResponseAction = "reject"
)

func NewResponseAction(action string) (ResponseAction, error) {
	switch a := ResponseAction(action); a {
	case ResponseActionAccept, ResponseActionReject:
		return a, nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "ação inválida, use accept ou reject")
}
