package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

const (
	DefaultEventName = "Evento sem título"
	MinGuestCount    = 10
)

type Event struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	Name            string
	Description     string
	EventType       valueobject.EventType
	Date            time.Time
	GuestCount      int
	City            string
	State           string
	CuisineStyles   []string
	ServiceTypes    []string
	PriceRange      valueobject.PriceRange
	MaxBudget       float64
	Status          valueobject.EventStatus
	HiredProposalID *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EventAttributes - поля, которые клиент передаёт при создании события.
type EventAttributes struct {
	Name          string
	Description   string
	EventType     string
	Date          time.Time
	GuestCount    int
	City          string
	State         string
	CuisineStyles []string
	ServiceTypes  []string
	PriceRange    string
}

func NewEvent(clientID uuid.UUID, attrs EventAttributes, now time.Time) (*Event, error) {
	if attrs.Date.IsZero() {
		return nil, apperror.New(apperror.ErrCodeValidation, "a data do evento é obrigatória")
	}
	if attrs.Date.Before(now) {
		return nil, apperror.New(apperror.ErrCodeValidation, "a data do evento não pode estar no passado")
	}
	city := strings.TrimSpace(attrs.City)
	if city == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "a cidade do evento é obrigatória")
	}
	state := strings.TrimSpace(attrs.State)
	if state == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "o estado do evento é obrigatório")
	}

	priceRange := valueobject.PriceRange(strings.ToUpper(strings.TrimSpace(attrs.PriceRange)))
	if priceRange != "" && !priceRange.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "faixa de preço inválida")
	}

	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		name = DefaultEventName
	}
	guests := attrs.GuestCount
	if guests < MinGuestCount {
		guests = MinGuestCount
	}

	return &Event{
		ID:            uuid.New(),
		ClientID:      clientID,
		Name:          name,
		Description:   strings.TrimSpace(attrs.Description),
		EventType:     valueobject.ParseEventType(attrs.EventType),
		Date:          attrs.Date,
		GuestCount:    guests,
		City:          city,
		State:         strings.ToUpper(state),
		CuisineStyles: valueobject.NormalizeSet(attrs.CuisineStyles),
		ServiceTypes:  valueobject.NormalizeSet(attrs.ServiceTypes),
		PriceRange:    priceRange,
		MaxBudget:     priceRange.MaxBudget(),
		Status:        valueobject.EventStatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Close фиксирует нанятое предложение. Вызывается только в рамках принятия предложения.
func (e *Event) Close(hiredProposalID uuid.UUID, at time.Time) error {
	if !e.Status.CanTransitionTo(valueobject.EventStatusClosed) {
		return apperror.ErrEventNotOpen
	}
	e.Status = valueobject.EventStatusClosed
	e.HiredProposalID = &hiredProposalID
	e.UpdatedAt = at
	return nil
}

func (e *Event) Cancel(at time.Time) error {
	if !e.Status.CanTransitionTo(valueobject.EventStatusCancelled) {
		return apperror.ErrEventAlreadyClosed
	}
	e.Status = valueobject.EventStatusCancelled
	e.UpdatedAt = at
	return nil
}

func (e *Event) AcceptsProposals() bool {
	return e.Status == valueobject.EventStatusOpen
}

func (e *Event) IsOwnedBy(userID uuid.UUID) bool {
	return e.ClientID == userID
}

// HasConsistentHire проверяет инвариант: нанятое предложение есть тогда и только тогда, когда событие закрыто.
func (e *Event) HasConsistentHire() bool {
	return (e.HiredProposalID != nil) == (e.Status == valueobject.EventStatusClosed)
}
