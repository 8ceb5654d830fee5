package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/usecase/matching"
)

type CreateEventRequest struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	EventType     string    `json:"event_type"`
	Date          time.Time `json:"date"`
	GuestCount    int       `json:"guest_count"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	CuisineStyles []string  `json:"cuisine_styles"`
	ServiceTypes  []string  `json:"service_types"`
	PriceRange    string    `json:"price_range"`
}

func (r CreateEventRequest) ToAttributes() entity.EventAttributes {
	return entity.EventAttributes{
		Name:          r.Name,
		Description:   r.Description,
		EventType:     r.EventType,
		Date:          r.Date,
		GuestCount:    r.GuestCount,
		City:          r.City,
		State:         r.State,
		CuisineStyles: r.CuisineStyles,
		ServiceTypes:  r.ServiceTypes,
		PriceRange:    r.PriceRange,
	}
}

type EventResponse struct {
	ID              uuid.UUID  `json:"id"`
	ClientID        uuid.UUID  `json:"client_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	EventType       string     `json:"event_type"`
	EventTypeLabel  string     `json:"event_type_label"`
	Date            time.Time  `json:"date"`
	GuestCount      int        `json:"guest_count"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	CuisineStyles   []string   `json:"cuisine_styles"`
	ServiceTypes    []string   `json:"service_types"`
	PriceRange      string     `json:"price_range"`
	MaxBudget       float64    `json:"max_budget"`
	Status          string     `json:"status"`
	HiredProposalID *uuid.UUID `json:"hired_proposal_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToEventResponse(e *entity.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		ClientID:        e.ClientID,
		Name:            e.Name,
		Description:     e.Description,
		EventType:       string(e.EventType),
		EventTypeLabel:  e.EventType.Label(),
		Date:            e.Date,
		GuestCount:      e.GuestCount,
		City:            e.City,
		State:           e.State,
		CuisineStyles:   nonNil(e.CuisineStyles),
		ServiceTypes:    nonNil(e.ServiceTypes),
		PriceRange:      string(e.PriceRange),
		MaxBudget:       e.MaxBudget,
		Status:          string(e.Status),
		HiredProposalID: e.HiredProposalID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToEventResponses(events []*entity.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, ToEventResponse(e))
	}
	return responses
}

// BrowseEventResponse - открытое событие с процентом совпадения для профессионала.
type BrowseEventResponse struct {
	EventResponse
	MatchPercent int `json:"match_percent"`
}

func ToBrowseEventResponses(matches []matching.EventMatch) []BrowseEventResponse {
	responses := make([]BrowseEventResponse, 0, len(matches))
	for _, m := range matches {
		responses = append(responses, BrowseEventResponse{
			EventResponse: ToEventResponse(m.Event),
			MatchPercent:  m.MatchPercent,
		})
	}
	return responses
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
