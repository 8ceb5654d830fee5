package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
)

type UpsertProfileRequest struct {
	DisplayName     string   `json:"display_name"`
	CuisineStyles   []string `json:"cuisine_styles"`
	EventTypes      []string `json:"event_types"`
	ServiceTypes    []string `json:"service_types"`
	CapacityTiers   []string `json:"capacity_tiers"`
	PriceRanges     []string `json:"price_ranges"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	ServiceRadiusKm int      `json:"service_radius_km"`
}

func (r UpsertProfileRequest) ToAttributes() entity.ProfileAttributes {
	return entity.ProfileAttributes{
		DisplayName:     r.DisplayName,
		CuisineStyles:   r.CuisineStyles,
		EventTypes:      r.EventTypes,
		ServiceTypes:    r.ServiceTypes,
		CapacityTiers:   r.CapacityTiers,
		PriceRanges:     r.PriceRanges,
		City:            r.City,
		State:           r.State,
		ServiceRadiusKm: r.ServiceRadiusKm,
	}
}

type ProfileResponse struct {
	ProfessionalID  uuid.UUID `json:"professional_id"`
	DisplayName     string    `json:"display_name"`
	CuisineStyles   []string  `json:"cuisine_styles"`
	EventTypes      []string  `json:"event_types"`
	ServiceTypes    []string  `json:"service_types"`
	CapacityTiers   []string  `json:"capacity_tiers"`
	PriceRanges     []string  `json:"price_ranges"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	ServiceRadiusKm int       `json:"service_radius_km"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	CompletedEvents int       `json:"completed_events"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToProfileResponse(p *entity.ProfessionalProfile) ProfileResponse {
	eventTypes := make([]string, 0, len(p.EventTypes))
	for _, t := range p.EventTypes {
		eventTypes = append(eventTypes, string(t))
	}
	return ProfileResponse{
		ProfessionalID:  p.ProfessionalID,
		DisplayName:     p.DisplayName,
		CuisineStyles:   nonNil(p.CuisineStyles),
		EventTypes:      eventTypes,
		ServiceTypes:    nonNil(p.ServiceTypes),
		CapacityTiers:   nonNil(p.CapacityTiers),
		PriceRanges:     nonNil(p.PriceRanges),
		City:            p.City,
		State:           p.State,
		ServiceRadiusKm: p.ServiceRadiusKm,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		CompletedEvents: p.CompletedEvents,
		UpdatedAt:       p.UpdatedAt,
	}
}
