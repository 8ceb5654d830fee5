package dto

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/gastro-backend/internal/usecase/matching"
)

type MatchResponse struct {
	ProfessionalID  uuid.UUID `json:"professional_id"`
	DisplayName     string    `json:"display_name"`
	City            string    `json:"city"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	CompletedEvents int       `json:"completed_events"`
	Score           int       `json:"score"`
	Reasons         []string  `json:"reasons"`
}

func ToMatchResponses(matches []matching.Match) []MatchResponse {
	responses := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		reasons := m.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		responses = append(responses, MatchResponse{
			ProfessionalID:  m.ProfessionalID,
			DisplayName:     m.DisplayName,
			City:            m.City,
			Rating:          m.Rating,
			ReviewCount:     m.ReviewCount,
			CompletedEvents: m.CompletedEvents,
			Score:           m.Score,
			Reasons:         reasons,
		})
	}
	return responses
}

type NotifyMatchesResponse struct {
	Notified int             `json:"notified"`
	Matches  []MatchResponse `json:"matches"`
}
