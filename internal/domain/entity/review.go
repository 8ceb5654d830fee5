package entity

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID             uuid.UUID
	EventID        uuid.UUID
	ClientID       uuid.UUID
	ProfessionalID uuid.UUID
	Rating         int
	Comment        string
	CreatedAt      time.Time
}

func NewReview(eventID, clientID, professionalID uuid.UUID, rating int, comment string, now time.Time) (*Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, apperror.New(apperror.ErrCodeValidation, "a nota deve estar entre 1 e 5")
	}
	return &Review{
		ID:             uuid.New(),
		EventID:        eventID,
		ClientID:       clientID,
		ProfessionalID: professionalID,
		Rating:         rating,
		Comment:        strings.TrimSpace(comment),
		CreatedAt:      now,
	}, nil
}

// AverageRating считает среднюю оценку по полному набору отзывов, округляя до двух знаков.
// Повторный вызов на том же наборе даёт тот же результат.
func AverageRating(reviews []*Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*100) / 100, len(reviews)
}
