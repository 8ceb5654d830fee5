package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

// RatingRecalculator - подписчик эмиттера, пересчитывающий агрегаты профиля по полному набору
// отзывов и принятых предложений. Повторный или запоздавший пересчёт даёт тот же результат.
type RatingRecalculator struct {
	profileRepo repository.ProfileRepository
}

func NewRatingRecalculator(profileRepo repository.ProfileRepository) *RatingRecalculator {
	return &RatingRecalculator{profileRepo: profileRepo}
}

func (r *RatingRecalculator) Name() string {
	return "rating"
}

func (r *RatingRecalculator) Deliver(ctx context.Context, record domainevent.Record) error {
	switch record.Kind {
	case domainevent.KindReviewCreated, domainevent.KindProposalAccepted:
		return r.Recalculate(ctx, record.RecipientID)
	}
	return nil
}

// Recalculate записывает рейтинг, число отзывов и завершённых событий профессионала.
// Отсутствие профиля не считается ошибкой.
func (r *RatingRecalculator) Recalculate(ctx context.Context, professionalID uuid.UUID) error {
	stats, err := r.profileRepo.RecalculateStats(ctx, professionalID, time.Now().UTC())
	if apperror.IsNotFound(err) {
		logger.Log.WithField("professional_id", professionalID).Debug("профиль не найден, агрегаты не обновлены")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"professional_id": professionalID,
		"rating":          stats.Rating,
		"reviews":         stats.ReviewCount,
		"completed":       stats.CompletedEvents,
	}).Info("рейтинг пересчитан")
	return nil
}
