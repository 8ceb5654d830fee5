package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/domainevent"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/metrics"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gastro-backend/internal/validation"
)

var errEventNotHired = apperror.New(apperror.ErrCodeInvalidState, "só é possível avaliar eventos com profissional contratado")

type CreateReviewInput struct {
	EventID uuid.UUID
	Rating  int
	Comment string
}

type CreateReviewUseCase struct {
	tx      repository.Transactor
	emitter domainevent.Emitter
}

func NewCreateReviewUseCase(tx repository.Transactor, emitter domainevent.Emitter) *CreateReviewUseCase {
	return &CreateReviewUseCase{tx: tx, emitter: emitter}
}

// Execute сохраняет отзыв клиента о нанятом профессионале. На событие допускается один отзыв.
func (uc *CreateReviewUseCase) Execute(ctx context.Context, actor entity.Actor, input CreateReviewInput) (*entity.Review, error) {
	if err := validation.ValidateReviewComment(input.Comment); err != nil {
		return nil, err
	}

	var review *entity.Review
	err := uc.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		event, err := repos.Events.FindByID(ctx, input.EventID)
		if err != nil {
			return err
		}
		if !event.IsOwnedBy(actor.ID) {
			return apperror.ErrForbidden
		}
		if event.Status != valueobject.EventStatusClosed || event.HiredProposalID == nil {
			return errEventNotHired
		}

		hired, err := repos.Proposals.FindByID(ctx, *event.HiredProposalID)
		if err != nil {
			return err
		}

		r, err := entity.NewReview(event.ID, actor.ID, hired.ProfessionalID, input.Rating, input.Comment, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := repos.Reviews.Create(ctx, r); err != nil {
			return err
		}
		review = r
		return nil
	})
	metrics.RecordLifecycle("create_review", err)
	if err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, domainevent.ReviewCreated(review.ProfessionalID, review.EventID, review.ID, review.Rating, review.CreatedAt))

	logger.Log.WithFields(logrus.Fields{
		"event_id":        review.EventID,
		"professional_id": review.ProfessionalID,
		"rating":          review.Rating,
	}).Info("отзыв сохранён")

	return review, nil
}
