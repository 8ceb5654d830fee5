package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
)

type ReviewRepository interface {
	// Create возвращает ErrDuplicateReview, если отзыв на событие уже оставлен.
	Create(ctx context.Context, review *entity.Review) error
	FindByProfessionalID(ctx context.Context, professionalID uuid.UUID) ([]*entity.Review, error)
}
