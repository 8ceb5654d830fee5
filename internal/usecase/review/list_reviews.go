package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
)

type ListProfessionalReviewsUseCase struct {
	profileRepo repository.ProfileRepository
	reviewRepo  repository.ReviewRepository
}

func NewListProfessionalReviewsUseCase(profileRepo repository.ProfileRepository, reviewRepo repository.ReviewRepository) *ListProfessionalReviewsUseCase {
	return &ListProfessionalReviewsUseCase{profileRepo: profileRepo, reviewRepo: reviewRepo}
}

// Execute возвращает отзывы о профессионале, новые первыми. Профиль должен существовать.
func (uc *ListProfessionalReviewsUseCase) Execute(ctx context.Context, professionalID uuid.UUID) ([]*entity.Review, error) {
	if _, err := uc.profileRepo.FindByID(ctx, professionalID); err != nil {
		return nil, err
	}
	return uc.reviewRepo.FindByProfessionalID(ctx, professionalID)
}
