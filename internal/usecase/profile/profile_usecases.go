package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/logger"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
	"github.com/ignatzorin/gastro-backend/internal/validation"
)

type UpsertProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewUpsertProfileUseCase(profileRepo repository.ProfileRepository) *UpsertProfileUseCase {
	return &UpsertProfileUseCase{profileRepo: profileRepo}
}

// Execute создаёт или обновляет профиль текущего профессионала. Рейтинг и счётчики не меняются.
func (uc *UpsertProfileUseCase) Execute(ctx context.Context, actor entity.Actor, attrs entity.ProfileAttributes) (*entity.ProfessionalProfile, error) {
	if !actor.IsProfessional() {
		return nil, apperror.ErrForbidden
	}
	if err := validation.ValidateProfile(validation.ProfileInput{
		DisplayName:     attrs.DisplayName,
		City:            attrs.City,
		State:           attrs.State,
		ServiceRadiusKm: attrs.ServiceRadiusKm,
		Lists: map[string][]string{
			"estilos de cozinha": attrs.CuisineStyles,
			"tipos de evento":    attrs.EventTypes,
			"tipos de serviço":   attrs.ServiceTypes,
			"capacidades":        attrs.CapacityTiers,
			"faixas de preço":    attrs.PriceRanges,
		},
	}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile, err := uc.profileRepo.FindByID(ctx, actor.ID)
	switch {
	case apperror.IsNotFound(err):
		profile, err = entity.NewProfessionalProfile(actor.ID, attrs, now)
	case err == nil:
		err = profile.Apply(attrs, now)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"professional_id": profile.ProfessionalID,
	}).Info("профиль сохранён")

	return profile, nil
}

type GetProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewGetProfileUseCase(profileRepo repository.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: profileRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, professionalID uuid.UUID) (*entity.ProfessionalProfile, error) {
	return uc.profileRepo.FindByID(ctx, professionalID)
}
