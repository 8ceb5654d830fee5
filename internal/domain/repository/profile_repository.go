package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
)

// ProfileStats - производные агрегаты профиля.
type ProfileStats struct {
	Rating          float64
	ReviewCount     int
	CompletedEvents int
	UpdatedAt       time.Time
}

type ProfileRepository interface {
	// Upsert сохраняет редактируемые поля, не перезаписывая агрегаты.
	Upsert(ctx context.Context, profile *entity.ProfessionalProfile) error
	FindByID(ctx context.Context, professionalID uuid.UUID) (*entity.ProfessionalProfile, error)
	List(ctx context.Context) ([]*entity.ProfessionalProfile, error)
	// RecalculateStats пересчитывает агрегаты по полным наборам отзывов и принятых предложений
	// одной атомарной операцией: чтение и запись не разделяются конкурентным пересчётом.
	RecalculateStats(ctx context.Context, professionalID uuid.UUID, now time.Time) (ProfileStats, error)
}
