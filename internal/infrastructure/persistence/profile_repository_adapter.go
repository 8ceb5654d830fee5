package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

const profileColumns = `professional_id, display_name, cuisine_styles, event_types, service_types, capacity_tiers,
	price_ranges, city, state, service_radius_km, rating, review_count, completed_events, updated_at`

type ProfileRepositoryAdapter struct {
	db dbtx
}

func NewProfileRepositoryAdapter(db *sqlx.DB) *ProfileRepositoryAdapter {
	return &ProfileRepositoryAdapter{db: db}
}

// Upsert не трогает rating, review_count и completed_events существующей строки.
func (r *ProfileRepositoryAdapter) Upsert(ctx context.Context, profile *entity.ProfessionalProfile) error {
	query := `
		INSERT INTO professional_profiles (
			professional_id, display_name, cuisine_styles, event_types, service_types, capacity_tiers,
			price_ranges, city, state, service_radius_km, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		ON CONFLICT (professional_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			cuisine_styles = EXCLUDED.cuisine_styles,
			event_types = EXCLUDED.event_types,
			service_types = EXCLUDED.service_types,
			capacity_tiers = EXCLUDED.capacity_tiers,
			price_ranges = EXCLUDED.price_ranges,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			service_radius_km = EXCLUDED.service_radius_km,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.ProfessionalID, profile.DisplayName,
		jsonList(profile.CuisineStyles), eventTypesToColumn(profile.EventTypes), jsonList(profile.ServiceTypes),
		jsonList(profile.CapacityTiers), jsonList(profile.PriceRanges),
		profile.City, profile.State, profile.ServiceRadiusKm, profile.UpdatedAt,
	)
	return mapError(err, nil, "não foi possível salvar o perfil")
}

func (r *ProfileRepositoryAdapter) FindByID(ctx context.Context, professionalID uuid.UUID) (*entity.ProfessionalProfile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM professional_profiles WHERE professional_id = $1`
	if err := r.db.GetContext(ctx, &row, query, professionalID); err != nil {
		return nil, mapError(err, apperror.ErrProfileNotFound, "não foi possível obter o perfil")
	}
	return row.toEntity(), nil
}

// List возвращает профили в порядке создания: от этого зависит стабильность ранжирования.
func (r *ProfileRepositoryAdapter) List(ctx context.Context) ([]*entity.ProfessionalProfile, error) {
	var rows []profileRow
	query := `SELECT ` + profileColumns + ` FROM professional_profiles ORDER BY created_at ASC, professional_id ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, mapError(err, nil, "não foi possível listar os perfis")
	}
	result := make([]*entity.ProfessionalProfile, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

const recalculateStatsQuery = `
	UPDATE professional_profiles p SET
		rating = COALESCE((SELECT round(avg(r.rating)::numeric, 2) FROM reviews r WHERE r.professional_id = p.professional_id), 0),
		review_count = (SELECT count(*) FROM reviews r WHERE r.professional_id = p.professional_id),
		completed_events = (
			SELECT count(*) FROM proposals pr
			WHERE pr.professional_id = p.professional_id AND pr.status = 'ACCEPTED'
		),
		updated_at = $2
	WHERE p.professional_id = $1
	RETURNING rating, review_count, completed_events, updated_at
`

// RecalculateStats сначала блокирует строку профиля, затем считает агрегаты отдельным оператором:
// в READ COMMITTED его снимок включает все отзывы, зафиксированные до получения блокировки.
func (r *ProfileRepositoryAdapter) RecalculateStats(ctx context.Context, professionalID uuid.UUID, now time.Time) (repository.ProfileStats, error) {
	var row statsRow
	err := runInTx(ctx, r.db, func(q dbtx) error {
		var locked uuid.UUID
		lockQuery := `SELECT professional_id FROM professional_profiles WHERE professional_id = $1 FOR UPDATE`
		if err := q.GetContext(ctx, &locked, lockQuery, professionalID); err != nil {
			return mapError(err, apperror.ErrProfileNotFound, "não foi possível bloquear o perfil")
		}
		if err := q.GetContext(ctx, &row, recalculateStatsQuery, professionalID, now); err != nil {
			return mapError(err, apperror.ErrProfileNotFound, "não foi possível atualizar as estatísticas do perfil")
		}
		return nil
	})
	if err != nil {
		return repository.ProfileStats{}, err
	}
	return repository.ProfileStats{
		Rating:          row.Rating,
		ReviewCount:     row.ReviewCount,
		CompletedEvents: row.CompletedEvents,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

type statsRow struct {
	Rating          float64   `db:"rating"`
	ReviewCount     int       `db:"review_count"`
	CompletedEvents int       `db:"completed_events"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type profileRow struct {
	ProfessionalID  uuid.UUID `db:"professional_id"`
	DisplayName     string    `db:"display_name"`
	CuisineStyles   jsonList  `db:"cuisine_styles"`
	EventTypes      jsonList  `db:"event_types"`
	ServiceTypes    jsonList  `db:"service_types"`
	CapacityTiers   jsonList  `db:"capacity_tiers"`
	PriceRanges     jsonList  `db:"price_ranges"`
	City            string    `db:"city"`
	State           string    `db:"state"`
	ServiceRadiusKm int       `db:"service_radius_km"`
	Rating          float64   `db:"rating"`
	ReviewCount     int       `db:"review_count"`
	CompletedEvents int       `db:"completed_events"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (p *profileRow) toEntity() *entity.ProfessionalProfile {
	return &entity.ProfessionalProfile{
		ProfessionalID:  p.ProfessionalID,
		DisplayName:     p.DisplayName,
		CuisineStyles:   cuisineStylesFromColumn(p.CuisineStyles),
		EventTypes:      eventTypesFromColumn(p.EventTypes),
		ServiceTypes:    serviceTypesFromColumn(p.ServiceTypes),
		CapacityTiers:   capacityTiersFromColumn(p.CapacityTiers),
		PriceRanges:     priceRangesFromColumn(p.PriceRanges),
		City:            p.City,
		State:           p.State,
		ServiceRadiusKm: p.ServiceRadiusKm,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		CompletedEvents: p.CompletedEvents,
		UpdatedAt:       p.UpdatedAt,
	}
}
