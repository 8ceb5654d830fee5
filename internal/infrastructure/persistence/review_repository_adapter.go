package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
)

type ReviewRepositoryAdapter struct {
	db dbtx
}

func NewReviewRepositoryAdapter(db *sqlx.DB) *ReviewRepositoryAdapter {
	return &ReviewRepositoryAdapter{db: db}
}

func (r *ReviewRepositoryAdapter) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, event_id, client_id, professional_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.EventID, review.ClientID, review.ProfessionalID, review.Rating, review.Comment, review.CreatedAt,
	)
	return mapError(err, nil, "não foi possível salvar a avaliação")
}

func (r *ReviewRepositoryAdapter) FindByProfessionalID(ctx context.Context, professionalID uuid.UUID) ([]*entity.Review, error) {
	var rows []reviewRow
	query := `
		SELECT id, event_id, client_id, professional_id, rating, comment, created_at
		FROM reviews WHERE professional_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &rows, query, professionalID); err != nil {
		return nil, mapError(err, nil, "não foi possível listar as avaliações")
	}
	result := make([]*entity.Review, len(rows))
	for i, row := range rows {
		result[i] = &entity.Review{
			ID:             row.ID,
			EventID:        row.EventID,
			ClientID:       row.ClientID,
			ProfessionalID: row.ProfessionalID,
			Rating:         row.Rating,
			Comment:        row.Comment,
			CreatedAt:      row.CreatedAt,
		}
	}
	return result, nil
}

type reviewRow struct {
	ID             uuid.UUID `db:"id"`
	EventID        uuid.UUID `db:"event_id"`
	ClientID       uuid.UUID `db:"client_id"`
	ProfessionalID uuid.UUID `db:"professional_id"`
	Rating         int       `db:"rating"`
	Comment        string    `db:"comment"`
	CreatedAt      time.Time `db:"created_at"`
}
