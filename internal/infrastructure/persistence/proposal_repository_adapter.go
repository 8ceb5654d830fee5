package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

const proposalColumns = `id, event_id, professional_id, total_price, currency, price_per_guest, message, status, sent_at, responded_at`

type ProposalRepositoryAdapter struct {
	db dbtx
}

func NewProposalRepositoryAdapter(db *sqlx.DB) *ProposalRepositoryAdapter {
	return &ProposalRepositoryAdapter{db: db}
}

func (r *ProposalRepositoryAdapter) Create(ctx context.Context, proposal *entity.Proposal) error {
	query := `
		INSERT INTO proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		proposal.ID, proposal.EventID, proposal.ProfessionalID,
		proposal.TotalPrice.Amount, proposal.TotalPrice.Currency, proposal.PricePerGuest,
		proposal.Message, string(proposal.Status), proposal.SentAt, proposal.RespondedAt,
	)
	return mapError(err, nil, "não foi possível criar a proposta")
}

func (r *ProposalRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var row proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, mapError(err, apperror.ErrProposalNotFound, "não foi possível obter a proposta")
	}
	return row.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE event_id = $1 ORDER BY sent_at ASC`
	return r.selectMany(ctx, query, eventID)
}

func (r *ProposalRepositoryAdapter) FindByProfessionalID(ctx context.Context, professionalID uuid.UUID) ([]*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE professional_id = $1 ORDER BY sent_at DESC`
	return r.selectMany(ctx, query, professionalID)
}

func (r *ProposalRepositoryAdapter) FindByEventAndProfessional(ctx context.Context, eventID, professionalID uuid.UUID) (*entity.Proposal, error) {
	var row proposalRow
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE event_id = $1 AND professional_id = $2`
	if err := r.db.GetContext(ctx, &row, query, eventID, professionalID); err != nil {
		return nil, mapError(err, apperror.ErrProposalNotFound, "não foi possível obter a proposta")
	}
	return row.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) selectMany(ctx context.Context, query string, args ...interface{}) ([]*entity.Proposal, error) {
	var rows []proposalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(err, nil, "não foi possível listar as propostas")
	}
	result := make([]*entity.Proposal, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// UpdateStatus применяет переход только если текущий статус в БД равен expected.
// Второе принятое предложение того же события отсекается частичным уникальным индексом.
func (r *ProposalRepositoryAdapter) UpdateStatus(ctx context.Context, proposal *entity.Proposal, expected valueobject.ProposalStatus) error {
	query := `
		UPDATE proposals SET status = $2, responded_at = $3
		WHERE id = $1 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, proposal.ID, string(proposal.Status), proposal.RespondedAt, string(expected))
	if err != nil {
		return mapError(err, nil, "não foi possível atualizar a proposta")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err, nil, "não foi possível atualizar a proposta")
	}
	if affected == 0 {
		if _, err := r.FindByID(ctx, proposal.ID); err != nil {
			return err
		}
		return apperror.ErrProposalUnavailable
	}
	return nil
}

// RejectPendingByEvent отклоняет все ожидающие предложения события, кроме exceptID, и возвращает их.
func (r *ProposalRepositoryAdapter) RejectPendingByEvent(ctx context.Context, eventID uuid.UUID, exceptID *uuid.UUID, at time.Time) ([]*entity.Proposal, error) {
	query := `
		UPDATE proposals SET status = $2, responded_at = $3
		WHERE event_id = $1 AND status = $4 AND ($5::uuid IS NULL OR id <> $5::uuid)
		RETURNING ` + proposalColumns
	var rows []proposalRow
	err := r.db.SelectContext(ctx, &rows, query,
		eventID, string(valueobject.ProposalStatusRejected), at, string(valueobject.ProposalStatusPending), exceptID,
	)
	if err != nil {
		return nil, mapError(err, nil, "não foi possível rejeitar as propostas pendentes")
	}
	result := make([]*entity.Proposal, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

func (r *ProposalRepositoryAdapter) DeleteByEventID(ctx context.Context, eventID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE event_id = $1`, eventID)
	return mapError(err, nil, "não foi possível remover as propostas do evento")
}

type proposalRow struct {
	ID             uuid.UUID  `db:"id"`
	EventID        uuid.UUID  `db:"event_id"`
	ProfessionalID uuid.UUID  `db:"professional_id"`
	TotalPrice     float64    `db:"total_price"`
	Currency       string     `db:"currency"`
	PricePerGuest  *float64   `db:"price_per_guest"`
	Message        string     `db:"message"`
	Status         string     `db:"status"`
	SentAt         time.Time  `db:"sent_at"`
	RespondedAt    *time.Time `db:"responded_at"`
}

func (p *proposalRow) toEntity() *entity.Proposal {
	status, _ := valueobject.NewProposalStatus(p.Status)
	return &entity.Proposal{
		ID:             p.ID,
		EventID:        p.EventID,
		ProfessionalID: p.ProfessionalID,
		TotalPrice:     valueobject.Money{Amount: p.TotalPrice, Currency: p.Currency},
		PricePerGuest:  p.PricePerGuest,
		Message:        p.Message,
		Status:         status,
		SentAt:         p.SentAt,
		RespondedAt:    p.RespondedAt,
	}
}
