package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

const eventColumns = `id, client_id, name, description, event_type, event_date, guest_count, city, state,
	cuisine_styles, service_types, price_range, max_budget, status, hired_proposal_id, created_at, updated_at`

type EventRepositoryAdapter struct {
	db dbtx
}

func NewEventRepositoryAdapter(db *sqlx.DB) *EventRepositoryAdapter {
	return &EventRepositoryAdapter{db: db}
}

func (r *EventRepositoryAdapter) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.ClientID, event.Name, event.Description, string(event.EventType),
		event.Date, event.GuestCount, event.City, event.State,
		pq.StringArray(event.CuisineStyles), pq.StringArray(event.ServiceTypes),
		string(event.PriceRange), event.MaxBudget, string(event.Status), event.HiredProposalID,
		event.CreatedAt, event.UpdatedAt,
	)
	return mapError(err, nil, "não foi possível criar o evento")
}

func (r *EventRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.findOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

// FindByIDForUpdate блокирует строку события (SELECT ... FOR UPDATE). Вне транзакции блокировка
// снимается сразу после запроса.
func (r *EventRepositoryAdapter) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.findOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, id)
}

func (r *EventRepositoryAdapter) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Event, error) {
	var row eventRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, mapError(err, apperror.ErrEventNotFound, "não foi possível obter o evento")
	}
	return row.toEntity(), nil
}

func (r *EventRepositoryAdapter) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Event, error) {
	var rows []eventRow
	query := `SELECT ` + eventColumns + ` FROM events WHERE client_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, clientID); err != nil {
		return nil, mapError(err, nil, "não foi possível listar os eventos do cliente")
	}
	return toEventEntities(rows), nil
}

func (r *EventRepositoryAdapter) ListOpen(ctx context.Context, filter repository.EventFilter) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + ` FROM events
		WHERE status = 'OPEN'
		  AND ($1 = '' OR lower(city) = lower($1))
		  AND ($2 = '' OR event_type = $2)
		ORDER BY event_date ASC, created_at ASC
		LIMIT NULLIF($3, 0) OFFSET $4
	`
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, filter.City, string(filter.EventType), filter.Limit, filter.Offset); err != nil {
		return nil, mapError(err, nil, "não foi possível listar os eventos abertos")
	}
	return toEventEntities(rows), nil
}

// UpdateStatus обновляет статус с проверкой ожидаемого текущего статуса.
func (r *EventRepositoryAdapter) UpdateStatus(ctx context.Context, event *entity.Event, expected valueobject.EventStatus) error {
	query := `
		UPDATE events SET status = $2, hired_proposal_id = $3, updated_at = $4
		WHERE id = $1 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query, event.ID, string(event.Status), event.HiredProposalID, event.UpdatedAt, string(expected))
	if err != nil {
		return mapError(err, nil, "não foi possível atualizar o status do evento")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err, nil, "não foi possível atualizar o status do evento")
	}
	if affected == 0 {
		if _, err := r.FindByID(ctx, event.ID); err != nil {
			return err
		}
		return apperror.ErrEventNotOpen
	}
	return nil
}

func (r *EventRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return mapError(err, nil, "não foi possível remover o evento")
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return apperror.ErrEventNotFound
	}
	return nil
}

type eventRow struct {
	ID              uuid.UUID      `db:"id"`
	ClientID        uuid.UUID      `db:"client_id"`
	Name            string         `db:"name"`
	Description     string         `db:"description"`
	EventType       string         `db:"event_type"`
	Date            time.Time      `db:"event_date"`
	GuestCount      int            `db:"guest_count"`
	City            string         `db:"city"`
	State           string         `db:"state"`
	CuisineStyles   pq.StringArray `db:"cuisine_styles"`
	ServiceTypes    pq.StringArray `db:"service_types"`
	PriceRange      string         `db:"price_range"`
	MaxBudget       float64        `db:"max_budget"`
	Status          string         `db:"status"`
	HiredProposalID *uuid.UUID     `db:"hired_proposal_id"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (e *eventRow) toEntity() *entity.Event {
	status, _ := valueobject.NewEventStatus(e.Status)
	return &entity.Event{
		ID:              e.ID,
		ClientID:        e.ClientID,
		Name:            e.Name,
		Description:     e.Description,
		EventType:       valueobject.ParseEventType(e.EventType),
		Date:            e.Date,
		GuestCount:      e.GuestCount,
		City:            e.City,
		State:           e.State,
		CuisineStyles:   []string(e.CuisineStyles),
		ServiceTypes:    []string(e.ServiceTypes),
		PriceRange:      valueobject.PriceRange(e.PriceRange),
		MaxBudget:       e.MaxBudget,
		Status:          status,
		HiredProposalID: e.HiredProposalID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toEventEntities(rows []eventRow) []*entity.Event {
	result := make([]*entity.Event, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result
}
