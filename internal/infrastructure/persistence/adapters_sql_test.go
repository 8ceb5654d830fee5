package persistence

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func eventRows(id uuid.UUID, status valueobject.EventStatus) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "client_id", "name", "description", "event_type", "event_date", "guest_count", "city", "state",
		"cuisine_styles", "service_types", "price_range", "max_budget", "status", "hired_proposal_id", "created_at", "updated_at",
	}).AddRow(
		id.String(), uuid.New().String(), "Casamento", "", "CASAMENTO", now.AddDate(0, 1, 0), 100, "Campinas", "SP",
		"{Italiana}", "{}", "", 0.0, string(status), nil, now, now,
	)
}

func proposalRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "event_id", "professional_id", "total_price", "currency", "price_per_guest", "message", "status", "sent_at", "responded_at",
	})
}

func hiredEvent(proposalID uuid.UUID) *entity.Event {
	now := time.Now().UTC()
	return &entity.Event{
		ID:              uuid.New(),
		Status:          valueobject.EventStatusClosed,
		HiredProposalID: &proposalID,
		UpdatedAt:       now,
	}
}

var updateEventStatusSQL = regexp.QuoteMeta(`UPDATE events SET status = $2, hired_proposal_id = $3, updated_at = $4`) +
	`\s+` + regexp.QuoteMeta(`WHERE id = $1 AND status = $5`)

func TestEventAdapter_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("applies transition from expected status", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewEventRepositoryAdapter(db)
		proposalID := uuid.New()
		e := hiredEvent(proposalID)

		mock.ExpectExec(updateEventStatusSQL).
			WithArgs(e.ID, string(valueobject.EventStatusClosed), proposalID, sqlmock.AnyArg(), string(valueobject.EventStatusOpen)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, adapter.UpdateStatus(ctx, e, valueobject.EventStatusOpen))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows and event exists means it is no longer open", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewEventRepositoryAdapter(db)
		e := hiredEvent(uuid.New())

		mock.ExpectExec(updateEventStatusSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1`)).
			WithArgs(e.ID).
			WillReturnRows(eventRows(e.ID, valueobject.EventStatusClosed))

		err := adapter.UpdateStatus(ctx, e, valueobject.EventStatusOpen)
		assert.ErrorIs(t, err, apperror.ErrEventNotOpen)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows and no event means not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewEventRepositoryAdapter(db)
		e := hiredEvent(uuid.New())

		mock.ExpectExec(updateEventStatusSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1`)).
			WithArgs(e.ID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := adapter.UpdateStatus(ctx, e, valueobject.EventStatusOpen)
		assert.ErrorIs(t, err, apperror.ErrEventNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver failure is a database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewEventRepositoryAdapter(db)

		mock.ExpectExec(updateEventStatusSQL).WillReturnError(errors.New("connection reset"))

		err := adapter.UpdateStatus(ctx, hiredEvent(uuid.New()), valueobject.EventStatusOpen)
		assert.Equal(t, apperror.ErrCodeDatabaseError, apperror.CodeOf(err))
	})
}

func TestEventAdapter_FindByIDForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewEventRepositoryAdapter(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1 FOR UPDATE`)).
		WithArgs(id).
		WillReturnRows(eventRows(id, valueobject.EventStatusOpen))

	e, err := adapter.FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, valueobject.EventStatusOpen, e.Status)
	assert.Equal(t, []string{"Italiana"}, e.CuisineStyles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventAdapter_ListOpenWithoutLimit(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := NewEventRepositoryAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT NULLIF($3, 0) OFFSET $4`)).
		WithArgs("", "", 0, 0).
		WillReturnRows(eventRows(uuid.New(), valueobject.EventStatusOpen))

	events, err := adapter.ListOpen(context.Background(), repository.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var updateProposalStatusSQL = regexp.QuoteMeta(`UPDATE proposals SET status = $2, responded_at = $3`) +
	`\s+` + regexp.QuoteMeta(`WHERE id = $1 AND status = $4`)

func TestProposalAdapter_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("no rows and proposal exists means unavailable", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewProposalRepositoryAdapter(db)
		p := &entity.Proposal{ID: uuid.New(), Status: valueobject.ProposalStatusAccepted, RespondedAt: &now}

		mock.ExpectExec(updateProposalStatusSQL).
			WithArgs(p.ID, string(valueobject.ProposalStatusAccepted), sqlmock.AnyArg(), string(valueobject.ProposalStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM proposals WHERE id = $1`)).
			WithArgs(p.ID).
			WillReturnRows(proposalRows().AddRow(
				p.ID.String(), uuid.New().String(), uuid.New().String(), 5000.0, "BRL", nil, "", string(valueobject.ProposalStatusRejected), now, now,
			))

		err := adapter.UpdateStatus(ctx, p, valueobject.ProposalStatusPending)
		assert.ErrorIs(t, err, apperror.ErrProposalUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows and no proposal means not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewProposalRepositoryAdapter(db)
		p := &entity.Proposal{ID: uuid.New(), Status: valueobject.ProposalStatusAccepted, RespondedAt: &now}

		mock.ExpectExec(updateProposalStatusSQL).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM proposals WHERE id = $1`)).
			WithArgs(p.ID).
			WillReturnRows(proposalRows())

		err := adapter.UpdateStatus(ctx, p, valueobject.ProposalStatusPending)
		assert.ErrorIs(t, err, apperror.ErrProposalNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

var rejectPendingSQL = regexp.QuoteMeta(`WHERE event_id = $1 AND status = $4 AND ($5::uuid IS NULL OR id <> $5::uuid)`) +
	`\s+RETURNING ` + regexp.QuoteMeta(`id, event_id, professional_id`)

func TestProposalAdapter_RejectPendingByEvent(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	eventID := uuid.New()

	t.Run("without exception passes null", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewProposalRepositoryAdapter(db)
		rejected := uuid.New()

		mock.ExpectQuery(rejectPendingSQL).
			WithArgs(eventID, string(valueobject.ProposalStatusRejected), sqlmock.AnyArg(), string(valueobject.ProposalStatusPending), nil).
			WillReturnRows(proposalRows().AddRow(
				rejected.String(), eventID.String(), uuid.New().String(), 3000.0, "BRL", nil, "", string(valueobject.ProposalStatusRejected), now, now,
			))

		result, err := adapter.RejectPendingByEvent(ctx, eventID, nil, now)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, rejected, result[0].ID)
		assert.Equal(t, valueobject.ProposalStatusRejected, result[0].Status)
		require.NotNil(t, result[0].RespondedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps the accepted proposal", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewProposalRepositoryAdapter(db)
		accepted := uuid.New()

		mock.ExpectQuery(rejectPendingSQL).
			WithArgs(eventID, string(valueobject.ProposalStatusRejected), sqlmock.AnyArg(), string(valueobject.ProposalStatusPending), accepted).
			WillReturnRows(proposalRows())

		result, err := adapter.RejectPendingByEvent(ctx, eventID, &accepted, now)
		require.NoError(t, err)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileAdapter_RecalculateStats(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	lockSQL := regexp.QuoteMeta(`SELECT professional_id FROM professional_profiles WHERE professional_id = $1 FOR UPDATE`)
	recalcSQL := regexp.QuoteMeta(`UPDATE professional_profiles p SET`) + `(?s).*` +
		regexp.QuoteMeta(`RETURNING rating, review_count, completed_events, updated_at`)

	t.Run("locks the profile before recomputing in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewProfileRepositoryAdapter(db)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"professional_id"}).AddRow(id.String()))
		mock.ExpectQuery(recalcSQL).WithArgs(id, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"rating", "review_count", "completed_events", "updated_at"}).
				AddRow(4.5, 2, 3, now))
		mock.ExpectCommit()

		stats, err := adapter.RecalculateStats(ctx, id, now)
		require.NoError(t, err)
		assert.Equal(t, 4.5, stats.Rating)
		assert.Equal(t, 2, stats.ReviewCount)
		assert.Equal(t, 3, stats.CompletedEvents)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing profile rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		adapter := NewProfileRepositoryAdapter(db)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"professional_id"}))
		mock.ExpectRollback()

		_, err := adapter.RecalculateStats(ctx, id, now)
		assert.ErrorIs(t, err, apperror.ErrProfileNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inside an outer transaction reuses it", func(t *testing.T) {
		db, mock := newMockDB(t)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(lockSQL).WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"professional_id"}).AddRow(id.String()))
		mock.ExpectQuery(recalcSQL).WithArgs(id, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"rating", "review_count", "completed_events", "updated_at"}).
				AddRow(0.0, 0, 1, now))
		mock.ExpectCommit()

		err := withTransaction(ctx, db, func(tx *sqlx.Tx) error {
			adapter := &ProfileRepositoryAdapter{db: tx}
			stats, err := adapter.RecalculateStats(ctx, id, now)
			if err != nil {
				return err
			}
			assert.Equal(t, 1, stats.CompletedEvents)
			return nil
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
