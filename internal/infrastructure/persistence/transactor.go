package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/gastro-backend/internal/domain/repository"
)

// PostgresTransactor реализует repository.Transactor поверх *sqlx.DB.
type PostgresTransactor struct {
	db *sqlx.DB
}

func NewPostgresTransactor(db *sqlx.DB) *PostgresTransactor {
	return &PostgresTransactor{db: db}
}

// WithinTx открывает транзакцию и передаёт fn репозитории, привязанные к ней.
func (t *PostgresTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return withTransaction(ctx, t.db, func(tx *sqlx.Tx) error {
		return fn(ctx, repository.Repositories{
			Events:    &EventRepositoryAdapter{db: tx},
			Proposals: &ProposalRepositoryAdapter{db: tx},
			Reviews:   &ReviewRepositoryAdapter{db: tx},
		})
	})
}

func withTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return mapError(err, nil, "não foi possível iniciar a transação")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err, nil, "não foi possível confirmar a transação")
	}
	return nil
}

var (
	_ repository.Transactor             = (*PostgresTransactor)(nil)
	_ repository.EventRepository        = (*EventRepositoryAdapter)(nil)
	_ repository.ProposalRepository     = (*ProposalRepositoryAdapter)(nil)
	_ repository.ProfileRepository      = (*ProfileRepositoryAdapter)(nil)
	_ repository.ReviewRepository       = (*ReviewRepositoryAdapter)(nil)
	_ repository.NotificationRepository = (*NotificationRepositoryAdapter)(nil)
)
