package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// dbtx - общее подмножество *sqlx.DB и *sqlx.Tx, чтобы адаптеры работали и внутри транзакции.
type dbtx interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// runInTx выполняет fn в транзакции. Если адаптер уже привязан к транзакции, используется она.
func runInTx(ctx context.Context, db dbtx, fn func(q dbtx) error) error {
	conn, ok := db.(*sqlx.DB)
	if !ok {
		return fn(db)
	}
	return withTransaction(ctx, conn, func(tx *sqlx.Tx) error {
		return fn(tx)
	})
}
