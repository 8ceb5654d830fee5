package repository

import "context"

// Repositories - набор репозиториев, привязанных к одной транзакции.
type Repositories struct {
	Events    EventRepository
	Proposals ProposalRepository
	Reviews   ReviewRepository
}

// Transactor выполняет fn в одной транзакции: ошибка или паника откатывают все изменения.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
