//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=uow_test
package uow

import (
	"context"

	"fulfillment/internal/entities"
)

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type EventRepository interface {
	Append(ctx context.Context, events ...entities.TransitionEvent) error
}

// Dispatcher получает события после коммита. Enqueue не должен блокироваться.
type Dispatcher interface {
	Enqueue(events ...entities.TransitionEvent)
}

type Locker interface {
	Lock(ctx context.Context, key string) error
	Unlock(key string)
}

type Retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
