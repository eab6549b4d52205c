package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
)

// Manager инкапсулирует логику управления транзакциями.
// Вложенные вызовы Do переиспользуют транзакцию из контекста.
type Manager struct {
	internal *manager.Manager
	level    pgx.TxIsoLevel
}

type Option func(*Manager)

// WithIsoLevel меняет уровень изоляции по умолчанию (Serializable).
func WithIsoLevel(level pgx.TxIsoLevel) Option {
	return func(m *Manager) {
		m.level = level
	}
}

// New создаёт новый менеджер транзакций.
func New(db pgxv5.Transactional, opts ...Option) *Manager {
	m := &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		level:    pgx.Serializable,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.execWithIsoLevel(ctx, m.level, fn)
}

// DoReadOnly выполняет fn в транзакции только на чтение, для согласованных выборок.
func (m *Manager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{
			IsoLevel:   pgx.RepeatableRead,
			AccessMode: pgx.ReadOnly,
		}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}
