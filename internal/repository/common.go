package repository

import (
	"context"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
)

// TxManager runs repository calls that must commit together.
type TxManager struct {
	db database.DB
}

func NewTxManager(db database.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(q database.Querier) error) error {
	return database.WithTx(ctx, m.db, func(tx database.Tx) error {
		return fn(tx)
	})
}

func clampPage(limit, offset, def, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
