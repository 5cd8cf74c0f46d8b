// Package store provides focused, single-concern data access stores
// for the cinedex catalog.
//
// Each store owns one concern (catalog writes, movie reads, stats) and
// embeds shared helpers (Pool, logger) via the Base struct. Stores never
// import each other; shared logic lives in this file or in bulk.go.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/dbpool"
	"github.com/persistorai/cinedex/internal/models"
)

const defaultQueryTimeout = 30 * time.Second

// pgUniqueViolation is the SQLSTATE for a unique constraint violation.
const pgUniqueViolation = "23505"

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// beginReadTx starts a read-only transaction so multi-query reads see one snapshot.
func (b *Base) beginReadTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := b.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("beginning read transaction: %w", err)
	}

	return tx, nil
}

// mapWriteError turns a unique violation into models.ErrDuplicateKey.
// Every other error, including serialization failures and deadlocks, is
// returned as is.
func mapWriteError(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s %s: %w", table, pgErr.ConstraintName, models.ErrDuplicateKey)
	}

	return err
}
