package ingest

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/cinedex/internal/metrics"
)

// batcher buffers rows for one table and hands them to write in groups of
// at most size. Each flushed slice is freshly allocated, so write may keep it.
type batcher[T any] struct {
	table string
	size  int
	write func(ctx context.Context, rows []T) error
	log   *logrus.Logger

	// tolerate, when set, decides whether a failed batch is skipped
	// instead of aborting the run.
	tolerate func(err error) bool

	buf       []T
	batches   int
	rows      int
	conflicts int
}

func newBatcher[T any](table string, size int, log *logrus.Logger, write func(context.Context, []T) error) *batcher[T] {
	return &batcher[T]{
		table: table,
		size:  size,
		write: write,
		log:   log,
		buf:   make([]T, 0, size),
	}
}

// add queues a row, flushing when the buffer is full.
func (b *batcher[T]) add(ctx context.Context, row T) error {
	b.buf = append(b.buf, row)
	if len(b.buf) >= b.size {
		return b.flush(ctx)
	}

	return nil
}

// close flushes any remainder.
func (b *batcher[T]) close(ctx context.Context) error {
	if len(b.buf) == 0 {
		return nil
	}

	return b.flush(ctx)
}

func (b *batcher[T]) flush(ctx context.Context) error {
	rows := b.buf
	b.buf = make([]T, 0, b.size)
	b.batches++

	err := b.write(ctx, rows)
	if err == nil {
		b.rows += len(rows)
		metrics.IngestRows.WithLabelValues(b.table).Add(float64(len(rows)))
		metrics.IngestBatches.WithLabelValues(b.table, "ok").Inc()
		b.log.WithFields(logrus.Fields{
			"table": b.table,
			"batch": b.batches,
			"rows":  b.rows,
		}).Debug("batch flushed")

		return nil
	}

	if b.tolerate != nil && b.tolerate(err) {
		b.conflicts++
		metrics.IngestBatches.WithLabelValues(b.table, "conflict").Inc()
		b.log.WithError(err).WithFields(logrus.Fields{
			"table": b.table,
			"batch": b.batches,
		}).Warn("batch skipped on conflict")

		return nil
	}

	metrics.IngestBatches.WithLabelValues(b.table, "failed").Inc()

	return &WriteError{Table: b.table, Batch: b.batches, Err: err}
}
