package store

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// maxBulkParams is PostgreSQL's limit on bind parameters per statement.
// Rows per INSERT are capped so that rows*columns stays under it.
const maxBulkParams = 65535

// upsertSpec describes a multi-row INSERT ... ON CONFLICT statement.
type upsertSpec struct {
	table    string
	columns  []string
	conflict string
}

// valuesClause renders "($1, $2), ($3, $4)" for rows rows of width columns.
func valuesClause(rows, width int) string {
	var b strings.Builder
	b.Grow(rows * width * 5)

	for r := range rows {
		if r > 0 {
			b.WriteString(", ")
		}

		b.WriteByte('(')

		for c := range width {
			if c > 0 {
				b.WriteString(", ")
			}

			b.WriteByte('$')
			b.WriteString(strconv.Itoa(r*width + c + 1))
		}

		b.WriteByte(')')
	}

	return b.String()
}

func (u upsertSpec) sql(rows int) string {
	return "INSERT INTO " + u.table + " (" + strings.Join(u.columns, ", ") + ")\n\t\tVALUES " +
		valuesClause(rows, len(u.columns)) + "\n\t\t" + u.conflict
}

// bulkUpsert writes rows in a single transaction using multi-row
// INSERT ... ON CONFLICT, chunked to stay within the parameter limit.
func bulkUpsert[T any](ctx context.Context, b *Base, spec upsertSpec, rows []T, values func(T) []any) error {
	if len(rows) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := b.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("bulk upsert %s: beginning transaction: %w", spec.table, err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	width := len(spec.columns)
	perStatement := maxBulkParams / width

	for chunk := range slices.Chunk(rows, perStatement) {
		args := make([]any, 0, len(chunk)*width)
		for _, r := range chunk {
			args = append(args, values(r)...)
		}

		if _, err := tx.Exec(ctx, spec.sql(len(chunk)), args...); err != nil {
			return mapWriteError(spec.table, fmt.Errorf("bulk upserting %s: %w", spec.table, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return mapWriteError(spec.table, fmt.Errorf("committing bulk upsert %s: %w", spec.table, err))
	}

	return nil
}
