package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

const (
	// maxLineSize bounds a single dump line; principals rows with long
	// character lists are the widest seen in practice.
	maxLineSize = 16 << 20

	readBufferSize = 1 << 20

	// ctxCheckEvery is how many lines pass between cancellation checks.
	ctxCheckEvery = 4096
)

// DumpDir reads gzip-compressed TSV dumps from a directory on disk.
type DumpDir struct {
	Path string
}

// Check verifies every named dump exists before a run starts writing.
func (d DumpDir) Check(names ...string) error {
	for _, name := range names {
		_, err := os.Stat(filepath.Join(d.Path, name))
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingInputError{File: name, Dir: d.Path}
		}

		if err != nil {
			return fmt.Errorf("checking dump %s: %w", name, err)
		}
	}

	return nil
}

// Scan opens the named dump fresh, decompresses it and streams its rows.
func (d DumpDir) Scan(ctx context.Context, name string, fn func(cols []string) error) error {
	f, err := os.Open(filepath.Join(d.Path, name))
	if errors.Is(err, fs.ErrNotExist) {
		return &MissingInputError{File: name, Dir: d.Path}
	}

	if err != nil {
		return fmt.Errorf("opening dump %s: %w", name, err)
	}
	defer f.Close() //nolint:errcheck // read-only file.

	zr, err := gzip.NewReader(bufio.NewReaderSize(f, readBufferSize))
	if err != nil {
		return fmt.Errorf("opening gzip stream %s: %w", name, err)
	}
	defer zr.Close() //nolint:errcheck // read-only stream.

	if err := scanRows(ctx, zr, fn); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	return nil
}

// scanRows splits r into tab-separated rows, dropping the header line.
func scanRows(ctx context.Context, r io.Reader, fn func(cols []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		if line == 1 {
			continue
		}

		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}

		if err := fn(strings.Split(text, "\t")); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("line %d: %w", line+1, err)
	}

	return ctx.Err()
}
