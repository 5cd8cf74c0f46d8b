package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestScanRows(t *testing.T) {
	input := "id\tname\r\nnm1\tAlice\r\n\nnm2\tBob\n"

	var got [][]string

	err := scanRows(context.Background(), strings.NewReader(input), func(cols []string) error {
		got = append(got, cols)
		return nil
	})
	if err != nil {
		t.Fatalf("scanRows: %v", err)
	}

	want := [][]string{{"nm1", "Alice"}, {"nm2", "Bob"}}
	if !slices.EqualFunc(got, want, slices.Equal[[]string]) {
		t.Errorf("rows = %q, want %q", got, want)
	}
}

func TestScanRows_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0

	err := scanRows(context.Background(), strings.NewReader("h\na\nb\nc\n"), func([]string) error {
		calls++
		return stop
	})

	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestScanRows_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	b.WriteString("header\n")

	for range ctxCheckEvery * 2 {
		b.WriteString("x\n")
	}

	calls := 0

	err := scanRows(ctx, strings.NewReader(b.String()), func([]string) error {
		calls++
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if calls >= ctxCheckEvery*2 {
		t.Errorf("scan did not stop early: %d calls", calls)
	}
}

func TestDumpDir_Scan(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, RatingsDump, ratingsHeader, row("tt1", "7.1", "120"))

	var got []string

	err := DumpDir{Path: dir}.Scan(context.Background(), RatingsDump, func(cols []string) error {
		got = append(got, cols[ratingID])
		return nil
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if !slices.Equal(got, []string{"tt1"}) {
		t.Errorf("ids = %v", got)
	}
}

func TestDumpDir_ScanMissing(t *testing.T) {
	err := DumpDir{Path: t.TempDir()}.Scan(context.Background(), CrewDump, func([]string) error { return nil })

	var missing *MissingInputError
	if !errors.As(err, &missing) || missing.File != CrewDump {
		t.Fatalf("expected missing %s, got %v", CrewDump, err)
	}
}

func TestDumpDir_ScanNotGzip(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, NamesDump), []byte("plain text"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := DumpDir{Path: dir}.Scan(context.Background(), NamesDump, func([]string) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "opening gzip stream") {
		t.Fatalf("expected gzip error, got %v", err)
	}
}

func TestDumpDir_Check(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, RatingsDump, ratingsHeader)

	d := DumpDir{Path: dir}

	if err := d.Check(RatingsDump); err != nil {
		t.Errorf("Check(ratings): %v", err)
	}

	err := d.Check(RatingsDump, TitlesDump, NamesDump)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}

	if !strings.Contains(err.Error(), TitlesDump) {
		t.Errorf("error %q does not name %s", err, TitlesDump)
	}
}
