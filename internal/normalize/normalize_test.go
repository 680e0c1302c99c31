package normalize

import (
	"errors"
	"testing"
	"time"

	"motordiag/internal/model"
)

// Rows follow the header order t(x), x, t(y), y, t(z), z.
func testTable(rows [][]string) *model.Table {
	return &model.Table{
		Name:   "motor01",
		Header: []string{"T(X)", "X", "t(y)", "y", "t(z)", "z"},
		Rows:   rows,
	}
}

func row(ts, x, y, z string) []string {
	return []string{ts, x, ts, y, ts, z}
}

func TestNormalizeAxialRelabel(t *testing.T) {
	tbl := testTable([][]string{
		row("2024-05-01 10:00:00", "1.0", "2.0", "3.0"),
	})
	samples, err := Normalize(tbl, model.AxisZ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	s := samples[0]
	if s.X != 1.0 || s.Y != 2.0 || s.Z != 3.0 {
		t.Fatalf("unexpected sample: %+v", s)
	}
}

func TestNormalizeAxialXRemap(t *testing.T) {
	tbl := testTable([][]string{
		row("2024-05-01 10:00:00", "1.0", "2.0", "3.0"),
	})
	samples, err := Normalize(tbl, model.AxisX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// axial=x: Z gets the x column, radials y then z land in X and Y.
	s := samples[0]
	if s.Z != 1.0 || s.X != 2.0 || s.Y != 3.0 {
		t.Fatalf("unexpected relabeling: %+v", s)
	}
}

func TestNormalizeMissingColumns(t *testing.T) {
	tbl := &model.Table{
		Name:   "bad",
		Header: []string{"t(x)", "x", "y"},
		Rows:   [][]string{{"2024-05-01 10:00:00", "1", "2"}},
	}
	_, err := Normalize(tbl, model.AxisZ)
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
}

func TestNormalizeDropsNullAndBadTimestampRows(t *testing.T) {
	tbl := testTable([][]string{
		row("2024-05-01 10:00:02", "1", "2", "3"),
		row("", "1", "2", "3"),
		row("2024-05-01 10:00:01", "", "2", "3"),
		row("not a time", "1", "2", "3"),
		row("2024-05-01 10:00:00", "4", "5", "6"),
	})
	samples, err := Normalize(tbl, model.AxisZ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if !samples[0].T.Before(samples[1].T) {
		t.Fatalf("samples not sorted ascending: %v, %v", samples[0].T, samples[1].T)
	}
	if samples[0].X != 4 {
		t.Fatalf("expected earliest row first, got %+v", samples[0])
	}
}

func TestNormalizeBadValue(t *testing.T) {
	tbl := testTable([][]string{
		row("2024-05-01 10:00:00", "oops", "2", "3"),
	})
	_, err := Normalize(tbl, model.AxisZ)
	if !errors.Is(err, ErrBadValue) {
		t.Fatalf("expected ErrBadValue, got %v", err)
	}
}

func TestNormalizePreservesDuplicateTimestamps(t *testing.T) {
	tbl := testTable([][]string{
		row("2024-05-01 10:00:00", "1", "2", "3"),
		row("2024-05-01 10:00:00", "4", "5", "6"),
	})
	samples, err := Normalize(tbl, model.AxisZ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected duplicates preserved, got %d samples", len(samples))
	}
	if samples[0].X != 1 || samples[1].X != 4 {
		t.Fatalf("stable order not preserved: %+v", samples)
	}
}

func TestParseTimestampFormats(t *testing.T) {
	cases := []string{
		"2024-05-01 10:00:00",
		"2024-05-01T10:00:00Z",
		"2024-05-01",
		"1714557600",
	}
	for _, c := range cases {
		if _, err := ParseTimestamp(c); err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", c, err)
		}
	}
	if _, err := ParseTimestamp(""); err == nil {
		t.Fatalf("expected error for empty timestamp")
	}
}

func TestParseTimestampUnixMillis(t *testing.T) {
	ts, err := ParseTimestamp("1714557600000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Unix(1714557600, 0).UTC()
	if !ts.Equal(want) {
		t.Fatalf("got %v, want %v", ts, want)
	}
}
