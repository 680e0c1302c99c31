package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleCSV = `t(x),x,t(y),y,t(z),z
2024-05-01 10:00:00,0.1,2024-05-01 10:00:00,0.2,2024-05-01 10:00:00,0.3
2024-05-01 10:00:01,0.4,2024-05-01 10:00:01,0.5,2024-05-01 10:00:01,0.6
`

func TestOpenCSVFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "motor01.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	wb, err := OpenCSVFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer wb.Close()
	names, err := wb.SheetNames()
	if err != nil {
		t.Fatalf("sheet names: %v", err)
	}
	if len(names) != 1 || names[0] != "motor01" {
		t.Fatalf("unexpected sheet names: %v", names)
	}
	tbl, err := wb.ReadSheet("motor01")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(tbl.Header) != 6 || tbl.Header[0] != "t(x)" {
		t.Fatalf("unexpected header: %v", tbl.Header)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[1][5] != "0.6" {
		t.Fatalf("unexpected rows: %v", tbl.Rows)
	}
}

func TestOpenCSVDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"pump_b.csv", "pump_a.csv", "readme.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(sampleCSV), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	wb, err := OpenCSVDir(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer wb.Close()
	names, _ := wb.SheetNames()
	if len(names) != 2 || names[0] != "pump_a" || names[1] != "pump_b" {
		t.Fatalf("unexpected sheet names: %v", names)
	}
	if _, err := wb.ReadSheet("missing"); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
}

func TestOpenDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	wb, err := Open(t.Context(), path)
	if err != nil {
		t.Fatalf("open csv via dispatcher: %v", err)
	}
	_ = wb.Close()

	if _, err := Open(t.Context(), ""); err == nil {
		t.Fatalf("expected error for empty source")
	}
	if _, err := Open(t.Context(), "file.unknown"); err == nil {
		t.Fatalf("expected error for unsupported source")
	}
}
