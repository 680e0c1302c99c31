package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"motordiag/internal/model"
)

// csvWorkbook treats a single .csv file as a one-sheet workbook, or a
// directory of .csv files as a workbook with one sheet per file. Sheet
// names are the file base names without extension.
type csvWorkbook struct {
	files map[string]string
	order []string
}

func OpenCSVFile(path string) (Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	name := sheetName(path)
	return &csvWorkbook{
		files: map[string]string{name: path},
		order: []string{name},
	}, nil
}

func OpenCSVDir(dir string) (Workbook, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no csv files in %s", dir)
	}
	sort.Strings(matches)
	wb := &csvWorkbook{files: make(map[string]string, len(matches))}
	for _, path := range matches {
		name := sheetName(path)
		wb.files[name] = path
		wb.order = append(wb.order, name)
	}
	return wb, nil
}

func (w *csvWorkbook) SheetNames() ([]string, error) {
	return w.order, nil
}

func (w *csvWorkbook) ReadSheet(name string) (*model.Table, error) {
	path, ok := w.files[name]
	if !ok {
		return nil, fmt.Errorf("no such sheet: %q", name)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	tbl := &model.Table{Name: name}
	if len(records) == 0 {
		return tbl, nil
	}
	tbl.Header = records[0]
	tbl.Rows = records[1:]
	return tbl, nil
}

func (w *csvWorkbook) Close() error { return nil }

func sheetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
