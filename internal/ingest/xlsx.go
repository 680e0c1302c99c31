package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"motordiag/internal/model"
)

type xlsxWorkbook struct {
	f *excelize.File
}

func OpenXLSX(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &xlsxWorkbook{f: f}, nil
}

func (w *xlsxWorkbook) SheetNames() ([]string, error) {
	return w.f.GetSheetList(), nil
}

func (w *xlsxWorkbook) ReadSheet(name string) (*model.Table, error) {
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	tbl := &model.Table{Name: name}
	if len(rows) == 0 {
		return tbl, nil
	}
	tbl.Header = rows[0]
	width := len(tbl.Header)
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; pad to the header width.
		for len(row) < width {
			row = append(row, "")
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

func (w *xlsxWorkbook) Close() error {
	return w.f.Close()
}
