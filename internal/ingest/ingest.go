package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"motordiag/internal/model"
)

// Workbook is a collection of independent asset sheets. Each sheet is a
// raw table; all parsing of cell values belongs to the normalizer.
type Workbook interface {
	SheetNames() ([]string, error)
	ReadSheet(name string) (*model.Table, error)
	Close() error
}

// Open dispatches on the source spec: a postgres DSN, a sqlite DSN or
// database file, an .xlsx workbook, a .csv file, or a directory of csv
// files.
func Open(ctx context.Context, source string) (Workbook, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("empty source")
	}
	switch {
	case strings.HasPrefix(source, "postgres://"), strings.HasPrefix(source, "postgresql://"):
		return OpenPostgres(ctx, source)
	case strings.HasPrefix(source, "sqlite:"):
		return OpenSQLite(ctx, strings.TrimPrefix(source, "sqlite:"))
	}
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		return OpenCSVDir(source)
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".xlsx", ".xlsm":
		return OpenXLSX(source)
	case ".csv":
		return OpenCSVFile(source)
	case ".db", ".sqlite", ".sqlite3":
		return OpenSQLite(ctx, source)
	}
	return nil, errors.New("unsupported source: " + source)
}
