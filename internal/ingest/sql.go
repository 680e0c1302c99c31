package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"motordiag/internal/model"
)

// sqlWorkbook exposes the user tables of a database as sheets. Column
// order is preserved and every value is rendered back to text; the
// normalizer owns all parsing.
type sqlWorkbook struct {
	db        *sql.DB
	ctx       context.Context
	listQuery string
}

func (w *sqlWorkbook) SheetNames() ([]string, error) {
	rows, err := w.db.QueryContext(w.ctx, w.listQuery)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (w *sqlWorkbook) ReadSheet(name string) (*model.Table, error) {
	if strings.ContainsAny(name, `";`) {
		return nil, fmt.Errorf("invalid table name: %q", name)
	}
	rows, err := w.db.QueryContext(w.ctx, fmt.Sprintf(`SELECT * FROM %q`, name))
	if err != nil {
		return nil, fmt.Errorf("read table %q: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	tbl := &model.Table{Name: name, Header: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = renderCell(v)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, rows.Err()
}

func (w *sqlWorkbook) Close() error {
	return w.db.Close()
}

func renderCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case time.Time:
		return t.UTC().Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
