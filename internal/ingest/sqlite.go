package ingest

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"
)

// OpenSQLite reads vibration dumps stored as tables in a sqlite
// database. The database is input only; nothing is written back.
func OpenSQLite(ctx context.Context, dsn string) (Workbook, error) {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn + "?mode=ro"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqlWorkbook{
		db:  db,
		ctx: ctx,
		listQuery: `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
	}, nil
}
