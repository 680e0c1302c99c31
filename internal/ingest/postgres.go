package ingest

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// OpenPostgres reads historian exports from public-schema tables.
func OpenPostgres(ctx context.Context, dsn string) (Workbook, error) {
	db, err := sql.Open("pgx", dsn)
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
		listQuery: `SELECT tablename FROM pg_tables
			WHERE schemaname = 'public' ORDER BY tablename`,
	}, nil
}
