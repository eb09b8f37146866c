package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nitesh/trends_service/pkg/models"
)

// PgStore inserts trend records into a Postgres table.
type PgStore struct {
	db *sqlx.DB
}

func NewPgStore(db *sql.DB) *PgStore {
	return &PgStore{db: sqlx.NewDb(db, "postgres")}
}

// RunMigrations creates the trends table when it does not exist yet.
func RunMigrations(db *sql.DB, table string) error {
	initSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s(
  id UUID PRIMARY KEY,
  source TEXT NOT NULL,
  topic TEXT NOT NULL,
  "timestamp" TIMESTAMPTZ NOT NULL,
  details_url TEXT,
  details TEXT
);

CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s(source);
CREATE INDEX IF NOT EXISTS %[3]s ON %[1]s("timestamp");
`,
		pq.QuoteIdentifier(table),
		pq.QuoteIdentifier("idx_"+table+"_source"),
		pq.QuoteIdentifier("idx_"+table+"_timestamp"),
	)
	_, err := db.Exec(initSQL)
	return err
}

// trendRow adds the generated primary key. Every insert gets a fresh id,
// so identical records still land as separate rows.
type trendRow struct {
	ID string `db:"id"`
	models.TrendRecord
}

// Insert writes all records with a single multi-row INSERT.
func (p *PgStore) Insert(ctx context.Context, table string, records []models.TrendRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([]trendRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, trendRow{ID: uuid.New().String(), TrendRecord: r})
	}

	stmt := fmt.Sprintf(`
INSERT INTO %s (id, source, topic, "timestamp", details_url, details)
VALUES (:id, :source, :topic, :timestamp, :details_url, :details)`, pq.QuoteIdentifier(table))

	if _, err := p.db.NamedExecContext(ctx, stmt, rows); err != nil {
		return fmt.Errorf("insert %d trends into %s: %w", len(rows), table, err)
	}
	return nil
}
