package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"fairhuur/models"
	"fairhuur/services"
	"fairhuur/utils"
)

const insertColumns = 7

// PostgresStore keeps an imported listing collection in PostgreSQL and can
// serve it back as a ListingSource.
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, waits for it to accept
// connections, runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 500 * time.Millisecond, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			row_key     TEXT          PRIMARY KEY,
			position    INTEGER       NOT NULL,
			city        TEXT          NOT NULL DEFAULT '',
			type        TEXT          NOT NULL DEFAULT '',
			price       NUMERIC(12,2),
			posted_at   TEXT          NOT NULL DEFAULT '',
			doc         JSONB         NOT NULL,
			imported_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_position ON listings(position);
		CREATE INDEX IF NOT EXISTS idx_listings_city     ON listings(city);
		CREATE INDEX IF NOT EXISTS idx_listings_type     ON listings(type);
		CREATE INDEX IF NOT EXISTS idx_listings_price    ON listings(price);
	`)
	return err
}

// Write replaces the stored collection with listings, keeping their order.
func (ps *PostgresStore) Write(ctx context.Context, listings []*models.Listing) error {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := min(i+batchSize, len(listings))
		query, args, err := buildInsert(listings[i:end], i)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	ps.logger.Info("[postgres] Stored %d listings", len(listings))
	return nil
}

// buildInsert renders one multi-row INSERT. offset is the position of the
// first listing in the whole collection.
func buildInsert(batch []*models.Listing, offset int) (string, []any, error) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*insertColumns)

	for idx, l := range batch {
		doc, err := json.Marshal(l)
		if err != nil {
			return "", nil, fmt.Errorf("postgres: encode listing %q: %w", l.ID, err)
		}

		key := string(l.ID)
		if key == "" {
			key = "anon-" + uuid.NewString()
		}

		var price sql.NullFloat64
		if p, ok := services.CoerceNumber(l.Price); ok {
			price = sql.NullFloat64{Float64: p, Valid: true}
		}

		base := idx * insertColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		valueArgs = append(valueArgs,
			key, offset+idx, services.NormalizeText(l.City), services.NormalizeText(l.Type),
			price, string(l.PostedAt), string(doc))
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (row_key, position, city, type, price, posted_at, doc)
		VALUES %s
		ON CONFLICT (row_key) DO NOTHING
	`, strings.Join(valueStrings, ","))
	return query, valueArgs, nil
}

// Load returns the stored active listings in import order.
func (ps *PostgresStore) Load(ctx context.Context) ([]*models.Listing, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT doc FROM listings ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	listings := make([]*models.Listing, 0)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		l, err := decodeListing(doc)
		if err != nil {
			ps.logger.Warn("[postgres] Skipping undecodable row: %v", err)
			continue
		}
		if services.IsActive(l.Active) {
			listings = append(listings, l)
		}
	}
	return listings, rows.Err()
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
