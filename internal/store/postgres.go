package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/smartexpense/expense-validator/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id                 BIGSERIAL PRIMARY KEY,
	date               DATE,
	description        VARCHAR(2000),
	amount             NUMERIC NOT NULL DEFAULT 0,
	type               TEXT,
	original_category  TEXT,
	corrected_category TEXT NOT NULL,
	source_file        TEXT
)`

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to url, verifies the connection, and bootstraps
// the schema.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating transactions table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Save inserts the batch inside a single transaction so a failed upload
// persists nothing.
func (p *Postgres) Save(ctx context.Context, txns []models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, t := range txns {
		batch.Queue(
			`INSERT INTO transactions
				(date, description, amount, type, original_category, corrected_category, source_file)
			 VALUES ($1, $2, $3::numeric, $4, $5, $6, $7)`,
			t.Date, t.Description, t.Amount.String(), t.Type,
			t.OriginalCategory, t.CorrectedCategory, t.SourceFile,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting transactions: %w", err)
	}
	return tx.Commit(ctx)
}

// ListAll reads back every stored transaction.
func (p *Postgres) ListAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT date, description, amount::text, type, original_category, corrected_category, source_file
		 FROM transactions`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var (
			t      models.Transaction
			date   *time.Time
			amount string
		)
		if err := rows.Scan(&date, &t.Description, &amount, &t.Type,
			&t.OriginalCategory, &t.CorrectedCategory, &t.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		t.Date = date
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("decoding amount %q: %w", amount, err)
		}
		t.Amount = amt
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
