// Package store handles SQLite dataset files.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/verte-zerg/sentiboard/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for dataset rows.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY,
			period TEXT NOT NULL,
			platform TEXT NOT NULL,
			sentiment TEXT NOT NULL,
			mentions INTEGER NOT NULL CHECK (mentions >= 0)
		);`,
		`CREATE TABLE IF NOT EXISTS quotes (
			id INTEGER PRIMARY KEY,
			platform TEXT NOT NULL,
			text TEXT NOT NULL,
			sentiment TEXT NOT NULL,
			campaign TEXT NOT NULL DEFAULT '',
			theme TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceDataset swaps every stored record and quote for the given ones.
func (s *Store) ReplaceDataset(ctx context.Context, records []model.Record, quotes []model.Quote) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM quotes`); err != nil {
		return err
	}

	if len(records) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO records (period, platform, sentiment, mentions) VALUES (?, ?, ?, ?)`)
		if perr != nil {
			return perr
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, r := range records {
			if _, err = stmt.ExecContext(ctx, r.Period, r.Platform, string(r.Sentiment), r.Mentions); err != nil {
				return err
			}
		}
	}

	for _, q := range quotes {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO quotes (platform, text, sentiment, campaign, theme) VALUES (?, ?, ?, ?, ?)`,
			q.Platform, q.Text, string(q.Sentiment), q.Campaign, q.Theme,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListRecords returns stored records in insertion order.
func (s *Store) ListRecords(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT period, platform, sentiment, mentions FROM records ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Record
	for rows.Next() {
		var r model.Record
		var sentiment string
		if err := rows.Scan(&r.Period, &r.Platform, &sentiment, &r.Mentions); err != nil {
			return nil, err
		}
		r.Sentiment = model.Sentiment(sentiment)
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListQuotes returns stored quotes in insertion order.
func (s *Store) ListQuotes(ctx context.Context) ([]model.Quote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT platform, text, sentiment, campaign, theme FROM quotes ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Quote
	for rows.Next() {
		var q model.Quote
		var sentiment string
		if err := rows.Scan(&q.Platform, &q.Text, &sentiment, &q.Campaign, &q.Theme); err != nil {
			return nil, err
		}
		q.Sentiment = model.Sentiment(sentiment)
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
