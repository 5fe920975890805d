package corrections

import (
	"context"
	"database/sql"
	"time"

	"github.com/carson-networks/insight-server/internal/finance"
)

// Table persists the learned category corrections. The stored order is the
// in-memory order (newest first), kept in an explicit position column so a
// reload reproduces correction precedence exactly.
type Table struct {
	db *sql.DB
}

func NewTable(db *sql.DB) *Table {
	return &Table{db: db}
}

// Load returns all corrections in stored order. Rows with a category that is
// no longer known are skipped.
func (t *Table) Load(ctx context.Context) ([]finance.CorrectionEntry, error) {
	rows, err := t.db.QueryContext(ctx,
		`SELECT tokens, category, updated_at FROM category_corrections ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []finance.CorrectionEntry
	for rows.Next() {
		var tokens, category string
		var updatedAt time.Time
		if err := rows.Scan(&tokens, &category, &updatedAt); err != nil {
			return nil, err
		}
		parsed, err := finance.ParseCategory(category)
		if err != nil {
			continue
		}
		entries = append(entries, finance.CorrectionEntry{
			Tokens:    decodeTokens(tokens),
			Category:  parsed,
			UpdatedAt: updatedAt,
		})
	}
	return entries, rows.Err()
}

// Save replaces the stored corrections with the given snapshot.
func (t *Table) Save(ctx context.Context, entries []finance.CorrectionEntry) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_corrections`); err != nil {
		return err
	}

	for position, entry := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO category_corrections (position, tokens, category, updated_at) VALUES ($1, $2, $3, $4)`,
			position, encodeTokens(entry.Tokens), string(entry.Category), entry.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
