package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"verbum/internal/history"
)

// Load reads the saved search history. It returns (nil, nil) when nothing
// has been saved yet.
func (d *DB) Load(ctx context.Context) (*history.State, error) {
	state := &history.State{Words: make(map[string]int)}

	err := d.Pool.QueryRow(ctx, `
		SELECT last_cleanup, updated FROM history_meta WHERE id
	`).Scan(&state.LastCleanup, &state.Updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history meta: %w", err)
	}

	rows, err := d.Pool.Query(ctx, `SELECT word, count FROM search_history`)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var word string
		var count int
		if err := rows.Scan(&word, &count); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		state.Words[word] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	return state, nil
}

// Save replaces the saved search history in a single transaction.
func (d *DB) Save(ctx context.Context, state *history.State) error {
	if state == nil {
		return history.ErrNilState
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM search_history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	rows := make([][]any, 0, len(state.Words))
	for word, count := range state.Words {
		rows = append(rows, []any{word, count})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"search_history"}, []string{"word", "count"}, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("failed to copy history: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO history_meta (id, last_cleanup, updated)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET last_cleanup = EXCLUDED.last_cleanup, updated = EXCLUDED.updated
	`, state.LastCleanup, state.Updated); err != nil {
		return fmt.Errorf("failed to save history meta: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit history: %w", err)
	}
	return nil
}
