package drafts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/dbx"
)

// nowFn is a test seam.
var nowFn = func() time.Time { return time.Now().UTC() }

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, kind string) ([]byte, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM drafts WHERE kind = ?`, kind).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft[%s]: %w", kind, err)
	}
	return body, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, kind string, body []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO drafts (kind, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, kind, body, nowFn())
	if err != nil {
		return fmt.Errorf("failed to save draft[%s]: %w", kind, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, kind string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE kind = ?`, kind)
	if err != nil {
		return fmt.Errorf("failed to delete draft[%s]: %w", kind, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, body FROM drafts`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var kind string
		var body []byte
		if err := rows.Scan(&kind, &body); err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		result[kind] = body
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draft rows: %w", err)
	}

	return result, nil
}
