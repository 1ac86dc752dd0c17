package studylogs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/dbx"
	"github.com/dmitrijs2005/edupilot/internal/records"
)

const logColumns = `id, subject, duration, mood, notes, date, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLog(row scanner) (*records.StudyLog, error) {
	l := &records.StudyLog{}
	err := row.Scan(&l.ID, &l.Subject, &l.Duration, &l.Mood, &l.Notes, &l.Date, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]records.StudyLog, error) {
	query := `SELECT ` + logColumns + ` FROM study_logs ORDER BY date DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []records.StudyLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*records.StudyLog, error) {
	query := `SELECT ` + logColumns + ` FROM study_logs WHERE id = $1`

	l, err := scanLog(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Create(ctx context.Context, log *records.StudyLog) (*records.StudyLog, error) {
	query := `INSERT INTO study_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + logColumns

	l, err := scanLog(r.db.QueryRowContext(ctx, query,
		log.ID, log.Subject, log.Duration, string(log.Mood), log.Notes, log.Date, log.CreatedAt, log.UpdatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch records.StudyLogPatch, now time.Time) (*records.StudyLog, error) {
	assignments := patch.Assignments()
	if len(assignments) == 0 {
		return r.Get(ctx, id)
	}

	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+2)
	for _, a := range assignments {
		args = append(args, a.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", a.Column, len(args)))
	}
	args = append(args, now)
	sets = append(sets, fmt.Sprintf("updated_at = GREATEST(updated_at, $%d)", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE study_logs SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), logColumns)

	l, err := scanLog(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
