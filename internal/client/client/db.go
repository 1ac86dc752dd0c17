package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/edupilot/internal/client/migrations"
	"github.com/dmitrijs2005/edupilot/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/edupilot/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Drafts drafts.Repository
	DB     *sql.DB
}

func (r *Repositories) Close() error {
	if r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the local sqlite file, creating its directory, and
// applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if filex.IsMemoryDSN(dsn) {
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		Drafts: drafts.NewSQLiteRepository(db),
		DB:     db,
	}, nil
}
