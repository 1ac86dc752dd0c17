// Package repomanager wires repository implementations to a storage backend
// and runs schema migrations. Postgres goes through database/sql and goose;
// sqlite goes through gorm.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/edupilot/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/studylogs"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/users"
)

type RepositoryManager interface {
	Tasks() tasks.Repository
	StudyLogs() studylogs.Repository
	Users() users.Repository
	Sessions() sessions.Repository

	// InTx runs fn with a manager whose repositories share one transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(RepositoryManager) error) error

	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
