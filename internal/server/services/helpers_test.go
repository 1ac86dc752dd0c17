package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/studylogs"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLiteManager(t *testing.T) repomanager.RepositoryManager {
	t.Helper()
	m, err := repomanager.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.RunMigrations(context.Background()))
	return m
}

// fixClock pins nowFn and newID for the duration of the test.
func fixClock(t *testing.T, at time.Time, ids ...string) {
	t.Helper()
	origNow, origID := nowFn, newID
	t.Cleanup(func() { nowFn, newID = origNow, origID })

	nowFn = func() time.Time { return at }
	if len(ids) > 0 {
		i := 0
		newID = func() string {
			id := ids[i%len(ids)]
			i++
			return id
		}
	}
}

// brokenManager fails every repository call.
type brokenManager struct{}

func (brokenManager) Tasks() tasks.Repository         { return brokenTasks{} }
func (brokenManager) StudyLogs() studylogs.Repository { return brokenStudyLogs{} }
func (brokenManager) Users() users.Repository         { return brokenUsers{} }
func (brokenManager) Sessions() sessions.Repository   { return brokenSessions{} }
func (m brokenManager) InTx(ctx context.Context, fn func(repomanager.RepositoryManager) error) error {
	return fn(m)
}
func (brokenManager) RunMigrations(context.Context) error { return errBoom }
func (brokenManager) Ping(context.Context) error          { return errBoom }
func (brokenManager) Close() error                        { return nil }

type brokenTasks struct{}

func (brokenTasks) List(context.Context) ([]records.Task, error) { return nil, errBoom }
func (brokenTasks) Get(context.Context, string) (*records.Task, error) {
	return nil, errBoom
}
func (brokenTasks) Create(context.Context, *records.Task) (*records.Task, error) {
	return nil, errBoom
}
func (brokenTasks) Update(context.Context, string, records.TaskPatch, time.Time) (*records.Task, error) {
	return nil, errBoom
}
func (brokenTasks) Delete(context.Context, string) error { return errBoom }

type brokenStudyLogs struct{}

func (brokenStudyLogs) List(context.Context) ([]records.StudyLog, error) { return nil, errBoom }
func (brokenStudyLogs) Get(context.Context, string) (*records.StudyLog, error) {
	return nil, errBoom
}
func (brokenStudyLogs) Create(context.Context, *records.StudyLog) (*records.StudyLog, error) {
	return nil, errBoom
}
func (brokenStudyLogs) Update(context.Context, string, records.StudyLogPatch, time.Time) (*records.StudyLog, error) {
	return nil, errBoom
}
func (brokenStudyLogs) Delete(context.Context, string) error { return errBoom }

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errBoom }
func (brokenUsers) GetByEmail(context.Context, string) (*models.User, error)   { return nil, errBoom }
func (brokenUsers) GetByID(context.Context, string) (*models.User, error)      { return nil, errBoom }

type brokenSessions struct{}

func (brokenSessions) Create(context.Context, *models.Session) error            { return errBoom }
func (brokenSessions) Get(context.Context, string) (*models.Session, error)     { return nil, errBoom }
func (brokenSessions) Delete(context.Context, string) error                     { return errBoom }
func (brokenSessions) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, errBoom }
