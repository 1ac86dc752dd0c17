package repomanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/server/config"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLite(t *testing.T) *GormRepositoryManager {
	t.Helper()
	m, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.RunMigrations(context.Background()))
	return m
}

func TestSQLite_InTxRollsBack(t *testing.T) {
	m := newSQLite(t)
	ctx := context.Background()
	now := time.Now().UTC()

	err := m.InTx(ctx, func(tx RepositoryManager) error {
		if _, err := tx.Users().Create(ctx, &models.User{ID: "u1", Email: "a@b.c", PasswordHash: []byte("h"), Salt: []byte("s"), CreatedAt: now}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	_, err = m.Users().GetByEmail(ctx, "a@b.c")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_InTxCommits(t *testing.T) {
	m := newSQLite(t)
	ctx := context.Background()
	now := time.Now().UTC()

	err := m.InTx(ctx, func(tx RepositoryManager) error {
		if _, err := tx.Users().Create(ctx, &models.User{ID: "u1", Email: "a@b.c", PasswordHash: []byte("h"), Salt: []byte("s"), CreatedAt: now}); err != nil {
			return err
		}
		return tx.Sessions().Create(ctx, &models.Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Hour), CreatedAt: now})
	})
	require.NoError(t, err)

	s, err := m.Sessions().Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.NoError(t, m.Ping(ctx))
}

func TestOpen_SelectsDriver(t *testing.T) {
	m, err := Open(&config.Config{StorageDriver: config.DriverSQLite, DatabaseDSN: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &GormRepositoryManager{}, m)
	require.NoError(t, m.Close())

	_, err = Open(&config.Config{StorageDriver: "mongo"})
	assert.ErrorContains(t, err, `unknown storage driver "mongo"`)
}
