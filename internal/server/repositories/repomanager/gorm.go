package repomanager

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/filex"
	"github.com/dmitrijs2005/edupilot/internal/records"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/studylogs"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/users"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormRepositoryManager vends gorm-backed repositories. It serves the
// sqlite driver for local development and single-node deployments.
type GormRepositoryManager struct {
	db *gorm.DB
}

func (m *GormRepositoryManager) Tasks() tasks.Repository {
	return tasks.NewGormRepository(m.db)
}

func (m *GormRepositoryManager) StudyLogs() studylogs.Repository {
	return studylogs.NewGormRepository(m.db)
}

func (m *GormRepositoryManager) Users() users.Repository {
	return users.NewGormRepository(m.db)
}

func (m *GormRepositoryManager) Sessions() sessions.Repository {
	return sessions.NewGormRepository(m.db)
}

func (m *GormRepositoryManager) InTx(ctx context.Context, fn func(RepositoryManager) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepositoryManager{db: tx})
	})
}

// RunMigrations creates or updates the tables from the record structs.
func (m *GormRepositoryManager) RunMigrations(ctx context.Context) error {
	err := m.db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Session{}, &records.Task{}, &records.StudyLog{})
	if err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}

func (m *GormRepositoryManager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *GormRepositoryManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewGormRepositoryManager wraps an open gorm handle.
func NewGormRepositoryManager(db *gorm.DB) *GormRepositoryManager {
	return &GormRepositoryManager{db: db}
}

// OpenSQLite opens (creating if needed) the sqlite database at dsn.
// In-memory databases are pinned to one connection so every query sees the
// same data.
func OpenSQLite(dsn string) (*GormRepositoryManager, error) {
	if dsn == "" {
		dsn = "edupilot.db"
	}
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if filex.IsMemoryDSN(dsn) {
		sqlDB.SetMaxOpenConns(1)
	}

	return NewGormRepositoryManager(db), nil
}
