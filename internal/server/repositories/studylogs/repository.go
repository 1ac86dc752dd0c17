// Package studylogs declares the persistence contract for study sessions and
// its Postgres and gorm implementations.
package studylogs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/records"
)

// ListLimit caps how many study logs List returns.
const ListLimit = 100

// Repository stores study logs. Missing ids yield common.ErrorNotFound.
type Repository interface {
	// List returns at most ListLimit logs, newest date first.
	List(ctx context.Context) ([]records.StudyLog, error)
	Get(ctx context.Context, id string) (*records.StudyLog, error)
	Create(ctx context.Context, log *records.StudyLog) (*records.StudyLog, error)
	Update(ctx context.Context, id string, patch records.StudyLogPatch, now time.Time) (*records.StudyLog, error)
	Delete(ctx context.Context, id string) error
}
