// Package tasks declares the persistence contract for tasks and its
// Postgres and gorm implementations.
package tasks

import (
	"context"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/records"
)

// Repository stores tasks. Missing ids yield common.ErrorNotFound.
type Repository interface {
	// List returns every task, newest createdAt first.
	List(ctx context.Context) ([]records.Task, error)
	Get(ctx context.Context, id string) (*records.Task, error)
	Create(ctx context.Context, task *records.Task) (*records.Task, error)
	// Update applies the present fields of patch and bumps updatedAt to now
	// (never backwards) in one statement. An empty patch returns the stored
	// record unchanged.
	Update(ctx context.Context, id string, patch records.TaskPatch, now time.Time) (*records.Task, error)
	Delete(ctx context.Context, id string) error
}
