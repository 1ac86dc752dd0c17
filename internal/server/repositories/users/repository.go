// Package users declares the persistence contract for accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/edupilot/internal/server/models"
)

type Repository interface {
	// Create stores a new user. A taken email yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
