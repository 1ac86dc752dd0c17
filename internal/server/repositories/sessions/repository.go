// Package sessions declares the server-side repository contract for login
// sessions referenced by the session cookie.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/server/models"
)

// Repository defines operations for issuing, retrieving and revoking sessions.
type Repository interface {
	Create(ctx context.Context, session *models.Session) error

	// Get looks a session up by id. Implementations return
	// common.ErrorNotFound when the session is absent.
	Get(ctx context.Context, id string) (*models.Session, error)

	// Delete removes a session. Deleting a non-existent session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session whose expiry is not after now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
