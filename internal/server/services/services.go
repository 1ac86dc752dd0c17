// Package services contains server-side business logic: task and study log
// CRUD, signup/login sessions and data exports.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/google/uuid"
)

// Clock and id seams shared by the services.
var (
	nowFn = func() time.Time { return time.Now().UTC() }
	newID = uuid.NewString
)

// storageError passes domain errors through and hides everything else
// behind common.ErrorUnavailable after logging it.
func storageError(ctx context.Context, log logging.Logger, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorConflict),
		errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorUnauthorized):
		return err
	}
	log.Error(ctx, "storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s", common.ErrorUnavailable, op)
}
