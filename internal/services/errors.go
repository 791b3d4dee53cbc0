package services

import (
	"fmt"

	errs "github.com/projectsail/rainfall-backend/internal/pkg/errors"
	"github.com/projectsail/rainfall-backend/internal/platform/logger"
)

// storeErr logs an unexpected record-store failure and surfaces it as the
// retryable ErrStoreUnavailable class. Caller errors never come through here.
func storeErr(log *logger.Logger, op string, err error) error {
	if log != nil {
		log.Error("record store failure", "op", op, "error", err)
	}
	return fmt.Errorf("%s: %w", op, errs.ErrStoreUnavailable)
}
