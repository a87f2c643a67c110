package repository

import (
	"fmt"

	"movie-review/pkg/utils"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// storeError classifies a Firestore error into the service error taxonomy.
func storeError(op string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%s: %w", op, utils.ErrNotFound)
	case codes.FailedPrecondition, codes.Aborted:
		return fmt.Errorf("%s: %w: %w", op, utils.ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, utils.ErrStorageUnavailable, err)
	}
}
