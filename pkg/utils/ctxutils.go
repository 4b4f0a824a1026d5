package utils

import (
	"context"

	"mechanic-system/pkg/contextkeys"
	apperrors "mechanic-system/pkg/errors"
)

// CustomerIDFromContext extracts the authenticated customer id placed in the
// request context by the auth middleware.
func CustomerIDFromContext(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.CustomerIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrCustomerIDNotFoundInContext
	}
	return id, nil
}
