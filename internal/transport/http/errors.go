package http

import (
	"errors"

	apierrors "salesdash/internal/errors"
	"salesdash/internal/services"
)

// translate maps service sentinels onto API errors. Anything else is left
// for the error handler's own mapping.
func translate(err error) error {
	switch {
	case errors.Is(err, services.ErrReadOnlySource):
		return apierrors.ErrRecordsReadOnly
	case errors.Is(err, services.ErrNoModel):
		return apierrors.ErrPredictorUnavailable
	default:
		return err
	}
}
