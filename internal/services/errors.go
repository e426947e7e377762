package services

import (
	"errors"
	"net/http"

	"github.com/yungbote/fondos-backend/internal/apierr"
	"github.com/yungbote/fondos-backend/internal/types"
)

// storageError passes classified API errors through unchanged and masks
// everything else behind the stable database-connection message.
func storageError(err error) error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apierr.New(http.StatusInternalServerError, "database_error", errors.New(types.ErrMsgDBConnection))
}
