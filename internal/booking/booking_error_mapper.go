package booking

import (
	"errors"
	"net/http"

	bookingerrors "github.com/AndreiCindea/workflow-service/internal/booking/errors"
	"github.com/AndreiCindea/workflow-service/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bookingerrors.ErrBookingNotFound
	}

	return apperror.Wrap(
		err,
		apperror.CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}
