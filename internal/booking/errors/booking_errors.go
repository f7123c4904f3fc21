package bookingerrors

import (
	"net/http"

	"github.com/AndreiCindea/workflow-service/internal/shared/apperror"
)

var (
	ErrBookingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Booking not found",
		http.StatusNotFound,
	)
	ErrReturnBeforeDeparture = apperror.New(
		apperror.CodeInvalidInput,
		"Return date must not be before departure date",
		http.StatusBadRequest,
	)
	ErrInvalidTravelerCount = apperror.New(
		apperror.CodeInvalidInput,
		"Traveler count must be at least 1",
		http.StatusBadRequest,
	)
)
