package booking

import (
	"strings"
	"time"

	bookingerrors "github.com/AndreiCindea/workflow-service/internal/booking/errors"
	"github.com/AndreiCindea/workflow-service/internal/shared/apperror"
)

// validateCreateRequest checks the request shape before any lookup or
// write happens. Rules run in a fixed order and the first failure wins:
// date presence and format, then date ordering, then traveler count.
// A return date equal to the departure date is a valid same-day trip.
func validateCreateRequest(req CreateBookingRequest) (time.Time, time.Time, error) {
	if strings.TrimSpace(req.DepartureDate) == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("Departure Date")
	}
	if strings.TrimSpace(req.ReturnDate) == "" {
		return time.Time{}, time.Time{}, apperror.RequiredField("Return Date")
	}

	departure, err := time.Parse(time.RFC3339, req.DepartureDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("Departure Date")
	}
	ret, err := time.Parse(time.RFC3339, req.ReturnDate)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.InvalidField("Return Date")
	}

	if ret.Before(departure) {
		return time.Time{}, time.Time{}, bookingerrors.ErrReturnBeforeDeparture
	}

	if req.TravelerCount < 1 {
		return time.Time{}, time.Time{}, bookingerrors.ErrInvalidTravelerCount
	}

	return departure, ret, nil
}
