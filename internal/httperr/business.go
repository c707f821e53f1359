package httperr

import (
	"errors"
	"fmt"
)

// Códigos de erro de negócio expostos aos clientes da API.
const (
	CodeNotFound               = "not_found"
	CodeInvalidAvailability    = "invalid_availability"
	CodeAvailabilityTooLarge   = "availability_too_large"
	CodeInvalidServiceType     = "invalid_service_type"
	CodeServiceNotOffered      = "service_not_offered"
	CodeStartNotInFuture       = "start_not_in_future"
	CodeTimeConflict           = "time_conflict"
	CodeSelfBookingNotAllowed  = "self_booking_not_allowed"
	CodeCancellationNotAllowed = "cancellation_not_allowed"
	CodeInvalidTransition      = "invalid_transition"
	CodeTryAgain               = "try_again"
	CodeInvalidDate            = "invalid_date"
)

type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, format string, args ...any) error {
	return BusinessError{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness extrai o erro de negócio, se houver.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
