package scheduling

import (
	"errors"
	"fmt"
)

// Error codes surfaced to callers. The HTTP layer maps these to statuses;
// clients switch on them to offer the right recovery (pick another slot vs.
// try later).
const (
	CodeDoctorNotFound         = "doctorNotFound"
	CodeDoctorUnavailable      = "doctorUnavailable"
	CodeSlotAlreadyBooked      = "slotAlreadyBooked"
	CodeAppointmentNotFound    = "appointmentNotFound"
	CodeAlreadyCancelled       = "alreadyCancelled"
	CodeInvalidStateTransition = "invalidStateTransition"
	CodeUnauthorized           = "unauthorized"
	CodeInvalidAvailability    = "invalidAvailability"
	CodeInvalidInput           = "invalidInput"
	CodeStoreUnavailable       = "storeUnavailable"
)

type SchedulingError struct {
	Code    string
	Message string
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSchedulingError(code, msg string) error {
	return &SchedulingError{
		Code:    code,
		Message: msg,
	}
}

// IsCode reports whether err carries the given scheduling error code.
func IsCode(err error, code string) bool {
	var se *SchedulingError
	return errors.As(err, &se) && se.Code == code
}

// ErrorCode extracts the scheduling code from err, or empty if it is not a
// SchedulingError.
func ErrorCode(err error) string {
	var se *SchedulingError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
