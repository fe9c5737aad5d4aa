package booking

import (
	"errors"
	"fmt"
)

// Error codes for booking operations. Every public operation returns either
// a success payload or exactly one of these.
const (
	CodeValidation        = "validationError"
	CodeResourceExhausted = "resourceExhausted"
	CodePaymentOrder      = "paymentOrderError"
	CodeNotFound          = "notFound"
	CodeInvalidSignature  = "invalidSignature"
	CodeInvalidTransition = "invalidTransition"
)

// BookingError is a typed domain error with a stable code.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...any) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the domain code from err, or "" for infrastructure
// errors.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsCode reports whether err carries the given domain code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}
