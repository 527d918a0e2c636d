package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation    Kind = "VALIDATION_ERROR"
	KindConfiguration Kind = "CONFIGURATION_ERROR"
	KindTransaction   Kind = "TRANSACTION_ERROR"
	KindGeneric       Kind = "ERROR"
)

// FallbackTransactionMessage is returned when a chain failure carries no message.
const FallbackTransactionMessage = "Failed to mint tickets"

type CustomError struct {
	HttpCode int
	Kind     Kind
	Message  string
	Err      error
}

func (e *CustomError) Error() string {
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func newError(code int, kind Kind, msg string) error {
	return &CustomError{
		HttpCode: code,
		Kind:     kind,
		Message:  msg,
	}
}

func BadRequest(msg string) error {
	return newError(http.StatusBadRequest, KindGeneric, msg)
}

func UnauthorizedError(msg string) error {
	return newError(http.StatusUnauthorized, KindGeneric, msg)
}

func NotFound(msg string) error {
	return newError(http.StatusNotFound, KindGeneric, msg)
}

func Conflict(msg string) error {
	return newError(http.StatusConflict, KindGeneric, msg)
}

func UnprocessableEntity(msg string) error {
	return newError(http.StatusUnprocessableEntity, KindGeneric, msg)
}

func TooManyRequests(msg string) error {
	return newError(http.StatusTooManyRequests, KindGeneric, msg)
}

func InternalServerError(msg string) error {
	return newError(http.StatusInternalServerError, KindGeneric, msg)
}

// ValidationError rejects caller input before any side effect happens.
func ValidationError(msg string) error {
	return newError(http.StatusBadRequest, KindValidation, msg)
}

// ConfigurationError reports server-side setup that is missing or broken.
func ConfigurationError(msg string) error {
	return newError(http.StatusInternalServerError, KindConfiguration, msg)
}

// TransactionError wraps any failure coming back from the chain client.
// The message shown to the caller is the message of the innermost error.
func TransactionError(err error) error {
	msg := FallbackTransactionMessage
	if err != nil {
		if m := rootMessage(err); m != "" {
			msg = m
		}
	}
	return &CustomError{
		HttpCode: http.StatusInternalServerError,
		Kind:     KindTransaction,
		Message:  msg,
		Err:      err,
	}
}

// StatusCode maps err to an HTTP status, defaulting to 500.
func StatusCode(err error) int {
	var ce *CustomError
	if errors.As(err, &ce) && ce.HttpCode != 0 {
		return ce.HttpCode
	}
	return http.StatusInternalServerError
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *CustomError
	return errors.As(err, &ce) && ce.Kind == kind
}

func rootMessage(err error) string {
	var ae *AppError
	if errors.As(err, &ae) && ae.Err != nil {
		return rootMessage(ae.Err)
	}
	return err.Error()
}
