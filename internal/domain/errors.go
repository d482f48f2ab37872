package domain

import "fmt"

// ErrorKind classifies every failure the gateway can surface. All four
// kinds are recovered at the gateway boundary and turned into a
// user-facing message; none propagate further up.
type ErrorKind string

const (
	ErrInvalidArguments  ErrorKind = "InvalidArguments"
	ErrUnknownCommand    ErrorKind = "UnknownCommand"
	ErrValidationFailure ErrorKind = "ValidationFailure"
	ErrUpstreamFailure   ErrorKind = "UpstreamFailure"
)

type DispatchError struct {
	Kind         ErrorKind
	HumanMessage string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.HumanMessage)
}

func NewDispatchError(kind ErrorKind, format string, args ...any) *DispatchError {
	return &DispatchError{Kind: kind, HumanMessage: fmt.Sprintf(format, args...)}
}

func InvalidArguments(format string, args ...any) *DispatchError {
	return NewDispatchError(ErrInvalidArguments, format, args...)
}

func UnknownCommand(format string, args ...any) *DispatchError {
	return NewDispatchError(ErrUnknownCommand, format, args...)
}

func ValidationFailure(fieldPath, reason string) *DispatchError {
	return NewDispatchError(ErrValidationFailure, "%s: %s", fieldPath, reason)
}

func UpstreamFailure(format string, args ...any) *DispatchError {
	return NewDispatchError(ErrUpstreamFailure, format, args...)
}

// AsDispatchError normalizes an arbitrary error to a DispatchError,
// classifying anything unrecognized as an upstream failure.
func AsDispatchError(err error) *DispatchError {
	if err == nil {
		return nil
	}
	if de, ok := err.(*DispatchError); ok {
		return de
	}
	return UpstreamFailure("%v", err)
}
