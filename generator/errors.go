package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrInFlight is returned by Submit while an attempt is still generating.
	ErrInFlight = errors.New("a generation is already in progress")
	// ErrSuperseded is returned to the caller whose attempt finished after a reset
	// or a newer attempt; its result was dropped.
	ErrSuperseded = errors.New("generation result superseded")
)

// ValidationError means the submit was refused before generating started.
type ValidationError struct {
	Reason        string
	Length        int
	TrimmedLength int
	cause         error
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return e.cause }

// TransportError wraps a failure of the LLM client itself.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ShapeKind classifies why a model response was rejected.
type ShapeKind int

const (
	// ShapeMalformed: the text is not a JSON object.
	ShapeMalformed ShapeKind = iota + 1
	// ShapeIncomplete: a required field is missing or not a string.
	ShapeIncomplete
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeMalformed:
		return "malformed"
	case ShapeIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// ShapeError reports a model response that is not a valid MarketingStrategy.
type ShapeError struct {
	Kind  ShapeKind
	Field string
	Err   error
}

func (e *ShapeError) Error() string {
	switch {
	case e.Kind == ShapeIncomplete && e.Field != "":
		return fmt.Sprintf("model response incomplete: field %q missing or not a string", e.Field)
	case e.Err != nil:
		return fmt.Sprintf("model response %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("model response %s", e.Kind)
	}
}

func (e *ShapeError) Unwrap() error { return e.Err }

// failureReason turns an attempt error into the message shown to users.
func failureReason(err error) string {
	var te *TransportError
	var se *ShapeError
	switch {
	case errors.As(err, &te):
		return "Failed to generate strategy. Please try again."
	case errors.As(err, &se) && se.Kind == ShapeMalformed:
		return "The model returned an unreadable response. Please try again."
	case errors.As(err, &se):
		return "The model returned an incomplete strategy. Please try again."
	default:
		return err.Error()
	}
}
