package kafka

import (
	"errors"
	"fmt"
)

// Decode failure kinds. A failed decode returns a *DecodeError wrapping one
// of these sentinels, so callers can classify failures with errors.Is while
// still getting the offending field and value in the message.
var (
	// ErrMissingField - a required wire field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch - a field is present but has the wrong JSON shape.
	ErrTypeMismatch = errors.New("unexpected JSON type")

	// ErrUnrecognizedVariant - an enum-like string field holds an unknown value.
	ErrUnrecognizedVariant = errors.New("unrecognized variant")

	// ErrEmptyBootstrapServers - the bootstrap server list decoded to nothing.
	ErrEmptyBootstrapServers = errors.New("empty bootstrap servers")

	// ErrIntegerOutOfRange - a numeric field does not fit a signed 64-bit integer.
	ErrIntegerOutOfRange = errors.New("integer out of int64 range")

	// ErrMalformedHeader - a header object has zero or more than one key.
	ErrMalformedHeader = errors.New("malformed header object")
)

// DecodeError describes why a wire payload failed to decode.
// Kind is one of the sentinel errors above and is reachable via errors.Is.
type DecodeError struct {
	Field string // wire field that failed
	Value string // offending value or detail, when meaningful
	Kind  error
}

func (e *DecodeError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("kafka: field %q: %v: %q", e.Field, e.Kind, e.Value)
	}
	return fmt.Sprintf("kafka: field %q: %v", e.Field, e.Kind)
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

// IsDecodeError checks if an error is (or wraps) a decode failure.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

func missingField(field string) *DecodeError {
	return &DecodeError{Field: field, Kind: ErrMissingField}
}
