package ouch

import (
	"errors"
	"fmt"
)

var (
	ErrFieldTooLong          = errors.New("ouch: field too long")
	ErrValueOutOfRange       = errors.New("ouch: value out of range")
	ErrInvalidCharacterField = errors.New("ouch: invalid character field")

	ErrLengthMismatch  = errors.New("ouch: length mismatch")
	ErrInvalidEncoding = errors.New("ouch: invalid encoding")
)

// EncodeError reports the first field that prevented a message from being encoded.
type EncodeError struct {
	Field  string
	Err    error
	Detail string
}

func (e *EncodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Field)
	}
	return fmt.Sprintf("%v: %s (%s)", e.Err, e.Field, e.Detail)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports why a byte sequence is not a valid message.
// Field is empty for ErrLengthMismatch; otherwise Offset is the absolute
// position of the offending byte.
type DecodeError struct {
	Field  string
	Offset int
	Err    error
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	}
	return fmt.Sprintf("%v: %s at offset %d (%s)", e.Err, e.Field, e.Offset, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Err }
