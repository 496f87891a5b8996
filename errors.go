package barcodegen

import "errors"

var (
	// ErrEmptyPayload is returned when there is nothing to encode.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrIncompatible is returned when an encoder rejects the payload,
	// dimensions or hints for the requested symbology.
	ErrIncompatible = errors.New("payload incompatible with symbology")

	// ErrEncoderInternal is returned when an encoder fails for any other
	// reason, including a panic.
	ErrEncoderInternal = errors.New("encoder internal error")
)
