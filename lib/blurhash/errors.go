package blurhash

import (
	"errors"
	"fmt"

	"blurhash/lib/utils/base83"
)

var (
	ErrInvalidComponentCount = errors.New("blurhash: component count must be between 1 and 9")
	ErrInvalidHash           = errors.New("blurhash: invalid hash")
	ErrInvalidDimensions     = errors.New("blurhash: width and height must be positive")
	ErrInvalidChannels       = errors.New("blurhash: channel count must be 3 or 4")
	ErrShortBuffer           = errors.New("blurhash: pixel buffer too small")

	ErrInvalidQuantizedMaxValue = fieldError("quantized max value")
	ErrInvalidDC                = fieldError("DC")
	ErrInvalidAC                = fieldError("AC")
)

// digitError is failure to parse specific hash field.
// It matches both itself and base83.ErrInvalidDigit.
type digitError struct {
	field string
}

func fieldError(field string) error {
	return &digitError{field: field}
}

func (e *digitError) Error() string {
	return fmt.Sprintf("blurhash: invalid %s", e.field)
}

func (e *digitError) Unwrap() error {
	return base83.ErrInvalidDigit
}
