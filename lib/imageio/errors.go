package imageio

import (
	"errors"
	"fmt"
)

var (
	ErrImageLoad  = errors.New("image load failure")
	ErrImageWrite = errors.New("image write failure")
)

var (
	errUnsupportedFormat = errors.New("unsupported image format")
	errTooLarge          = errors.New("image exceeds configured limits")
	errBadChannels       = errors.New("channel count must be 3 or 4")
	errBadGeometry       = errors.New("pixel buffer doesn't match geometry")
)

// Error describes failed load or write of Path.
// errors.Is matches it against ErrImageLoad or ErrImageWrite depending on Kind.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v %q: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

func loadError(path string, err error) error {
	return &Error{Kind: ErrImageLoad, Path: path, Err: err}
}

func writeError(path string, err error) error {
	return &Error{Kind: ErrImageWrite, Path: path, Err: err}
}
