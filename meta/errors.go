package meta

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/imagemeta/types"
)

var (
	// ErrInvalidSignature is returned by an extractor when the stream does
	// not start with the signature of its format. Nothing else about the
	// stream is implied, so callers are free to rewind and try another
	// format.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrCorruptImage matches every *CorruptImageError via errors.Is.
	ErrCorruptImage = errors.New("corrupt image")

	// ErrUnsupported is returned when no extractor recognizes the stream, or
	// when a recognized format uses a variant that is not handled.
	ErrUnsupported = errors.New("unsupported image format")
)

// CorruptImageError reports a stream whose signature matched but whose
// subsequent structure violates the rules of the format.
type CorruptImageError struct {
	Format types.Format
	Reason string
}

func (e *CorruptImageError) Error() string {
	return fmt.Sprintf("corrupt %s image: %s", e.Format, e.Reason)
}

func (e *CorruptImageError) Is(target error) bool {
	return target == ErrCorruptImage
}

func Corrupt(f types.Format, format string, args ...any) error {
	return &CorruptImageError{Format: f, Reason: fmt.Sprintf(format, args...)}
}

func Unsupported(f types.Format, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrUnsupported, f, fmt.Sprintf(format, args...))
}

type ErrorKind int

const (
	NoError ErrorKind = iota
	InvalidSignatureKind
	CorruptImageKind
	UnsupportedKind
	IOKind
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "none"
	case InvalidSignatureKind:
		return "invalid signature"
	case CorruptImageKind:
		return "corrupt image"
	case UnsupportedKind:
		return "unsupported"
	default:
		return "io"
	}
}

// KindOf classifies err. Anything that is not one of the errors defined in
// this package is an I/O failure of the underlying source.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return NoError
	case errors.Is(err, ErrInvalidSignature):
		return InvalidSignatureKind
	case errors.Is(err, ErrCorruptImage):
		return CorruptImageKind
	case errors.Is(err, ErrUnsupported):
		return UnsupportedKind
	}
	return IOKind
}
