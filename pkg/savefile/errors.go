package savefile

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedFormat = errors.New("not a HOI4 binary savefile")
	ErrTruncated          = errors.New("truncated input")
	ErrInvalidText        = errors.New("invalid UTF-8 text")
	ErrIncompleteRecord   = errors.New("incomplete record")
	ErrMalformedDate      = errors.New("malformed date")
	ErrDateOverflow       = errors.New("date overflow")
	ErrDateUnderflow      = errors.New("date before game epoch")
)

// DecodeError reports where a token failed to decode. Offset counts
// from the first token after the header.
type DecodeError struct {
	Offset int
	Code   uint16
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode token %d at offset %d: %v", e.Code, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
