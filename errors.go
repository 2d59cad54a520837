package huffcrunch

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind.  Every error returned by this
// package matches exactly one of them under errors.Is.
var (
	// ErrEmptyInput indicates that there were no symbols to encode.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnknownSymbol indicates that a symbol has no entry in the code
	// table used for encoding.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrMalformedStream indicates that a compressed stream (or the table
	// supplied to decode it) is truncated, corrupted, or inconsistent.
	ErrMalformedStream = errors.New("malformed stream")

	// ErrIO indicates a failure reading or writing a file at the boundary.
	ErrIO = errors.New("I/O failure")

	// ErrInvalidUTF8 is wrapped by InvalidTextError, and by IOError when a
	// file read as text is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// EmptyInputError is returned when a compression is attempted on zero
// symbols.
type EmptyInputError struct {
	// Op is the operation that was being performed.
	Op string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrEmptyInput)
}

func (e *EmptyInputError) Unwrap() error {
	return ErrEmptyInput
}

// UnknownSymbolError is returned by Encode when the input contains a Symbol
// that the Table has no code for.
type UnknownSymbolError struct {
	// Symbol is the offending symbol.
	Symbol Symbol

	// Index is the position of Symbol in the input.
	Index int
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("%v: symbol %d (%q) at index %d has no code", ErrUnknownSymbol, e.Symbol, rune(e.Symbol), e.Index)
}

func (e *UnknownSymbolError) Unwrap() error {
	return ErrUnknownSymbol
}

// InvalidTextError is returned by CompressString when its input is not valid
// UTF-8, since the bad bytes could not be given back by decompression.
type InvalidTextError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("%v at byte %d", ErrInvalidUTF8, e.Offset)
}

func (e *InvalidTextError) Unwrap() error {
	return ErrInvalidUTF8
}

// MalformedStreamError is returned when a compressed buffer cannot be
// decoded with the given Table, or when a Table itself is invalid.
type MalformedStreamError struct {
	// Reason describes what was wrong.
	Reason string

	// Offset is the bit offset into the stream at which the problem was
	// detected, or -1 if the problem is not tied to a position.
	Offset int64
}

func (e *MalformedStreamError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%v: %s", ErrMalformedStream, e.Reason)
	}
	return fmt.Sprintf("%v: %s (at bit %d)", ErrMalformedStream, e.Reason, e.Offset)
}

func (e *MalformedStreamError) Unwrap() error {
	return ErrMalformedStream
}

// IOError wraps a failure at the file boundary, so that it can be told apart
// from codec errors.
type IOError struct {
	// Op is the operation that failed (e.g. "read", "write").
	Op string

	// Path is the file involved.
	Path string

	// Err is the underlying error.
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrIO, e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports IOError as ErrIO in addition to whatever Err matches.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func malformed(offset int64, format string, args ...interface{}) error {
	return &MalformedStreamError{Reason: fmt.Sprintf(format, args...), Offset: offset}
}
