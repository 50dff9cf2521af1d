// SPDX-License-Identifier: MPL-2.0

package elfarch

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the sentinel wrapped by ParseError.
	ErrParse = errors.New("failed to parse ELF file")

	// ErrIO is the sentinel wrapped by IOError.
	ErrIO = errors.New("failed to read file")
)

type (
	// ParseError is returned when the input is not a well-formed ELF file.
	// It wraps ErrParse and, when present, the decoder's error.
	ParseError struct {
		Path   string
		Reason string
		Err    error
	}

	// IOError is returned when the file cannot be opened or read.
	// It wraps ErrIO and the underlying file system error.
	IOError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", ErrParse, e.Path, msg)
	}
	return fmt.Sprintf("%s: %s", ErrParse, msg)
}

// Unwrap returns ErrParse and the decoder error for errors.Is() compatibility.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrIO, e.Path, e.Err)
}

// Unwrap returns ErrIO and the underlying error for errors.Is() compatibility.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }
