// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"errors"
	"strings"
)

// Load-layer error kinds. A *LoadError wraps exactly one of them.
var (
	// ErrNotFound is returned when the descriptor file does not exist.
	ErrNotFound = errors.New("bundle descriptor not found")
	// ErrInvalidFormat is returned when the descriptor cannot be decoded or the
	// bundle root needed to locate it cannot be determined.
	ErrInvalidFormat = errors.New("invalid bundle descriptor")
	// ErrIO is returned for other file system failures.
	ErrIO = errors.New("bundle I/O error")
	// ErrNotLoaded is returned when the descriptor is read before it was loaded.
	ErrNotLoaded = errors.New("bundle descriptor not loaded")
	// ErrAlreadyLoaded is returned when the descriptor is loaded a second time.
	ErrAlreadyLoaded = errors.New("bundle descriptor already loaded")
	// ErrRootNotFound is returned when no bundle encloses the executable.
	ErrRootNotFound = errors.New("bundle root not found")
)

// Validation-layer error kinds. A *ValidationError wraps exactly one of them.
var (
	// ErrMissingField is reported when a required descriptor value is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is reported when a descriptor value is unusable.
	ErrInvalidField = errors.New("invalid field")
	// ErrConfigLoad is returned when validation cannot start because the root
	// or the descriptor is unavailable.
	ErrConfigLoad = errors.New("bundle configuration unavailable")
)

type (
	// LoadError describes a failure to resolve the bundle root or to load its
	// descriptor. Kind is one of the load-layer sentinels.
	LoadError struct {
		Kind error
		// Path is the file or directory involved, if any.
		Path string
		// Msg adds detail to Kind, if any.
		Msg string
		// Err is the underlying cause, if any.
		Err error
	}

	// ValidationError describes why a bundle failed validation. Kind is one of
	// the validation-layer sentinels.
	ValidationError struct {
		Kind error
		// Field is the descriptor field involved, if any.
		Field string
		// Msg adds detail to Kind.
		Msg string
		// Err is the underlying cause, if any.
		Err error
	}
)

// Error implements the error interface.
func (e *LoadError) Error() string {
	return joinError(e.Kind, e.Path, e.Msg, e.Err)
}

// Unwrap returns Kind and the cause for errors.Is() compatibility.
func (e *LoadError) Unwrap() []error {
	return unwrapPair(e.Kind, e.Err)
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return joinError(e.Kind, e.Field, e.Msg, e.Err)
}

// Unwrap returns Kind and the cause for errors.Is() compatibility.
func (e *ValidationError) Unwrap() []error {
	return unwrapPair(e.Kind, e.Err)
}

func joinError(kind error, subject, msg string, cause error) string {
	parts := make([]string, 0, 4)
	if kind != nil {
		parts = append(parts, kind.Error())
	}
	if subject != "" {
		parts = append(parts, subject)
	}
	if msg != "" {
		parts = append(parts, msg)
	}
	if cause != nil {
		parts = append(parts, cause.Error())
	}
	return strings.Join(parts, ": ")
}

func unwrapPair(kind, cause error) []error {
	errs := make([]error, 0, 2)
	if kind != nil {
		errs = append(errs, kind)
	}
	if cause != nil {
		errs = append(errs, cause)
	}
	return errs
}
