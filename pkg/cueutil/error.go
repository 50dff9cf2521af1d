// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrDecode is the sentinel wrapped by DecodeError.
	ErrDecode = errors.New("invalid document")

	// ErrInvalidCUEPath is returned when a CUEPath is empty or whitespace.
	ErrInvalidCUEPath = errors.New("invalid CUE path")

	// ErrFileTooLarge is returned when input exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
)

type (
	// CUEPath is a JSON-path style location inside a document (e.g., "url_schemes[0].scheme").
	CUEPath string

	// Issue is one problem reported by CUE for a document.
	Issue struct {
		// Path is the location of the offending value. Empty for document-level problems.
		Path CUEPath
		// Message is the CUE diagnostic with any redundant path prefix removed.
		Message string
	}

	// DecodeError reports every problem CUE found in a user document.
	// It wraps ErrDecode and every underlying error, so errors raised by
	// custom unmarshalers during decoding stay reachable through errors.Is.
	DecodeError struct {
		// FilePath is the file being decoded.
		FilePath string
		// Issues lists the individual problems in CUE order.
		Issues []Issue

		causes []error
	}
)

// String returns the path as a string.
func (p CUEPath) String() string { return string(p) }

// Validate returns an error wrapping ErrInvalidCUEPath if the path is blank.
func (p CUEPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidCUEPath, string(p))
	}
	return nil
}

// String renders the issue as "path: message".
func (i Issue) String() string {
	if i.Path != "" {
		return fmt.Sprintf("%s: %s", i.Path, i.Message)
	}
	return i.Message
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	switch len(e.Issues) {
	case 0:
		return fmt.Sprintf("%s: %s", e.FilePath, ErrDecode)
	case 1:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Issues[0])
	}
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, issue.String())
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.FilePath, strings.Join(lines, "\n  "))
}

// Unwrap returns ErrDecode and the underlying errors for errors.Is() compatibility.
func (e *DecodeError) Unwrap() []error {
	return append([]error{ErrDecode}, e.causes...)
}

// FormatError converts a CUE error into a *DecodeError with JSON-path prefixes.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - Info.json: url_schemes[0].scheme: conflicting values 1 and string
//   - config.cue: output.format: 3 errors in empty disjunction
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var cueErr cueerrors.Error
	if !errors.As(err, &cueErr) {
		return &DecodeError{
			FilePath: filePath,
			Issues:   []Issue{{Message: err.Error()}},
			causes:   []error{err},
		}
	}

	cueErrs := cueerrors.Errors(err)
	issues := make([]Issue, 0, len(cueErrs))
	causes := make([]error, 0, len(cueErrs))
	for _, e := range cueErrs {
		causes = append(causes, e)
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimPrefix(msg, path)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		issues = append(issues, Issue{Path: CUEPath(path), Message: msg})
	}

	return &DecodeError{FilePath: filePath, Issues: issues, causes: causes}
}

// formatPath converts a CUE error path to JSON-path notation for user-facing messages.
// CUE provides error paths as flat string slices (e.g., ["url_schemes", "0", "scheme"])
// where numeric elements represent list indices; the result reads "url_schemes[0].scheme".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed the specified maximum size.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: %w: %d bytes exceeds maximum %d bytes",
			filename, ErrFileTooLarge, len(data), maxSize)
	}
	return nil
}
