// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strconv"
)

// ExitError is returned by a command that has already reported its outcome
// and only needs the process to exit with Code.
type ExitError struct {
	Code int
	// Err is the failure behind the exit code, if any.
	Err error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitCodeOf maps a command error to a process exit code.
func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
