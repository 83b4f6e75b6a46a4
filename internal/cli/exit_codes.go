package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/coronawarn/grenrc/internal/errors"
)

// Exit codes for the grenrc CLI.
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitValidationFailed indicates a config failed validation
	ExitValidationFailed = 1

	// ExitRuntimeError indicates an I/O or environment failure unrelated to
	// the config contents, such as an unwritable output file
	ExitRuntimeError = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitConfigNotFound indicates no config file could be found or read
	ExitConfigNotFound = 4
)

// ExitError carries an exit code for errors already reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Configuration:
			return ExitConfigNotFound
		case clierrors.Validation:
			return ExitValidationFailed
		}
	}
	return ExitRuntimeError
}
