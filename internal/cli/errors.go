package cli

import (
	"errors"
	"fmt"
)

// ExitCode is the process status returned by the filecompare binary.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	// ExitFileError covers files that could not be opened, stat'ed or read.
	ExitFileError ExitCode = 1
	// ExitUsageError covers bad flags, arguments and configuration.
	ExitUsageError ExitCode = 2
)

// CLIError carries the exit code the process should terminate with.
type CLIError struct {
	Code    ExitCode
	Message string
	Err     error
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitCodeOf maps err to a process exit status. Errors that are not a
// *CLIError are treated as usage errors, which is what cobra returns for
// unknown flags and bad argument counts.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitUsageError
}
