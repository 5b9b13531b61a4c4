package cli

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	// ExitValid means every checked document is valid.
	ExitValid = 0
	// ExitInvalid means at least one checked document is invalid.
	ExitInvalid = 1
	// ExitUsage means the command could not run: bad flags, bad configuration
	// or an unusable store.
	ExitUsage = 2
)

// ErrInvalid is wrapped by the check commands when a document fails.
var ErrInvalid = errors.New("invalid taxonomy")

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps an error returned by a command to a process exit code.
// A nil error is ExitValid, an error wrapping ErrInvalid is ExitInvalid and
// anything else is ExitUsage.
func ExitCode(err error) int {
	if err == nil {
		return ExitValid
	}
	if errors.Is(err, ErrInvalid) {
		return ExitInvalid
	}
	return ExitUsage
}
