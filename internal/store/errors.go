package store

import "fmt"

// CommandError represents a command that could not be decoded
type CommandError struct {
	Type    string
	Message string
	Cause   error
}

func (e *CommandError) Error() string {
	prefix := "command error"
	if e.Type != "" {
		prefix = fmt.Sprintf("command error (%s)", e.Type)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}
