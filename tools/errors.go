package tools

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check.
var (
	ErrUnsupportedTool  = errors.New("unsupported tool")
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

// UnsupportedError reports a tool name outside the registry.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unknown function: %q", e.Name)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupportedTool }

// ArgumentError reports arguments that are not JSON or violate the tool schema.
type ArgumentError struct {
	Tool   Name
	Reason string
	Err    error
}

func (e *ArgumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Tool, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Tool, e.Reason)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ArgumentError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidArguments}
	}
	return []error{ErrInvalidArguments, e.Err}
}
