// Package toolerr classifies errors surfaced by MCP tool handlers into the
// four categories the server distinguishes when deciding how to report a
// failure: an unknown-resource/action/method/script lookup miss, a script
// validation failure, a script execution failure, or an upstream HTTP
// failure against the hyperschema or the CMA. Invariant violations (a
// symbol the type program should have but doesn't, a nil dependency) are
// left as plain errors that abort the in-flight call instead of being
// classified here.
package toolerr

import "fmt"

// Kind identifies which of the four reportable error classes an error
// belongs to.
type Kind string

const (
	// KindInput covers unknown resource/action/method/script lookups.
	KindInput Kind = "input"
	// KindValidation covers structural or tsc validation failures.
	KindValidation Kind = "validation"
	// KindExecution covers script execution failures (timeout, non-zero
	// exit, spawn error).
	KindExecution Kind = "execution"
	// KindUpstream covers HTTP failures against the hyperschema or CMA.
	KindUpstream Kind = "upstream"
)

// Error wraps an underlying error with a Kind and an optional remediation
// hint pointing the caller at the discovery tool that would have avoided
// the mistake.
type Error struct {
	Kind       Kind
	Remedy     string
	underlying error
}

// New creates a classified Error.
func New(kind Kind, remedy string, underlying error) *Error {
	return &Error{Kind: kind, Remedy: remedy, underlying: underlying}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Remedy == "" {
		return e.underlying.Error()
	}
	return fmt.Sprintf("%s (%s)", e.underlying.Error(), e.Remedy)
}

// Unwrap allows errors.As/errors.Is to see through to the underlying error.
func (e *Error) Unwrap() error { return e.underlying }

// Inputf builds a KindInput error with a formatted message and remediation.
func Inputf(remedy, format string, args ...any) *Error {
	return New(KindInput, remedy, fmt.Errorf(format, args...))
}

// Upstreamf builds a KindUpstream error with a formatted message.
func Upstreamf(format string, args ...any) *Error {
	return New(KindUpstream, "", fmt.Errorf(format, args...))
}

// Executionf builds a KindExecution error with a formatted message, for
// script workspace failures (spawn error, timeout, non-zero exit).
func Executionf(format string, args ...any) *Error {
	return New(KindExecution, "", fmt.Errorf(format, args...))
}
