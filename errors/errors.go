package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDiscover    Phase = "discover"    // component discovery on the host filesystem
	PhaseLoad        Phase = "load"        // component compilation
	PhaseInstantiate Phase = "instantiate" // service instantiation through the factory
	PhaseValidate    Phase = "validate"    // validation protocol
	PhaseDisassemble Phase = "disassemble" // disassembly protocol
	PhaseDecode      Phase = "decode"      // blob-to-text decoding
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindExportMissing Kind = "export_missing"
	KindInstantiation Kind = "instantiation"
	KindUnavailable   Kind = "unavailable"
	KindUnsupported   Kind = "unsupported"
	KindTrap          Kind = "trap"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindInvalidData   Kind = "invalid_data"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Component string
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Component != "" {
		b.WriteString(" in ")
		b.WriteString(e.Component)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two Errors match when
// their Phase and Kind agree, so sentinel values can be compared with
// the standard errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// NotFound creates a discovery error for a component that could not be
// located by any search path.
func NotFound(component string, searched []string) *Error {
	return &Error{
		Phase:     PhaseDiscover,
		Kind:      KindNotFound,
		Component: component,
		Detail:    fmt.Sprintf("not found in %s", strings.Join(searched, ", ")),
	}
}

// ExportMissing creates an error for a component that lacks a required
// export, such as the factory entry point.
func ExportMissing(component, export string) *Error {
	return &Error{
		Phase:     PhaseInstantiate,
		Kind:      KindExportMissing,
		Component: component,
		Detail:    fmt.Sprintf("export %q missing", export),
	}
}

// Instantiation creates a service instantiation error
func Instantiation(component, service string, cause error) *Error {
	return &Error{
		Phase:     PhaseInstantiate,
		Kind:      KindInstantiation,
		Component: component,
		Detail:    fmt.Sprintf("create %s service", service),
		Cause:     cause,
	}
}

// Unavailable creates an error signalling that an optional capability is
// absent. Absence is not a failure; callers test for it with errors.Is.
func Unavailable(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnavailable,
		Detail: what,
	}
}

// Unsupported creates an unsupported capability error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Trap wraps a fault raised by the component while servicing a call
func Trap(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTrap,
		Detail: detail,
		Cause:  cause,
	}
}

// OutOfBounds creates a guest memory range error
func OutOfBounds(phase Phase, ptr, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("guest range ptr=%d len=%d out of bounds", ptr, length),
	}
}

// Load creates a component loading error
func Load(component string, cause error) *Error {
	return &Error{
		Phase:     PhaseLoad,
		Kind:      KindInvalidData,
		Component: component,
		Detail:    "load component",
		Cause:     cause,
	}
}

// Decode creates a blob decoding error
func Decode(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
