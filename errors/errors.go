package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the link lifecycle the error occurred
type Phase string

const (
	PhaseDeclare  Phase = "declare"  // builder declaration calls
	PhaseSeal     Phase = "seal"     // post-seal mutation attempts
	PhaseResolve  Phase = "resolve"  // dependency resolution passes
	PhaseCompose  Phase = "compose"  // reducer/enhancer/task assembly
	PhaseFinalize Phase = "finalize" // deferred callback execution
	PhaseRun      Phase = "run"      // background task execution
)

// Kind categorizes the error
type Kind string

const (
	KindDuplicateName    Kind = "duplicate_name"
	KindDuplicateType    Kind = "duplicate_type"
	KindUnresolved       Kind = "unresolved"
	KindSealed           Kind = "sealed"
	KindInvalidUse       Kind = "invalid_use"
	KindBadSelector      Kind = "bad_selector"
	KindUnknownDirective Kind = "unknown_directive"
	KindNotFound         Kind = "not_found"
	KindTaskFailed       Kind = "task_failed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Name   string // offending declared name, if any
	Type   string // offending action-type string, if any
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Name != "" {
		b.WriteString(": name ")
		b.WriteString(fmt.Sprintf("%q", e.Name))
	}

	if e.Type != "" {
		if e.Name != "" {
			b.WriteString(", type ")
		} else {
			b.WriteString(": type ")
		}
		b.WriteString(fmt.Sprintf("%q", e.Type))
	}

	if e.Detail != "" {
		if e.Name != "" || e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Name sets the offending declared name
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Type sets the offending action-type string
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// DuplicateName creates an error for a name published more than once
func DuplicateName(name string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindDuplicateName,
		Name:   name,
		Detail: "name already published",
	}
}

// DuplicateType creates an error for an action-type string claimed twice
func DuplicateType(actionType, claimedBy string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindDuplicateType,
		Type:   actionType,
		Detail: fmt.Sprintf("action type already claimed by %q", claimedBy),
	}
}

// Unresolved creates an error for a reference to a name no bundle publishes
func Unresolved(name string) *Error {
	return &Error{
		Phase: PhaseResolve,
		Kind:  KindUnresolved,
		Name:  name,
	}
}

// Sealed creates an error for a declaration attempted after sealing
func Sealed(op string) *Error {
	return &Error{
		Phase:  PhaseSeal,
		Kind:   KindSealed,
		Detail: fmt.Sprintf("%s called on sealed bundle", op),
	}
}

// InvalidUse creates an error for a malformed use argument shape
func InvalidUse(detail string) *Error {
	return &Error{
		Phase:  PhaseDeclare,
		Kind:   KindInvalidUse,
		Detail: detail,
	}
}

// BadSelector creates an error for an unresolvable or non-function selector
func BadSelector(name, detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindBadSelector,
		Name:   name,
		Detail: detail,
	}
}

// UnknownDirective creates an internal error for an unrecognized declaration kind
func UnknownDirective(kind string) *Error {
	return &Error{
		Phase:  PhaseCompose,
		Kind:   KindUnknownDirective,
		Detail: fmt.Sprintf("unrecognized directive kind %q", kind),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Name:   name,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// TaskFailed wraps a background-task failure
func TaskFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseRun,
		Kind:   KindTaskFailed,
		Detail: "background task failed",
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
