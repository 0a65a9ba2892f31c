// Package errors provides structured error types for the epic-linker library.
//
// Errors are categorized by Phase (where in the link lifecycle the error
// occurred) and Kind (error category). The Error type includes rich context:
// the offending declared name, the offending action-type string, and a cause
// chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindUnresolved).
//		Name("currentUser").
//		Detail("no bundle publishes this name").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DuplicateName("currentUser")
//	err := errors.Sealed("defineValue")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
