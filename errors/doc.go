// Package errors provides structured error types for the shader-validator library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Convenience constructors cover the common patterns:
//
//	err := errors.NotFound("shader-validator.wasm", searched)
//	err := errors.ExportMissing("shader-diagnostics.wasm", "create-service")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two Errors match under errors.Is when their Phase and Kind agree, which is
// how sentinels such as validator.ErrUnavailable are tested.
package errors
