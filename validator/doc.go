// Package validator is the shader bytecode validation and diagnostics
// service.
//
// New loads the mandatory validator component (hard failure when it
// cannot be found or instantiated) and the optional diagnostics
// component (every failure degrades to a logged warning). The resulting
// Context supports two operations:
//
//	outcome, err := vctx.Validate(ctx, bytecode)
//	text, err := vctx.Disassemble(ctx, bytecode)
//
// Validate's outcome strictly reflects the validator's status; the
// error message is best-effort and requires the diagnostics component.
// Disassemble returns ErrUnavailable when diagnostics are absent.
//
// A Context is not safe for concurrent use. The service objects inside
// it are not specified as thread-safe by their provider, so callers
// needing parallel validation should create one context per worker or
// serialize access with an external lock.
package validator
