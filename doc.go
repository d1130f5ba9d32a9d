// Package shadervalidator defines the service interfaces shared between
// the validation protocol (package validator) and the component engine
// (package engine).
//
// The validator component is a hard dependency: without it no context
// can be constructed. The diagnostics component is optional; its library
// and compiler services degrade to warnings when absent. Most users
// should use the validator package:
//
//	root := arena.New(nil)
//	defer root.Free()
//
//	vctx, err := validator.New(ctx, root)
//	if err != nil {
//		// the mandatory validator component is missing or broken
//	}
//	outcome, err := vctx.Validate(ctx, bytecode)
package shadervalidator
