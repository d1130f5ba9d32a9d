package shadervalidator

import (
	"context"

	"github.com/wippyai/shader-validator/blob"
)

// Flags control how the validator treats the submitted bytecode.
type Flags uint32

// FlagInPlaceEdit permits the validator to patch the bytecode in place
// (hash slots and the like) instead of producing a rewritten copy.
const FlagInPlaceEdit Flags = 1 << 0

// ServiceClass identifies which service a component factory should
// instantiate.
type ServiceClass uint32

const (
	ClassValidator ServiceClass = 1
	ClassLibrary   ServiceClass = 2
	ClassCompiler  ServiceClass = 3
)

// StatusOK is the operation-result status code for accepted bytecode.
const StatusOK uint32 = 0

// ValidatorService verifies shader bytecode. Provided by the mandatory
// validator component.
type ValidatorService interface {
	// Validate submits bytecode and returns the operation result. The
	// result must be released before the call that produced it returns
	// to its own caller.
	Validate(ctx context.Context, source blob.Blob, flags Flags) (OperationResult, error)
	// Release drops the service reference. Exactly once.
	Release(ctx context.Context)
}

// OperationResult is the validator's response: a status code and, on
// failure, an optional raw error buffer.
type OperationResult interface {
	Status(ctx context.Context) (uint32, error)
	// ErrorBuffer returns the raw encoded error text, or nil when the
	// validator attached none.
	ErrorBuffer(ctx context.Context) (blob.Blob, error)
	Release(ctx context.Context)
}

// LibraryService decodes encoded text blobs to UTF-8. Provided by the
// optional diagnostics component.
type LibraryService interface {
	DecodeUTF8(ctx context.Context, encoded blob.Blob) (string, error)
	Release(ctx context.Context)
}

// CompilerService disassembles shader bytecode into an encoded text
// blob. Provided by the optional diagnostics component.
type CompilerService interface {
	Disassemble(ctx context.Context, source blob.Blob) (blob.Blob, error)
	Release(ctx context.Context)
}
