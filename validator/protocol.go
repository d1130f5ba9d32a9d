package validator

import (
	"context"

	"go.uber.org/zap"

	shadervalidator "github.com/wippyai/shader-validator"
	"github.com/wippyai/shader-validator/blob"
	"github.com/wippyai/shader-validator/errors"
)

// ErrUnavailable signals that disassembly (or another diagnostics
// feature) is unavailable because the diagnostics component is absent.
// Absence is not a failure; test with errors.Is.
var ErrUnavailable = errors.Unavailable(errors.PhaseDisassemble, "diagnostics component unavailable")

// Outcome is the result of one validation. Passed strictly reflects the
// validator's status code; Message is best-effort auxiliary text and
// may be empty even for rejected bytecode.
type Outcome struct {
	Passed  bool
	Message string
}

// Validate submits bytecode to the validator service. The data is
// wrapped in a non-owning view; it is not copied on the host and not
// retained beyond the call.
//
// The returned error covers only transport faults (component trap,
// guest memory fault). A validation rejection is the expected outcome
// {Passed: false}, not an error. Failures while decoding the error text
// are logged and leave Message empty without affecting Passed.
func (c *Context) Validate(ctx context.Context, data []byte) (Outcome, error) {
	source := blob.NewView(data)

	result, err := c.validator.Validate(ctx, source, shadervalidator.FlagInPlaceEdit)
	if err != nil {
		return Outcome{}, err
	}
	defer result.Release(ctx)

	status, err := result.Status(ctx)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Passed: status == shadervalidator.StatusOK}
	if out.Passed {
		return out, nil
	}

	if c.library == nil {
		Logger().Warn("validation failed, but the diagnostics library is unavailable for proper diagnostics")
		return out, nil
	}

	buffer, err := result.ErrorBuffer(ctx)
	if err != nil {
		Logger().Warn("unable to retrieve error buffer", zap.Error(err))
		return out, nil
	}
	if buffer == nil {
		return out, nil
	}
	defer buffer.Release()

	message, err := c.library.DecodeUTF8(ctx, buffer)
	if err != nil {
		Logger().Warn("unable to decode error buffer", zap.Error(err))
		return out, nil
	}
	out.Message = message
	return out, nil
}

// Disassemble produces human-readable disassembly for the bytecode.
// When either diagnostics service is missing it returns ErrUnavailable
// after logging a warning; that is a degraded mode, not a failure.
// Failures in the compiler or the text decoding are logged and returned
// as typed errors; none of them is fatal to the context.
func (c *Context) Disassemble(ctx context.Context, data []byte) (string, error) {
	if c.compiler == nil || c.library == nil {
		Logger().Warn("disassembly requires the library and compiler services from the diagnostics component")
		return "", ErrUnavailable
	}

	source := blob.NewView(data)

	encoded, err := c.compiler.Disassemble(ctx, source)
	if err != nil {
		Logger().Warn("disassemble failed", zap.Error(err))
		return "", err
	}
	defer encoded.Release()

	text, err := c.library.DecodeUTF8(ctx, encoded)
	if err != nil {
		Logger().Warn("unable to decode disassembly", zap.Error(err))
		return "", err
	}
	return text, nil
}
