package validator

import (
	"context"
	"strings"

	shadervalidator "github.com/wippyai/shader-validator"
	"github.com/wippyai/shader-validator/blob"
)

// The fakes below implement the service interfaces in-memory and record
// lifecycle events into a shared journal so tests can assert ordering.

type journal struct {
	events []string
}

func (j *journal) record(event string) {
	j.events = append(j.events, event)
}

type fakeResult struct {
	journal   *journal
	status    uint32
	errBuf    []byte
	statusErr error
	bufErr    error
	released  int
}

func (r *fakeResult) Status(ctx context.Context) (uint32, error) {
	return r.status, r.statusErr
}

func (r *fakeResult) ErrorBuffer(ctx context.Context) (blob.Blob, error) {
	if r.bufErr != nil {
		return nil, r.bufErr
	}
	if r.errBuf == nil {
		return nil, nil
	}
	return blob.NewEncoded(r.errBuf, blob.EncodingUTF8), nil
}

func (r *fakeResult) Release(ctx context.Context) {
	r.released++
	if r.journal != nil {
		r.journal.record("result.release")
	}
}

type fakeValidatorService struct {
	journal     *journal
	result      *fakeResult
	validateErr error
	lastFlags   shadervalidator.Flags
	lastData    []byte
	released    int
}

func (s *fakeValidatorService) Validate(ctx context.Context, source blob.Blob, flags shadervalidator.Flags) (shadervalidator.OperationResult, error) {
	s.lastFlags = flags
	s.lastData = source.Bytes()
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return s.result, nil
}

func (s *fakeValidatorService) Release(ctx context.Context) {
	s.released++
	if s.journal != nil {
		s.journal.record("validator.release")
	}
}

type fakeLibraryService struct {
	journal   *journal
	decodeErr error
	released  int
}

func (s *fakeLibraryService) DecodeUTF8(ctx context.Context, encoded blob.Blob) (string, error) {
	if s.decodeErr != nil {
		return "", s.decodeErr
	}
	return strings.TrimRight(string(encoded.Bytes()), "\x00"), nil
}

func (s *fakeLibraryService) Release(ctx context.Context) {
	s.released++
	if s.journal != nil {
		s.journal.record("library.release")
	}
}

type fakeCompilerService struct {
	journal   *journal
	output    []byte
	disasmErr error
	released  int
}

func (s *fakeCompilerService) Disassemble(ctx context.Context, source blob.Blob) (blob.Blob, error) {
	if s.disasmErr != nil {
		return nil, s.disasmErr
	}
	return blob.NewEncoded(s.output, blob.EncodingUTF8), nil
}

func (s *fakeCompilerService) Release(ctx context.Context) {
	s.released++
	if s.journal != nil {
		s.journal.record("compiler.release")
	}
}

type fakeComponent struct {
	journal      *journal
	name         string
	validator    *fakeValidatorService
	library      *fakeLibraryService
	compiler     *fakeCompilerService
	validatorErr error
	libraryErr   error
	compilerErr  error
	closed       int
}

func (c *fakeComponent) CreateValidator(ctx context.Context) (shadervalidator.ValidatorService, error) {
	if c.validatorErr != nil {
		return nil, c.validatorErr
	}
	return c.validator, nil
}

func (c *fakeComponent) CreateLibrary(ctx context.Context) (shadervalidator.LibraryService, error) {
	if c.libraryErr != nil {
		return nil, c.libraryErr
	}
	return c.library, nil
}

func (c *fakeComponent) CreateCompiler(ctx context.Context) (shadervalidator.CompilerService, error) {
	if c.compilerErr != nil {
		return nil, c.compilerErr
	}
	return c.compiler, nil
}

func (c *fakeComponent) Close(ctx context.Context) error {
	c.closed++
	if c.journal != nil {
		c.journal.record(c.name + ".close")
	}
	return nil
}

type fakeProvider struct {
	journal      *journal
	validator    *fakeComponent
	validatorErr error
	diag         *fakeComponent
	closed       int
}

func (p *fakeProvider) Validator(ctx context.Context) (component, error) {
	if p.validatorErr != nil {
		return nil, p.validatorErr
	}
	return p.validator, nil
}

func (p *fakeProvider) Diagnostics(ctx context.Context) (component, bool) {
	if p.diag == nil {
		return nil, false
	}
	return p.diag, true
}

func (p *fakeProvider) Close(ctx context.Context) error {
	p.closed++
	if p.journal != nil {
		p.journal.record("provider.close")
	}
	return nil
}
