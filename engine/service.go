package engine

import (
	"context"
	"strings"

	"golang.org/x/text/encoding/unicode"

	shadervalidator "github.com/wippyai/shader-validator"
	"github.com/wippyai/shader-validator/blob"
	"github.com/wippyai/shader-validator/errors"
)

// Per-service operation exports.
const (
	ValidateExport          = "validate"
	ResultStatusExport      = "result-status"
	ResultErrorBufferExport = "result-error-buffer"
	BlobEncodingExport      = "blob-encoding"
	DisassembleExport       = "disassemble"
)

// validatorService adapts a validator component service handle to the
// ValidatorService interface.
type validatorService struct {
	*service
}

func (s *validatorService) Validate(ctx context.Context, source blob.Blob, flags shadervalidator.Flags) (shadervalidator.OperationResult, error) {
	ptr, err := s.comp.upload(ctx, source, 4)
	if err != nil {
		return nil, err
	}

	res, err := s.call(ctx, ValidateExport, errors.PhaseValidate,
		uint64(ptr), uint64(uint32(source.Size())), uint64(flags))
	if err != nil {
		return nil, err
	}
	if res == 0 {
		return nil, errors.Trap(errors.PhaseValidate, "validator produced no operation result", nil)
	}

	return &operationResult{service: &service{comp: s.comp, handle: uint32(res)}}, nil
}

func (s *validatorService) Release(ctx context.Context) { s.release(ctx) }

// operationResult wraps the result handle returned by validate.
type operationResult struct {
	*service
}

func (r *operationResult) Status(ctx context.Context) (uint32, error) {
	status, err := r.call(ctx, ResultStatusExport, errors.PhaseValidate)
	if err != nil {
		return 0, err
	}
	return uint32(status), nil
}

func (r *operationResult) ErrorBuffer(ctx context.Context) (blob.Blob, error) {
	packed, err := r.call(ctx, ResultErrorBufferExport, errors.PhaseValidate)
	if err != nil {
		return nil, err
	}
	data, err := r.comp.readPacked(packed)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return blob.NewEncoded(data, blob.EncodingUnknown), nil
}

func (r *operationResult) Release(ctx context.Context) { r.release(ctx) }

// libraryService adapts a diagnostics library handle.
type libraryService struct {
	*service
}

func (s *libraryService) DecodeUTF8(ctx context.Context, encoded blob.Blob) (string, error) {
	enc := blob.EncodingUnknown
	if e, ok := encoded.(*blob.Encoded); ok {
		enc = e.Encoding()
	}

	if enc == blob.EncodingUnknown {
		var err error
		enc, err = s.blobEncoding(ctx, encoded)
		if err != nil {
			return "", err
		}
	}

	return transcodeUTF8(encoded.Bytes(), enc)
}

// blobEncoding asks the guest library what encoding a blob carries. The
// blob travels into the component's memory for inspection.
func (s *libraryService) blobEncoding(ctx context.Context, b blob.Blob) (blob.Encoding, error) {
	fn := s.comp.module.ExportedFunction(BlobEncodingExport)
	if fn == nil {
		return 0, &errors.Error{
			Phase:     errors.PhaseDecode,
			Kind:      errors.KindExportMissing,
			Component: s.comp.name,
			Detail:    "export " + BlobEncodingExport + " missing",
		}
	}

	ptr, err := s.comp.upload(ctx, b, 1)
	if err != nil {
		return 0, err
	}
	results, err := fn.Call(ctx, uint64(ptr), uint64(uint32(b.Size())))
	if err != nil {
		return 0, errors.Trap(errors.PhaseDecode, BlobEncodingExport, err)
	}
	return blob.Encoding(int32(uint32(results[0]))), nil
}

func (s *libraryService) Release(ctx context.Context) { s.release(ctx) }

// compilerService adapts a diagnostics compiler handle.
type compilerService struct {
	*service
}

func (s *compilerService) Disassemble(ctx context.Context, source blob.Blob) (blob.Blob, error) {
	ptr, err := s.comp.upload(ctx, source, 4)
	if err != nil {
		return nil, err
	}

	packed, err := s.call(ctx, DisassembleExport, errors.PhaseDisassemble,
		uint64(ptr), uint64(uint32(source.Size())))
	if err != nil {
		return nil, err
	}
	if packed == 0 {
		return nil, &errors.Error{
			Phase:     errors.PhaseDisassemble,
			Kind:      errors.KindInvalidData,
			Component: s.comp.name,
			Detail:    "compiler rejected bytecode",
		}
	}

	data, err := s.comp.readPacked(packed)
	if err != nil {
		return nil, err
	}
	return blob.NewEncoded(data, blob.EncodingUnknown), nil
}

func (s *compilerService) Release(ctx context.Context) { s.release(ctx) }

// transcodeUTF8 converts an encoded text buffer to a UTF-8 string.
// Trailing NUL bytes are stripped by computed length; the buffer is
// never modified in place.
func transcodeUTF8(data []byte, enc blob.Encoding) (string, error) {
	var text string
	switch enc {
	case blob.EncodingUTF8:
		text = string(data)
	case blob.EncodingUTF16LE:
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", errors.Decode("UTF-16LE blob", err)
		}
		text = string(decoded)
	case blob.EncodingUTF16BE:
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", errors.Decode("UTF-16BE blob", err)
		}
		text = string(decoded)
	default:
		return "", errors.Decode("unknown blob encoding", nil)
	}
	return strings.TrimRight(text, "\x00"), nil
}

var (
	_ shadervalidator.ValidatorService = (*validatorService)(nil)
	_ shadervalidator.OperationResult  = (*operationResult)(nil)
	_ shadervalidator.LibraryService   = (*libraryService)(nil)
	_ shadervalidator.CompilerService  = (*compilerService)(nil)
)
