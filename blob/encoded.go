package blob

import (
	"github.com/wippyai/shader-validator/errors"
)

// Encoding identifies the text encoding of an encoded blob, as reported
// by the diagnostics library. The non-negative values match the
// component ABI's blob-encoding result.
type Encoding int32

const (
	EncodingUnknown Encoding = -1
	EncodingUTF8    Encoding = 0
	EncodingUTF16LE Encoding = 1
	EncodingUTF16BE Encoding = 2
)

// Encoded is an owned text blob produced by a component: an operation
// result's error buffer or the compiler's disassembly output. Unlike
// View it owns its bytes (a host-side copy of guest memory) and carries
// the encoding capability.
type Encoded struct {
	data []byte
	enc  Encoding
}

// NewEncoded takes ownership of data.
func NewEncoded(data []byte, enc Encoding) *Encoded {
	return &Encoded{data: data, enc: enc}
}

// Bytes returns the encoded text.
func (e *Encoded) Bytes() []byte { return e.data }

// Size returns the blob length in bytes.
func (e *Encoded) Size() int { return len(e.data) }

// Retain is a no-op; the blob is scope-bound to its producing call.
func (e *Encoded) Retain() {}

// Release is a no-op.
func (e *Encoded) Release() {}

// Encoding returns the blob's text encoding, or EncodingUnknown when
// only the diagnostics library can tell.
func (e *Encoded) Encoding() Encoding { return e.enc }

// Query supports the buffer and encoding capabilities.
func (e *Encoded) Query(c Capability) error {
	switch c {
	case CapBuffer, CapEncoding:
		return nil
	}
	return errors.Unsupported(errors.PhaseDecode, "encoded blob carries only buffer and encoding capabilities")
}

var _ Blob = (*Encoded)(nil)
