package blob

import (
	"github.com/wippyai/shader-validator/errors"
)

// Capability identifies one of the view's queryable capabilities.
type Capability uint32

const (
	// CapBuffer is the base-pointer/length capability every consumer of a
	// bytecode blob needs.
	CapBuffer Capability = iota
	// CapEncoding is the text-encoding capability carried only by encoded
	// blobs produced by the diagnostics component.
	CapEncoding
)

// Blob is the interface shape the validator and diagnostics services
// expect from a bytecode buffer: base pointer, length, and a reference
// count. A Blob never grants ownership; Retain and Release exist to
// satisfy the shape and are neutralized on every implementation in this
// package.
type Blob interface {
	Bytes() []byte
	Size() int
	Retain()
	Release()
	// Query asks for a capability beyond the plain buffer. Implementations
	// fail with an unsupported-capability error for anything they do not
	// carry, so a misbehaving consumer cannot treat the view as owning or
	// polymorphic.
	Query(c Capability) error
}

// View is a read-only, non-owning view over caller-owned memory. Its
// lifetime must not exceed the underlying buffer's. The zero View is an
// empty blob.
type View struct {
	data []byte
}

// NewView wraps data without copying. The view holds the caller's slice;
// the caller keeps ownership.
func NewView(data []byte) *View {
	return &View{data: data}
}

// Bytes returns the underlying buffer.
func (v *View) Bytes() []byte { return v.data }

// Size returns the buffer length in bytes.
func (v *View) Size() int { return len(v.data) }

// Retain is a no-op: the view never shares ownership.
func (v *View) Retain() {}

// Release is a no-op: there is nothing to release.
func (v *View) Release() {}

// Query supports only CapBuffer.
func (v *View) Query(c Capability) error {
	if c == CapBuffer {
		return nil
	}
	return errors.Unsupported(errors.PhaseValidate, "bytecode view carries only the buffer capability")
}

var _ Blob = (*View)(nil)
