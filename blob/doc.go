// Package blob provides the non-owning buffer view submitted to the
// validator and diagnostics services.
//
// A View exposes a caller-owned (pointer, size) region through the Blob
// interface the services consume. Reference counting is neutralized:
// Retain and Release are no-ops, and Query rejects every capability
// except the plain buffer, so no consumer can retain or repurpose the
// view beyond the producing call.
package blob
