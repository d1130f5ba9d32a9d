// Package engine runs validator and diagnostics components on wazero.
//
// A component is a core WebAssembly module exporting its memory, an
// aligned bump allocator (alloc), a release entry point, and the fixed
// factory export create-service. The factory takes a service class
// identifier and returns a service handle; class 1 is the validator,
// classes 2 and 3 are the diagnostics library and compiler.
//
// # Call convention
//
// Bytecode travels by value: the engine allocates aligned guest memory
// through the component's own allocator, copies the blob in, and passes
// (ptr, len) pairs. Components return text blobs as a packed
// ptr<<32|len i64; zero means "no blob". Text blobs are copied to the
// host and decoded to UTF-8 with golang.org/x/text, using the encoding
// the diagnostics library reports.
//
// # Thread safety
//
// Engine is safe for concurrent use. Component and the services created
// from it are not; use one component per goroutine or serialize access
// externally.
package engine
