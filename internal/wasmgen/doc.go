// Package wasmgen writes minimal WebAssembly binaries and builds the
// synthetic validator/diagnostics components the tests run against. It
// covers only the sections and instructions those fixtures need.
package wasmgen
