// Package loader locates the validator and diagnostics components on the
// host filesystem.
//
// The mandatory validator component is searched on the default path (the
// SHADER_COMPONENT_PATH directories, then the working directory) and, as
// a fallback, next to the running executable so deployments can ship the
// component alongside the binary. The optional diagnostics component uses
// the default path only; any failure there means "feature unavailable",
// never an error.
package loader
