package engine

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/shader-validator/errors"
)

// Well-known exports every component must provide.
const (
	FactoryExport = "create-service"
	AllocExport   = "alloc"
	ReleaseExport = "release"
	MemoryExport  = "memory"
)

// Engine runs validator and diagnostics components on a wazero runtime.
// An Engine is safe for concurrent use; the Components it loads are not.
type Engine struct {
	runtime wazero.Runtime
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages caps guest memory per component in 64KiB pages.
	// 0 means the wazero default.
	MemoryLimitPages uint32
}

// New creates an engine with default configuration.
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Engine{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}, nil
}

// Load compiles and instantiates a component binary. The name is used
// for diagnostics only. The component must export its memory and the
// alloc entry point; the factory export is resolved later, at service
// instantiation, so a missing factory surfaces as an instantiate-phase
// error rather than a load failure.
func (e *Engine) Load(ctx context.Context, name string, wasmBytes []byte) (*Component, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load(name, err)
	}

	// Anonymous instantiation so several components can coexist.
	module, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, errors.Load(name, err)
	}

	if module.Memory() == nil {
		_ = module.Close(ctx)
		return nil, &errors.Error{
			Phase:     errors.PhaseLoad,
			Kind:      errors.KindExportMissing,
			Component: name,
			Detail:    "component exports no memory",
		}
	}

	alloc := module.ExportedFunction(AllocExport)
	if alloc == nil {
		_ = module.Close(ctx)
		return nil, &errors.Error{
			Phase:     errors.PhaseLoad,
			Kind:      errors.KindExportMissing,
			Component: name,
			Detail:    "component exports no allocator",
		}
	}

	return &Component{
		name:    name,
		module:  module,
		alloc:   alloc,
		release: module.ExportedFunction(ReleaseExport),
	}, nil
}

// Close shuts the runtime down, closing any components still open.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
