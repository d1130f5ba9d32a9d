package validator

import (
	"context"

	"go.uber.org/zap"

	shadervalidator "github.com/wippyai/shader-validator"
	"github.com/wippyai/shader-validator/arena"
	"github.com/wippyai/shader-validator/engine"
	"github.com/wippyai/shader-validator/loader"
)

// component is the slice of engine.Component the handle needs: service
// instantiation through the factory, and teardown.
type component interface {
	CreateValidator(ctx context.Context) (shadervalidator.ValidatorService, error)
	CreateLibrary(ctx context.Context) (shadervalidator.LibraryService, error)
	CreateCompiler(ctx context.Context) (shadervalidator.CompilerService, error)
	Close(ctx context.Context) error
}

// componentProvider discovers and loads the two components. The
// validator is mandatory; diagnostics absence is reported as (nil,
// false), never as an error.
type componentProvider interface {
	Validator(ctx context.Context) (component, error)
	Diagnostics(ctx context.Context) (component, bool)
	Close(ctx context.Context) error
}

// Context owns a loaded validator component, an optionally loaded
// diagnostics component, and the service objects instantiated from
// them. Create with New, destroy with Close. A Context is not safe for
// concurrent use; give each worker its own or serialize externally.
type Context struct {
	provider componentProvider

	validatorComp component
	diagComp      component

	validator shadervalidator.ValidatorService
	library   shadervalidator.LibraryService
	compiler  shadervalidator.CompilerService

	closed bool
}

type options struct {
	provider     componentProvider
	loader       *loader.Loader
	engineConfig *engine.Config
}

// Option configures New.
type Option func(*options)

// WithLoader overrides the component loader, replacing the default
// environment-driven search path.
func WithLoader(l *loader.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithEngineConfig overrides the engine configuration.
func WithEngineConfig(cfg engine.Config) Option {
	return func(o *options) { o.engineConfig = &cfg }
}

// withProvider injects a component provider directly. Used by tests.
func withProvider(p componentProvider) Option {
	return func(o *options) { o.provider = p }
}

// New constructs a validation context.
//
// The validator component is a hard dependency: discovery failure,
// a missing factory export, or a failed service instantiation tears
// down all partial state and returns a nil context with the error.
//
// The diagnostics component is best-effort: every failure along its
// path (discovery, load, library service, compiler service) logs a
// warning and leaves the corresponding field unset. A context without
// diagnostics still validates; it just cannot decode error text or
// disassemble.
//
// The context attaches to the arena when one is given: freeing the
// arena closes the context.
func New(ctx context.Context, a *arena.Arena, opts ...Option) (*Context, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	prov := o.provider
	if prov == nil {
		eng, err := engine.NewWithConfig(ctx, o.engineConfig)
		if err != nil {
			return nil, err
		}
		l := o.loader
		if l == nil {
			l = loader.New()
		}
		prov = &wazeroProvider{loader: l, engine: eng}
	}

	c, err := newContext(ctx, prov)
	if err != nil {
		return nil, err
	}
	if a != nil {
		a.OnFree(func() {
			if err := c.Close(context.Background()); err != nil {
				Logger().Warn("close on arena free failed", zap.Error(err))
			}
		})
	}
	return c, nil
}

func newContext(ctx context.Context, prov componentProvider) (*Context, error) {
	c := &Context{provider: prov}

	// The validator component is a hard requirement; fail construction
	// and unwind everything loaded so far if any step fails.
	comp, err := prov.Validator(ctx)
	if err != nil {
		_ = prov.Close(ctx)
		return nil, err
	}
	c.validatorComp = comp

	svc, err := comp.CreateValidator(ctx)
	if err != nil {
		_ = comp.Close(ctx)
		_ = prov.Close(ctx)
		return nil, err
	}
	c.validator = svc

	// Diagnostics are a convenience for developers, not required for
	// correct validation. A present-but-broken component is a good sign
	// the user wants diagnostics, so each failure is logged, but none
	// aborts construction or unloads anything already loaded.
	if diag, ok := prov.Diagnostics(ctx); ok {
		c.diagComp = diag

		if lib, err := diag.CreateLibrary(ctx); err != nil {
			Logger().Warn("unable to create diagnostics library service", zap.Error(err))
		} else {
			c.library = lib
		}

		if compiler, err := diag.CreateCompiler(ctx); err != nil {
			Logger().Warn("unable to create diagnostics compiler service", zap.Error(err))
		} else {
			c.compiler = compiler
		}
	}

	return c, nil
}

// Close releases every held service reference and unloads both
// components, in reverse-acquisition order: validator service, then
// validator component, then the diagnostics services (each only if
// instantiated) and the diagnostics component, and finally the engine.
// The context must not be used afterwards.
func (c *Context) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true

	var firstErr error

	// If we have a context, we have these.
	c.validator.Release(ctx)
	if err := c.validatorComp.Close(ctx); err != nil {
		firstErr = err
	}

	if c.diagComp != nil {
		if c.library != nil {
			c.library.Release(ctx)
		}
		if c.compiler != nil {
			c.compiler.Release(ctx)
		}
		if err := c.diagComp.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if err := c.provider.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// HasDiagnostics reports whether both diagnostics services are present,
// i.e. whether Disassemble can succeed and Validate can decode error
// text.
func (c *Context) HasDiagnostics() bool {
	return c.library != nil && c.compiler != nil
}

// wazeroProvider is the production provider: filesystem discovery via
// the loader, execution via the wazero engine.
type wazeroProvider struct {
	loader *loader.Loader
	engine *engine.Engine
}

func (p *wazeroProvider) Validator(ctx context.Context) (component, error) {
	data, err := p.loader.Validator()
	if err != nil {
		return nil, err
	}
	comp, err := p.engine.Load(ctx, loader.ValidatorComponent, data)
	if err != nil {
		return nil, err
	}
	return comp, nil
}

func (p *wazeroProvider) Diagnostics(ctx context.Context) (component, bool) {
	data, ok := p.loader.Diagnostics()
	if !ok {
		return nil, false
	}
	comp, err := p.engine.Load(ctx, loader.DiagnosticsComponent, data)
	if err != nil {
		Logger().Warn("diagnostics component present but failed to load",
			zap.Error(err))
		return nil, false
	}
	return comp, true
}

func (p *wazeroProvider) Close(ctx context.Context) error {
	return p.engine.Close(ctx)
}
