package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	shadervalidator "github.com/wippyai/shader-validator"
	"github.com/wippyai/shader-validator/blob"
	"github.com/wippyai/shader-validator/errors"
)

// Component is a loaded, instantiated validator or diagnostics
// component. It exclusively owns its module instance; Close drops it.
// A Component is not safe for concurrent use.
type Component struct {
	name    string
	module  api.Module
	alloc   api.Function
	release api.Function
}

// Name returns the component's diagnostic name.
func (c *Component) Name() string { return c.name }

// Close drops the component's module instance. Exactly once.
func (c *Component) Close(ctx context.Context) error {
	if c.module == nil {
		return nil
	}
	err := c.module.Close(ctx)
	c.module = nil
	c.alloc = nil
	c.release = nil
	return err
}

// CreateValidator resolves the factory entry point and instantiates the
// validation service (class 1).
func (c *Component) CreateValidator(ctx context.Context) (shadervalidator.ValidatorService, error) {
	svc, err := c.createService(ctx, shadervalidator.ClassValidator, "validator")
	if err != nil {
		return nil, err
	}
	return &validatorService{service: svc}, nil
}

// CreateLibrary instantiates the diagnostics library service (class 2).
func (c *Component) CreateLibrary(ctx context.Context) (shadervalidator.LibraryService, error) {
	svc, err := c.createService(ctx, shadervalidator.ClassLibrary, "library")
	if err != nil {
		return nil, err
	}
	return &libraryService{service: svc}, nil
}

// CreateCompiler instantiates the diagnostics compiler service (class 3).
func (c *Component) CreateCompiler(ctx context.Context) (shadervalidator.CompilerService, error) {
	svc, err := c.createService(ctx, shadervalidator.ClassCompiler, "compiler")
	if err != nil {
		return nil, err
	}
	return &compilerService{service: svc}, nil
}

// createService resolves the fixed factory export and asks it for a
// service of the given class. A zero handle means the component refused
// the class.
func (c *Component) createService(ctx context.Context, class shadervalidator.ServiceClass, kind string) (*service, error) {
	factory := c.module.ExportedFunction(FactoryExport)
	if factory == nil {
		return nil, errors.ExportMissing(c.name, FactoryExport)
	}

	results, err := factory.Call(ctx, uint64(class))
	if err != nil {
		return nil, errors.Instantiation(c.name, kind, err)
	}
	handle := uint32(results[0])
	if handle == 0 {
		return nil, errors.Instantiation(c.name, kind, nil)
	}

	return &service{comp: c, handle: handle}, nil
}

// upload allocates aligned guest memory and copies the blob into it,
// returning the guest address. The blob is read, never retained.
func (c *Component) upload(ctx context.Context, b blob.Blob, align uint32) (uint32, error) {
	b.Retain()
	defer b.Release()

	size := uint32(b.Size())
	results, err := c.alloc.Call(ctx, uint64(size), uint64(align))
	if err != nil {
		return 0, errors.Trap(errors.PhaseLoad, "guest allocation", err)
	}
	ptr := uint32(results[0])

	if size > 0 && !c.module.Memory().Write(ptr, b.Bytes()) {
		return 0, errors.OutOfBounds(errors.PhaseLoad, ptr, size)
	}
	return ptr, nil
}

// readPacked copies a guest buffer addressed as ptr<<32|len out of the
// component's memory. A zero packed value means "no buffer".
func (c *Component) readPacked(packed uint64) ([]byte, error) {
	if packed == 0 {
		return nil, nil
	}
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if length == 0 {
		return []byte{}, nil
	}
	view, ok := c.module.Memory().Read(ptr, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, ptr, length)
	}
	out := make([]byte, length)
	copy(out, view)
	return out, nil
}

// releaseHandle calls the component's release export for a service or
// result handle. Failures are logged, never propagated.
func (c *Component) releaseHandle(ctx context.Context, handle uint32) {
	if c.release == nil || c.module == nil {
		return
	}
	if _, err := c.release.Call(ctx, uint64(handle)); err != nil {
		Logger().Warn("release failed",
			zap.String("component", c.name),
			zap.Uint32("handle", handle),
			zap.Error(err))
	}
}

// service is a raw handle to an instantiated service object.
type service struct {
	comp   *Component
	handle uint32
}

// call invokes a named export with the service handle prepended.
func (s *service) call(ctx context.Context, export string, phase errors.Phase, args ...uint64) (uint64, error) {
	fn := s.comp.module.ExportedFunction(export)
	if fn == nil {
		return 0, &errors.Error{
			Phase:     phase,
			Kind:      errors.KindExportMissing,
			Component: s.comp.name,
			Detail:    "export " + export + " missing",
		}
	}
	callArgs := append([]uint64{uint64(s.handle)}, args...)
	results, err := fn.Call(ctx, callArgs...)
	if err != nil {
		return 0, errors.Trap(phase, export, err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0], nil
}

func (s *service) release(ctx context.Context) {
	s.comp.releaseHandle(ctx, s.handle)
}
