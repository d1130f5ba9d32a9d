package engine

import (
	"context"
	stderrors "errors"
	"testing"

	shadervalidator "github.com/wippyai/shader-validator"
	"github.com/wippyai/shader-validator/blob"
	"github.com/wippyai/shader-validator/errors"
	"github.com/wippyai/shader-validator/internal/wasmgen"
)

func newTestEngine(t *testing.T) (*Engine, context.Context) {
	t.Helper()
	ctx := context.Background()
	eng, err := New(ctx)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	t.Cleanup(func() { eng.Close(ctx) })
	return eng, ctx
}

func loadValidator(t *testing.T, eng *Engine, ctx context.Context) *Component {
	t.Helper()
	comp, err := eng.Load(ctx, "shader-validator.wasm", wasmgen.ValidatorComponent())
	if err != nil {
		t.Fatalf("load validator component: %v", err)
	}
	return comp
}

func loadDiagnostics(t *testing.T, eng *Engine, ctx context.Context) *Component {
	t.Helper()
	comp, err := eng.Load(ctx, "shader-diagnostics.wasm", wasmgen.DiagnosticsComponent())
	if err != nil {
		t.Fatalf("load diagnostics component: %v", err)
	}
	return comp
}

func TestLoad_RejectsGarbage(t *testing.T) {
	eng, ctx := newTestEngine(t)

	_, err := eng.Load(ctx, "garbage.wasm", []byte("not a wasm module"))
	if err == nil {
		t.Fatal("Load should reject a non-wasm binary")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Phase != errors.PhaseLoad {
		t.Errorf("error = %v, want load phase", err)
	}
}

func TestLoad_RequiresAllocator(t *testing.T) {
	eng, ctx := newTestEngine(t)

	// A module with memory but no alloc export.
	m := &wasmgen.Module{MemoryMin: 1}
	m.Exports = []wasmgen.Export{{Name: "memory", Kind: wasmgen.KindMemory, Index: 0}}

	_, err := eng.Load(ctx, "no-alloc.wasm", m.Encode())
	if err == nil {
		t.Fatal("Load should require the alloc export")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindExportMissing {
		t.Errorf("error = %v, want kind %q", err, errors.KindExportMissing)
	}
}

func TestCreateValidator(t *testing.T) {
	eng, ctx := newTestEngine(t)
	comp := loadValidator(t, eng, ctx)

	svc, err := comp.CreateValidator(ctx)
	if err != nil {
		t.Fatalf("CreateValidator: %v", err)
	}
	svc.Release(ctx)
}

func TestCreateService_ClassRefused(t *testing.T) {
	eng, ctx := newTestEngine(t)
	comp := loadValidator(t, eng, ctx)

	// The validator component's factory serves class 1 only.
	_, err := comp.CreateLibrary(ctx)
	if err == nil {
		t.Fatal("validator component should refuse the library class")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInstantiation {
		t.Errorf("error = %v, want kind %q", err, errors.KindInstantiation)
	}
}

func TestValidate_GoodBytecode(t *testing.T) {
	eng, ctx := newTestEngine(t)
	comp := loadValidator(t, eng, ctx)

	svc, err := comp.CreateValidator(ctx)
	if err != nil {
		t.Fatalf("CreateValidator: %v", err)
	}
	defer svc.Release(ctx)

	res, err := svc.Validate(ctx, blob.NewView(wasmgen.GoodBytecode()), shadervalidator.FlagInPlaceEdit)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	defer res.Release(ctx)

	status, err := res.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != shadervalidator.StatusOK {
		t.Errorf("status = %d, want %d", status, shadervalidator.StatusOK)
	}
}

func TestValidate_BadBytecode(t *testing.T) {
	eng, ctx := newTestEngine(t)
	validatorComp := loadValidator(t, eng, ctx)
	diagComp := loadDiagnostics(t, eng, ctx)

	svc, err := validatorComp.CreateValidator(ctx)
	if err != nil {
		t.Fatalf("CreateValidator: %v", err)
	}
	defer svc.Release(ctx)

	lib, err := diagComp.CreateLibrary(ctx)
	if err != nil {
		t.Fatalf("CreateLibrary: %v", err)
	}
	defer lib.Release(ctx)

	res, err := svc.Validate(ctx, blob.NewView(wasmgen.BadBytecode()), shadervalidator.FlagInPlaceEdit)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	defer res.Release(ctx)

	status, err := res.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status == shadervalidator.StatusOK {
		t.Fatal("bad bytecode should fail validation")
	}

	buf, err := res.ErrorBuffer(ctx)
	if err != nil {
		t.Fatalf("ErrorBuffer: %v", err)
	}
	if buf == nil {
		t.Fatal("rejected bytecode should carry an error buffer")
	}

	msg, err := lib.DecodeUTF8(ctx, buf)
	if err != nil {
		t.Fatalf("DecodeUTF8: %v", err)
	}
	if msg != wasmgen.FixtureError {
		t.Errorf("error message = %q, want %q", msg, wasmgen.FixtureError)
	}
}

func TestDisassemble(t *testing.T) {
	eng, ctx := newTestEngine(t)
	diagComp := loadDiagnostics(t, eng, ctx)

	compiler, err := diagComp.CreateCompiler(ctx)
	if err != nil {
		t.Fatalf("CreateCompiler: %v", err)
	}
	defer compiler.Release(ctx)

	lib, err := diagComp.CreateLibrary(ctx)
	if err != nil {
		t.Fatalf("CreateLibrary: %v", err)
	}
	defer lib.Release(ctx)

	encoded, err := compiler.Disassemble(ctx, blob.NewView(wasmgen.GoodBytecode()))
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}

	text, err := lib.DecodeUTF8(ctx, encoded)
	if err != nil {
		t.Fatalf("DecodeUTF8: %v", err)
	}
	if text != wasmgen.FixtureDisassembly {
		t.Errorf("disassembly = %q, want %q", text, wasmgen.FixtureDisassembly)
	}
}

func TestDisassemble_Rejected(t *testing.T) {
	eng, ctx := newTestEngine(t)
	diagComp := loadDiagnostics(t, eng, ctx)

	compiler, err := diagComp.CreateCompiler(ctx)
	if err != nil {
		t.Fatalf("CreateCompiler: %v", err)
	}
	defer compiler.Release(ctx)

	_, err = compiler.Disassemble(ctx, blob.NewView(wasmgen.BadBytecode()))
	if err == nil {
		t.Fatal("compiler should reject bytecode without the container magic")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Phase != errors.PhaseDisassemble {
		t.Errorf("error = %v, want disassemble phase", err)
	}
}

func TestUpload_Empty(t *testing.T) {
	eng, ctx := newTestEngine(t)
	comp := loadValidator(t, eng, ctx)

	if _, err := comp.upload(ctx, blob.NewView(nil), 4); err != nil {
		t.Errorf("upload of an empty blob should succeed, got %v", err)
	}
}
