package validator

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/shader-validator/arena"
	"github.com/wippyai/shader-validator/errors"
	"github.com/wippyai/shader-validator/internal/wasmgen"
	"github.com/wippyai/shader-validator/loader"
)

// writeComponents materializes the synthetic components into a temp
// directory and returns a loader rooted there.
func writeComponents(t *testing.T, withDiagnostics bool) *loader.Loader {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, loader.ValidatorComponent), wasmgen.ValidatorComponent(), 0o644); err != nil {
		t.Fatalf("write validator component: %v", err)
	}
	if withDiagnostics {
		if err := os.WriteFile(filepath.Join(dir, loader.DiagnosticsComponent), wasmgen.DiagnosticsComponent(), 0o644); err != nil {
			t.Fatalf("write diagnostics component: %v", err)
		}
	}
	return loader.NewWithPath([]string{dir})
}

func TestEndToEndValidate(t *testing.T) {
	a := arena.New(nil)
	defer a.Free()

	c, err := New(context.Background(), a, WithLoader(writeComponents(t, true)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !c.HasDiagnostics() {
		t.Fatal("HasDiagnostics() = false with both components on disk")
	}

	out, err := c.Validate(context.Background(), wasmgen.GoodBytecode())
	if err != nil {
		t.Fatalf("Validate(good): %v", err)
	}
	if !out.Passed {
		t.Fatalf("Outcome = %+v, want passed", out)
	}

	out, err = c.Validate(context.Background(), wasmgen.BadBytecode())
	if err != nil {
		t.Fatalf("Validate(bad): %v", err)
	}
	if out.Passed {
		t.Fatalf("Outcome = %+v, want rejected", out)
	}
	if out.Message != wasmgen.FixtureError {
		t.Fatalf("Message = %q, want %q", out.Message, wasmgen.FixtureError)
	}
}

func TestEndToEndDisassemble(t *testing.T) {
	a := arena.New(nil)
	defer a.Free()

	c, err := New(context.Background(), a, WithLoader(writeComponents(t, true)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text, err := c.Disassemble(context.Background(), wasmgen.GoodBytecode())
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if text != wasmgen.FixtureDisassembly {
		t.Fatalf("Disassemble = %q, want %q", text, wasmgen.FixtureDisassembly)
	}
}

func TestEndToEndWithoutDiagnostics(t *testing.T) {
	a := arena.New(nil)
	defer a.Free()

	c, err := New(context.Background(), a, WithLoader(writeComponents(t, false)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.HasDiagnostics() {
		t.Fatal("HasDiagnostics() = true without a diagnostics component on disk")
	}

	out, err := c.Validate(context.Background(), wasmgen.BadBytecode())
	if err != nil {
		t.Fatalf("Validate(bad): %v", err)
	}
	if out.Passed {
		t.Fatalf("Outcome = %+v, want rejected", out)
	}
	if out.Message != "" {
		t.Fatalf("Message = %q without diagnostics, want empty", out.Message)
	}

	if _, err := c.Disassemble(context.Background(), wasmgen.GoodBytecode()); !stderrors.Is(err, ErrUnavailable) {
		t.Fatalf("Disassemble error = %v, want ErrUnavailable", err)
	}
}

func TestEndToEndValidatorMissing(t *testing.T) {
	empty := loader.NewWithPath([]string{t.TempDir()})

	_, err := New(context.Background(), nil, WithLoader(empty))
	if !stderrors.Is(err, errors.NotFound("", nil)) {
		t.Fatalf("New error = %v, want a discovery not-found error", err)
	}
}
