package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  &Error{Phase: PhaseValidate, Kind: KindTrap},
			want: "[validate] trap",
		},
		{
			name: "with component",
			err:  &Error{Phase: PhaseInstantiate, Kind: KindExportMissing, Component: "shader-validator.wasm"},
			want: "[instantiate] export_missing in shader-validator.wasm",
		},
		{
			name: "with detail",
			err:  &Error{Phase: PhaseDecode, Kind: KindInvalidData, Detail: "truncated UTF-16 blob"},
			want: "[decode] invalid_data: truncated UTF-16 blob",
		},
		{
			name: "with cause",
			err:  &Error{Phase: PhaseLoad, Kind: KindInvalidData, Detail: "load component", Cause: fmt.Errorf("bad magic")},
			want: "[load] invalid_data: load component (caused by: bad magic)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	unavailable := Unavailable(PhaseDisassemble, "diagnostics component absent")

	err := Unavailable(PhaseDisassemble, "some other detail")
	if !stderrors.Is(err, unavailable) {
		t.Error("errors with same phase and kind should match")
	}

	other := Unavailable(PhaseValidate, "diagnostics component absent")
	if stderrors.Is(err, other) {
		t.Error("errors with different phase should not match")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Trap(PhaseValidate, "validate call", cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestNotFound_ListsSearchedPaths(t *testing.T) {
	err := NotFound("shader-validator.wasm", []string{"/usr/lib/shader", "/opt/exe"})
	msg := err.Error()
	for _, dir := range []string{"/usr/lib/shader", "/opt/exe"} {
		if !strings.Contains(msg, dir) {
			t.Errorf("message %q should mention searched dir %q", msg, dir)
		}
	}
}
