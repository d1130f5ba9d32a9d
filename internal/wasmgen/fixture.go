package wasmgen

// Synthetic validator and diagnostics components for tests. They speak
// the exact ABI the engine expects: a create-service factory, a bump
// allocator, release, and the per-component operations. The validator
// accepts any bytecode whose container magic is "DXBC".

// ContainerMagic is the little-endian i32 value of "DXBC".
const ContainerMagic int32 = 0x43425844

// FixtureError is the error buffer the synthetic validator reports for
// rejected bytecode.
const FixtureError = "validation failed: container magic mismatch"

// FixtureDisassembly is the text blob the synthetic compiler produces.
const FixtureDisassembly = "; shader-model 6.0\ndefine void @main() {\n  ret void\n}\n"

const (
	errorOffset  = 1024
	disasmOffset = 2048
	heapBase     = 8192
)

// GoodBytecode returns a buffer the synthetic validator accepts.
func GoodBytecode() []byte {
	return []byte("DXBC\x00\x01\x02\x03 synthetic shader payload")
}

// BadBytecode returns a buffer the synthetic validator rejects.
func BadBytecode() []byte {
	return []byte("JUNK not a shader container")
}

func packed(ptr, length uint32) int64 {
	return int64(uint64(ptr)<<32 | uint64(length))
}

// allocBody implements alloc(size, align) as a bump allocator over
// global 0, rounding the bump pointer up to the requested alignment.
func allocBody() []byte {
	return NewBody().
		GlobalGet(0).
		LocalGet(1).
		I32Add().
		I32Const(1).
		I32Sub().
		LocalGet(1).
		I32Const(1).
		I32Sub().
		I32Const(-1).
		I32Xor().
		I32And().
		LocalSet(2).
		LocalGet(2).
		LocalGet(0).
		I32Add().
		GlobalSet(0).
		LocalGet(2).
		Bytes()
}

// ValidatorComponent builds the synthetic validator component. Its
// factory serves class 1 (validator) only; validate returns an
// operation-result whose status reflects the container magic and whose
// error buffer points at FixtureError.
func ValidatorComponent() []byte {
	m := &Module{MemoryMin: 1}
	m.Globals = []Global{{Init: heapBase}}
	m.Data = []Data{{Offset: errorOffset, Bytes: []byte(FixtureError)}}

	tAlloc := m.AddType([]byte{I32, I32}, []byte{I32})
	tUnary := m.AddType([]byte{I32}, []byte{I32})
	tRelease := m.AddType([]byte{I32}, nil)
	tValidate := m.AddType([]byte{I32, I32, I32, I32}, []byte{I32})
	tBuffer := m.AddType([]byte{I32}, []byte{I64})

	alloc := m.AddFunc(tAlloc, []Local{{Count: 1, Type: I32}}, allocBody())

	factory := m.AddFunc(tUnary, nil, NewBody().
		LocalGet(0).
		I32Const(1).
		I32Eq().
		If(I32).
		I32Const(1).
		Else().
		I32Const(0).
		End().
		Bytes())

	release := m.AddFunc(tRelease, nil, NewBody().Bytes())

	validate := m.AddFunc(tValidate, nil, NewBody().
		LocalGet(1).
		Bytes())

	status := m.AddFunc(tUnary, nil, NewBody().
		LocalGet(0).
		I32Load(0, 0).
		I32Const(ContainerMagic).
		I32Ne().
		Bytes())

	errBuffer := m.AddFunc(tBuffer, nil, NewBody().
		I64Const(packed(errorOffset, uint32(len(FixtureError)))).
		Bytes())

	m.Exports = []Export{
		{Name: "memory", Kind: KindMemory, Index: 0},
		{Name: "alloc", Kind: KindFunc, Index: alloc},
		{Name: "create-service", Kind: KindFunc, Index: factory},
		{Name: "release", Kind: KindFunc, Index: release},
		{Name: "validate", Kind: KindFunc, Index: validate},
		{Name: "result-status", Kind: KindFunc, Index: status},
		{Name: "result-error-buffer", Kind: KindFunc, Index: errBuffer},
	}

	return m.Encode()
}

// DiagnosticsComponent builds the synthetic diagnostics component. Its
// factory serves class 2 (library) and class 3 (compiler); disassemble
// succeeds only for bytecode with the container magic.
func DiagnosticsComponent() []byte {
	m := &Module{MemoryMin: 1}
	m.Globals = []Global{{Init: heapBase}}
	m.Data = []Data{{Offset: disasmOffset, Bytes: []byte(FixtureDisassembly)}}

	tAlloc := m.AddType([]byte{I32, I32}, []byte{I32})
	tUnary := m.AddType([]byte{I32}, []byte{I32})
	tRelease := m.AddType([]byte{I32}, nil)
	tDisasm := m.AddType([]byte{I32, I32, I32}, []byte{I64})

	alloc := m.AddFunc(tAlloc, []Local{{Count: 1, Type: I32}}, allocBody())

	factory := m.AddFunc(tUnary, nil, NewBody().
		LocalGet(0).
		I32Const(2).
		I32Eq().
		If(I32).
		I32Const(2).
		Else().
		LocalGet(0).
		I32Const(3).
		I32Eq().
		If(I32).
		I32Const(3).
		Else().
		I32Const(0).
		End().
		End().
		Bytes())

	release := m.AddFunc(tRelease, nil, NewBody().Bytes())

	encoding := m.AddFunc(tAlloc, nil, NewBody().
		I32Const(0).
		Bytes())

	disasm := m.AddFunc(tDisasm, nil, NewBody().
		LocalGet(1).
		I32Load(0, 0).
		I32Const(ContainerMagic).
		I32Eq().
		If(I64).
		I64Const(packed(disasmOffset, uint32(len(FixtureDisassembly)))).
		Else().
		I64Const(0).
		End().
		Bytes())

	m.Exports = []Export{
		{Name: "memory", Kind: KindMemory, Index: 0},
		{Name: "alloc", Kind: KindFunc, Index: alloc},
		{Name: "create-service", Kind: KindFunc, Index: factory},
		{Name: "release", Kind: KindFunc, Index: release},
		{Name: "blob-encoding", Kind: KindFunc, Index: encoding},
		{Name: "disassemble", Kind: KindFunc, Index: disasm},
	}

	return m.Encode()
}
