package wasmgen

// Binary format constants.
const (
	Magic   uint32 = 0x6d736100 // "\0asm"
	Version uint32 = 1
)

// Section ids.
const (
	sectionType     byte = 1
	sectionFunction byte = 3
	sectionMemory   byte = 5
	sectionGlobal   byte = 6
	sectionExport   byte = 7
	sectionCode     byte = 10
	sectionData     byte = 11
)

// Value types.
const (
	I32 byte = 0x7f
	I64 byte = 0x7e
)

// Export kinds.
const (
	KindFunc   byte = 0x00
	KindMemory byte = 0x02
)

// FuncType declares a function signature.
type FuncType struct {
	Params  []byte
	Results []byte
}

// Local declares a run of locals of one value type.
type Local struct {
	Count uint32
	Type  byte
}

// Func is one function: its type index, local declarations, and raw
// instruction body. The encoder appends the terminating end opcode.
type Func struct {
	Type   uint32
	Locals []Local
	Body   []byte
}

// Global is a mutable i32 global with a constant initializer.
type Global struct {
	Init int32
}

// Export names a function or the memory.
type Export struct {
	Name  string
	Kind  byte
	Index uint32
}

// Data is an active data segment at a constant offset in memory 0.
type Data struct {
	Offset uint32
	Bytes  []byte
}

// Module is a core wasm module restricted to what the synthetic
// components need: i32/i64 functions, one memory, mutable i32 globals,
// exports, and active data segments.
type Module struct {
	Types     []FuncType
	Funcs     []Func
	MemoryMin uint32
	Globals   []Global
	Exports   []Export
	Data      []Data
}

// AddType registers a signature and returns its index.
func (m *Module) AddType(params, results []byte) uint32 {
	m.Types = append(m.Types, FuncType{Params: params, Results: results})
	return uint32(len(m.Types) - 1)
}

// AddFunc registers a function and returns its index.
func (m *Module) AddFunc(typeIdx uint32, locals []Local, body []byte) uint32 {
	m.Funcs = append(m.Funcs, Func{Type: typeIdx, Locals: locals, Body: body})
	return uint32(len(m.Funcs) - 1)
}

// ExportFunc exports a function under the given name.
func (m *Module) ExportFunc(name string, idx uint32) {
	m.Exports = append(m.Exports, Export{Name: name, Kind: KindFunc, Index: idx})
}

// Encode serializes the module to the WebAssembly binary format.
func (m *Module) Encode() []byte {
	w := NewWriter()
	w.U32LE(Magic)
	w.U32LE(Version)

	if len(m.Types) > 0 {
		sec := NewWriter()
		sec.U32(uint32(len(m.Types)))
		for _, ft := range m.Types {
			sec.Byte(0x60)
			sec.U32(uint32(len(ft.Params)))
			sec.Raw(ft.Params)
			sec.U32(uint32(len(ft.Results)))
			sec.Raw(ft.Results)
		}
		w.Section(sectionType, sec.Bytes())
	}

	if len(m.Funcs) > 0 {
		sec := NewWriter()
		sec.U32(uint32(len(m.Funcs)))
		for _, f := range m.Funcs {
			sec.U32(f.Type)
		}
		w.Section(sectionFunction, sec.Bytes())
	}

	if m.MemoryMin > 0 {
		sec := NewWriter()
		sec.U32(1)
		sec.Byte(0x00) // limits: min only
		sec.U32(m.MemoryMin)
		w.Section(sectionMemory, sec.Bytes())
	}

	if len(m.Globals) > 0 {
		sec := NewWriter()
		sec.U32(uint32(len(m.Globals)))
		for _, g := range m.Globals {
			sec.Byte(I32)
			sec.Byte(0x01) // mutable
			sec.Byte(opI32Const)
			sec.S32(g.Init)
			sec.Byte(opEnd)
		}
		w.Section(sectionGlobal, sec.Bytes())
	}

	if len(m.Exports) > 0 {
		sec := NewWriter()
		sec.U32(uint32(len(m.Exports)))
		for _, e := range m.Exports {
			sec.Name(e.Name)
			sec.Byte(e.Kind)
			sec.U32(e.Index)
		}
		w.Section(sectionExport, sec.Bytes())
	}

	if len(m.Funcs) > 0 {
		sec := NewWriter()
		sec.U32(uint32(len(m.Funcs)))
		for _, f := range m.Funcs {
			body := NewWriter()
			body.U32(uint32(len(f.Locals)))
			for _, l := range f.Locals {
				body.U32(l.Count)
				body.Byte(l.Type)
			}
			body.Raw(f.Body)
			body.Byte(opEnd)
			sec.U32(uint32(body.Len()))
			sec.Raw(body.Bytes())
		}
		w.Section(sectionCode, sec.Bytes())
	}

	if len(m.Data) > 0 {
		sec := NewWriter()
		sec.U32(uint32(len(m.Data)))
		for _, d := range m.Data {
			sec.Byte(0x00) // active, memory 0
			sec.Byte(opI32Const)
			sec.S32(int32(d.Offset))
			sec.Byte(opEnd)
			sec.U32(uint32(len(d.Bytes)))
			sec.Raw(d.Bytes)
		}
		w.Section(sectionData, sec.Bytes())
	}

	return w.Bytes()
}
