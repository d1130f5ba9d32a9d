package wasmgen

// Opcodes used by the synthetic components.
const (
	opIf   byte = 0x04
	opElse byte = 0x05
	opEnd  byte = 0x0b

	opLocalGet  byte = 0x20
	opLocalSet  byte = 0x21
	opGlobalGet byte = 0x23
	opGlobalSet byte = 0x24

	opI32Load byte = 0x28

	opI32Const byte = 0x41
	opI64Const byte = 0x42

	opI32Eq byte = 0x46
	opI32Ne byte = 0x47

	opI32Add byte = 0x6a
	opI32Sub byte = 0x6b
	opI32And byte = 0x71
	opI32Xor byte = 0x73
)

// Body accumulates a function body instruction by instruction. The
// terminating end opcode is appended by the module encoder, not here.
type Body struct {
	w Writer
}

// NewBody creates an empty body.
func NewBody() *Body { return &Body{} }

// Bytes returns the encoded instructions.
func (b *Body) Bytes() []byte { return b.w.Bytes() }

func (b *Body) LocalGet(i uint32) *Body { b.w.Byte(opLocalGet); b.w.U32(i); return b }

func (b *Body) LocalSet(i uint32) *Body { b.w.Byte(opLocalSet); b.w.U32(i); return b }

func (b *Body) GlobalGet(i uint32) *Body { b.w.Byte(opGlobalGet); b.w.U32(i); return b }

func (b *Body) GlobalSet(i uint32) *Body { b.w.Byte(opGlobalSet); b.w.U32(i); return b }

func (b *Body) I32Const(v int32) *Body { b.w.Byte(opI32Const); b.w.S32(v); return b }

func (b *Body) I64Const(v int64) *Body { b.w.Byte(opI64Const); b.w.S64(v); return b }

// I32Load loads an i32 with the given alignment exponent and offset.
func (b *Body) I32Load(align, offset uint32) *Body {
	b.w.Byte(opI32Load)
	b.w.U32(align)
	b.w.U32(offset)
	return b
}

func (b *Body) I32Eq() *Body { b.w.Byte(opI32Eq); return b }

func (b *Body) I32Ne() *Body { b.w.Byte(opI32Ne); return b }

func (b *Body) I32Add() *Body { b.w.Byte(opI32Add); return b }

func (b *Body) I32Sub() *Body { b.w.Byte(opI32Sub); return b }

func (b *Body) I32And() *Body { b.w.Byte(opI32And); return b }

func (b *Body) I32Xor() *Body { b.w.Byte(opI32Xor); return b }

// If opens an if block with the given result type (0x40 for none).
func (b *Body) If(result byte) *Body { b.w.Byte(opIf); b.w.Byte(result); return b }

func (b *Body) Else() *Body { b.w.Byte(opElse); return b }

func (b *Body) End() *Body { b.w.Byte(opEnd); return b }
