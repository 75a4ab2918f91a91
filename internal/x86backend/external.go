package x86backend

import "github.com/tachyonjs/corevm/internal/ir"

// OperandKind distinguishes the three shapes an x86 operand may take.
type OperandKind int

const (
	OperandReg OperandKind = iota
	OperandMem
	OperandImm
)

// Operand is a resolved location: a register, a [base+offset] memory
// reference, or an immediate. The allocation plan (an external collaborator,
// produced by the register allocator) is the sole producer of Operand
// values the emission driver consumes.
type Operand struct {
	Kind    OperandKind
	Reg     Reg
	Base    Reg
	Offset  int32
	ImmBits int64
	ImmF64  float64
	IsFloat bool
}

func RegOperand(r Reg) Operand { return Operand{Kind: OperandReg, Reg: r} }
func MemOperand(base Reg, offset int32) Operand {
	return Operand{Kind: OperandMem, Base: base, Offset: offset}
}
func ImmOperand(v int64) Operand { return Operand{Kind: OperandImm, ImmBits: v} }
func ImmFloatOperand(v float64) Operand {
	return Operand{Kind: OperandImm, ImmF64: v, IsFloat: true}
}

// IsMem reports whether op denotes a memory location (used by move lowering
// to forbid memory-to-memory moves).
func (op Operand) IsMem() bool { return op.Kind == OperandMem }

// FitsImmBits reports whether an integer immediate operand encodes in the
// given bit width (used to decide the two-operand vs three-operand imul
// form; move lowering does not consult it).
func (op Operand) FitsImmBits(bits int) bool {
	if op.Kind != OperandImm || op.IsFloat {
		return false
	}
	v := op.ImmBits
	lo := -(int64(1) << (bits - 1))
	hi := (int64(1) << (bits - 1)) - 1
	return v >= lo && v <= hi
}

// Move is an abstract data movement the allocator emits either as a
// pre-instruction move or as a CFG-edge merge move.
type Move struct {
	Src, Dst Operand
}

// AllocationRecord is the per-instruction annotation produced by register
// allocation: operand/destination locations, pre-instruction moves, and
// scratch registers available to genCode.
type AllocationRecord struct {
	PreMoves []Move
	Opnds    []Operand
	Dest     Operand
	Scratch  []Reg
}

// StackMap describes the spill area the prologue/epilogue must reserve and
// restore.
type StackMap interface {
	// SpillSize is the number of bytes to subtract from the stack pointer
	// in the prologue (and add back in the epilogue).
	SpillSize() int
}

// AllocationPlan is the external interface produced by the register
// allocator (named but not implemented here, per SPEC_FULL.md §6): it maps
// every instruction id to its AllocationRecord and every CFG edge to its
// merge moves, and fixes the flattened block order the driver walks.
type AllocationPlan interface {
	Stack() StackMap
	Instr(id int) AllocationRecord
	MergeMoves(edge ir.Edge) []Move
	BlockOrder() []*ir.Block
}

// Label is an opaque assembler-defined jump target, created by
// Assembler.NewLabel and bound by Assembler.Bind.
type Label interface{}

// Cond is an x86 condition code, selected by if-lowering (lower_if.go) from
// the IR comparison's token and operand signedness.
type Cond int

const (
	CondEQ Cond = iota
	CondNE
	CondLT  // signed <
	CondLE  // signed <=
	CondGT  // signed >
	CondGE  // signed >=
	CondB   // unsigned <
	CondBE  // unsigned <=
	CondA   // unsigned >
	CondAE  // unsigned >=
	CondO   // overflow flag set
)

// Assembler is the external collaborator that accepts emitted mnemonics
// (SPEC_FULL.md §6). Apart from Nop, which this package never issues, only
// the operations the policy descriptors and emission driver issue are named.
type Assembler interface {
	Mov(dst, src Operand)
	Add(dst, src Operand)
	Sub(dst, src Operand)
	Mul(src Operand)          // unsigned multiply: rax/eax * src -> rdx:rax/edx:eax
	IMul2(dst, src Operand)   // signed two-operand form
	IMul3(dst, src Operand, imm int64) // signed three-operand immediate form
	Div(src Operand)
	IDiv(src Operand)
	Cqo()
	Cdq()
	And(dst, src Operand)
	Or(dst, src Operand)
	Xor(dst, src Operand)
	Not(dst Operand)
	Sal(dst Operand, count Operand)
	Sar(dst Operand, count Operand)
	Shr(dst Operand, count Operand)
	Cmp(a, b Operand)
	Jmp(target Label)
	Jcc(cond Cond, target Label)
	Ret()
	Nop()
	NewLabel(name string) Label
	Bind(l Label)
	AddXMM(dst, src Operand)
	SubXMM(dst, src Operand)
	MulXMM(dst, src Operand)
	DivXMM(dst, src Operand)
	CvtI2F(dst, src Operand)
	CvtF2I(dst, src Operand)
}

// CallConvention resolves the calling-convention parameters the prologue,
// epilogue, and call-family lowering need: the return-value register and
// the callee-save register set.
type CallConvention interface {
	RetReg() Reg
	CalleeSave() []Reg
}

// sysVCallConvention is the only CallConvention this package constructs
// directly; a native-compiler convention would be a second implementation
// supplied by the embedder, per §6's "per-'c' vs native-compiler convention
// resolution" line.
type sysVCallConvention struct{}

func (sysVCallConvention) RetReg() Reg          { return RAX }
func (sysVCallConvention) CalleeSave() []Reg    { return GPCalleeSave }

// SysVCallConvention is the default System V AMD64 calling convention.
func SysVCallConvention() CallConvention { return sysVCallConvention{} }
