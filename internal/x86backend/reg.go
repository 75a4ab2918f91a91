// Package x86backend implements the x86 emission driver described in
// SPEC_FULL.md §4.5/§4.6: per-instruction policy descriptors that declare
// operand/destination register constraints, and the driver that walks a
// pre-computed block ordering and allocation plan to emit assembly.
//
// Grounded on the teacher's backend.Machine/CompilationContext interface
// shape (_examples/faddat-wazero/internal/engine/wazevo/backend/machine.go)
// and on the real amd64 lowering dispatch in
// other_examples/.../amd64/machine.go, generalised from Wasm SSA to this
// package's ir.Instruction taxonomy.
package x86backend

// Reg identifies an x86 register, general-purpose or SSE2, following the
// register-class split documented in the pack's x86 instruction-database
// generator (go-asm-asmdb/internal/genasmdb/x86.go: r8/r16/r32/r64/xmm
// classes). Only the classes the instruction taxonomy actually touches are
// modelled: no AVX, segment, or debug registers.
type Reg uint8

const (
	RegInvalid Reg = iota
	RAX
	RBX
	RCX
	RDX
	RSI
	RDI
	RBP
	RSP
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15

	XMM0
	XMM1
	XMM2
	XMM3
	XMM4
	XMM5
	XMM6
	XMM7
	XMM8
	XMM9
	XMM10
	XMM11
	XMM12
	XMM13
	XMM14
	XMM15
)

func (r Reg) String() string {
	names := map[Reg]string{
		RAX: "rax", RBX: "rbx", RCX: "rcx", RDX: "rdx",
		RSI: "rsi", RDI: "rdi", RBP: "rbp", RSP: "rsp",
		R8: "r8", R9: "r9", R10: "r10", R11: "r11",
		R12: "r12", R13: "r13", R14: "r14", R15: "r15",
		XMM0: "xmm0", XMM1: "xmm1", XMM2: "xmm2", XMM3: "xmm3",
		XMM4: "xmm4", XMM5: "xmm5", XMM6: "xmm6", XMM7: "xmm7",
		XMM8: "xmm8", XMM9: "xmm9", XMM10: "xmm10", XMM11: "xmm11",
		XMM12: "xmm12", XMM13: "xmm13", XMM14: "xmm14", XMM15: "xmm15",
	}
	if n, ok := names[r]; ok {
		return n
	}
	return "invalid"
}

// IsXMM reports whether r belongs to the SSE2 float register class.
func (r Reg) IsXMM() bool { return r >= XMM0 && r <= XMM15 }

// GPCalleeSave is the System V AMD64 callee-save general-purpose register
// set, used as the default CallConvention.
var GPCalleeSave = []Reg{RBX, RBP, R12, R13, R14, R15}
