package x86backend

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/tachyonjs/corevm/internal/ir"
)

func newTestSession() *ir.Session {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return ir.NewSession(ir.PlatformConfig{Width: ir.PointerWidth64}, log)
}

func TestAluPolicyIntVsFloat(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	a := fn.NewArg(0, ir.TypeI32)
	b := fn.NewArg(1, ir.TypeI32)
	blk.Append(a)
	blk.Append(b)
	add := fn.NewAdd(a, b)
	blk.Append(add)

	rec := AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RBX)}}
	asm := newFakeAsm()
	pAlu.GenCode(add, rec, asm, nil)
	if len(asm.lines) != 1 || asm.lines[0] != "add rax, rbx" {
		t.Fatalf("unexpected emission: %v", asm.lines)
	}

	fA := fn.NewArg(2, ir.TypeF64)
	fB := fn.NewArg(3, ir.TypeF64)
	blk.Append(fA)
	blk.Append(fB)
	fadd := fn.NewAdd(fA, fB)
	blk.Append(fadd)
	asm2 := newFakeAsm()
	pAlu.GenCode(fadd, AllocationRecord{Dest: RegOperand(XMM0), Opnds: []Operand{RegOperand(XMM0), RegOperand(XMM1)}}, asm2, nil)
	if asm2.lines[0] != "addsd xmm0, xmm1" {
		t.Fatalf("expected xmm add, got %v", asm2.lines)
	}
}

func TestMulUnsignedPolicyPinsRaxAndUsesMul(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	a := fn.NewArg(0, ir.TypeU32)
	b := fn.NewArg(1, ir.TypeU32)
	blk.Append(a)
	blk.Append(b)
	mul := fn.NewMul(a, b)
	blk.Append(mul)

	if got := pMulUnsigned.OpndRegSet(mul, 0); len(got) != 1 || got[0] != RAX {
		t.Fatalf("operand0 must be pinned to rax, got %v", got)
	}
	if got := pMulUnsigned.WriteRegSet(mul); len(got) != 1 || got[0] != RDX {
		t.Fatalf("unsigned mul must write rdx, got %v", got)
	}

	asm := newFakeAsm()
	pMulUnsigned.GenCode(mul, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RBX)}}, asm, nil)
	if len(asm.lines) != 1 || asm.lines[0] != "mul rbx" {
		t.Fatalf("expected single-operand mul, got %v", asm.lines)
	}
}

func TestMulSignedPolicyTwoAndThreeOperandForms(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	a := fn.NewArg(0, ir.TypeI32)
	b := fn.NewArg(1, ir.TypeI32)
	blk.Append(a)
	blk.Append(b)
	mul := fn.NewMul(a, b)
	blk.Append(mul)

	// Register operand: 2-op imul, preceded by a mov into dest.
	asm := newFakeAsm()
	pMulSigned.GenCode(mul, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RBX)}}, asm, nil)
	wantLines := []string{"mov rax, rax", "imul rax, rbx"}
	if !equalStrings(asm.lines, wantLines) {
		t.Fatalf("2-op imul form: got %v want %v", asm.lines, wantLines)
	}

	// Immediate fitting in 32 bits: 3-op form, no preceding mov.
	asm2 := newFakeAsm()
	pMulSigned.GenCode(mul, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), ImmOperand(7)}}, asm2, nil)
	if len(asm2.lines) != 1 || asm2.lines[0] != "imul rax, rax, 7" {
		t.Fatalf("3-op imul form: got %v", asm2.lines)
	}
}

func TestDivModPolicySignedAndUnsigned(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	ua := fn.NewArg(0, ir.TypeU64)
	ub := fn.NewArg(1, ir.TypeU64)
	blk.Append(ua)
	blk.Append(ub)
	udiv := fn.NewDiv(ua, ub)
	blk.Append(udiv)

	asm := newFakeAsm()
	pDiv.GenCode(udiv, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RBX)}}, asm, nil)
	want := []string{"xor rdx, rdx", "div rbx"}
	if !equalStrings(asm.lines, want) {
		t.Fatalf("unsigned div: got %v want %v", asm.lines, want)
	}

	sa := fn.NewArg(2, ir.TypeI64)
	sb := fn.NewArg(3, ir.TypeI64)
	blk.Append(sa)
	blk.Append(sb)
	sdiv := fn.NewMod(sa, sb)
	blk.Append(sdiv)
	asm2 := newFakeAsm()
	pMod.GenCode(sdiv, AllocationRecord{Dest: RegOperand(RDX), Opnds: []Operand{RegOperand(RAX), RegOperand(RBX)}}, asm2, nil)
	want2 := []string{"cqo", "idiv rbx"}
	if !equalStrings(asm2.lines, want2) {
		t.Fatalf("signed mod: got %v want %v", asm2.lines, want2)
	}
	if got := pMod.DestRegSet(sdiv); len(got) != 1 || got[0] != RDX {
		t.Fatalf("mod must place result in rdx, got %v", got)
	}
	if got := pDiv.DestRegSet(udiv); len(got) != 1 || got[0] != RAX {
		t.Fatalf("div must place result in rax, got %v", got)
	}
}

func TestBitwiseAndNotPolicies(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	a := fn.NewArg(0, ir.TypeI32)
	b := fn.NewArg(1, ir.TypeI32)
	blk.Append(a)
	blk.Append(b)
	and := fn.NewAnd(a, b)
	blk.Append(and)

	asm := newFakeAsm()
	pBitwise.GenCode(and, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RBX)}}, asm, nil)
	if asm.lines[0] != "and rax, rbx" {
		t.Fatalf("unexpected and emission: %v", asm.lines)
	}

	not := fn.NewNot(a)
	blk.Append(not)
	asm2 := newFakeAsm()
	pNot.GenCode(not, AllocationRecord{Dest: RegOperand(RAX)}, asm2, nil)
	if asm2.lines[0] != "not rax" {
		t.Fatalf("unexpected not emission: %v", asm2.lines)
	}
}

func TestShiftPolicySelectsSarOrShr(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	signed := fn.NewArg(0, ir.TypeI32)
	count := fn.NewArg(1, ir.TypeI32)
	blk.Append(signed)
	blk.Append(count)
	shr := fn.NewShr(signed, count)
	blk.Append(shr)

	asm := newFakeAsm()
	pShift.GenCode(shr, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RCX)}}, asm, nil)
	if asm.lines[0] != "sar rax, rcx" {
		t.Fatalf("signed shr must lower to sar, got %v", asm.lines)
	}

	unsigned := fn.NewArg(2, ir.TypeU32)
	ucount := fn.NewArg(3, ir.TypeU32)
	blk.Append(unsigned)
	blk.Append(ucount)
	ushr := fn.NewShr(unsigned, ucount)
	blk.Append(ushr)
	asm2 := newFakeAsm()
	pShift.GenCode(ushr, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RCX)}}, asm2, nil)
	if asm2.lines[0] != "shr rax, rcx" {
		t.Fatalf("unsigned shr must lower to shr, got %v", asm2.lines)
	}

	if got := pShift.OpndRegSet(shr, 1); len(got) != 1 || got[0] != RCX {
		t.Fatalf("shift count must be pinned to rcx, got %v", got)
	}
}

func TestEmitMoveRejectsMemToMem(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on mem-to-mem move")
		}
		if _, ok := r.(*DiagnosticError); !ok {
			t.Fatalf("expected *DiagnosticError panic, got %T", r)
		}
	}()
	emitMove(MemOperand(RBP, -8), MemOperand(RBP, -16), newFakeAsm())
}

func TestEmitMoveRegToMemOK(t *testing.T) {
	asm := newFakeAsm()
	emitMove(RegOperand(RAX), MemOperand(RBP, -8), asm)
	if len(asm.lines) != 1 {
		t.Fatalf("expected one mov, got %v", asm.lines)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
