package x86backend

import (
	"testing"

	"github.com/tachyonjs/corevm/internal/ir"
)

func TestConvertPolicyItofFtoi(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	i := fn.NewArg(0, sess.PInt())
	blk.Append(i)
	itof := fn.NewItof(i)
	blk.Append(itof)

	asm := newFakeAsm()
	pConvert.GenCode(itof, AllocationRecord{Dest: RegOperand(XMM0), Opnds: []Operand{RegOperand(RAX)}}, asm, nil)
	if asm.lines[0] != "cvtsi2sd xmm0, rax" {
		t.Fatalf("unexpected itof emission: %v", asm.lines)
	}

	fval := fn.NewArg(1, ir.TypeF64)
	blk.Append(fval)
	ftoi := fn.NewFtoi(fval)
	blk.Append(ftoi)
	asm2 := newFakeAsm()
	pConvert.GenCode(ftoi, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(XMM0)}}, asm2, nil)
	if asm2.lines[0] != "cvttsd2si rax, xmm0" {
		t.Fatalf("unexpected ftoi emission: %v", asm2.lines)
	}
}

func TestConvertPolicyBoxUnboxICastDegradeToMove(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	boxed := fn.NewArg(0, ir.TypeBox)
	blk.Append(boxed)
	unbox := fn.NewUnbox(sess.PInt(), boxed)
	blk.Append(unbox)

	asm := newFakeAsm()
	pConvert.GenCode(unbox, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RBX)}}, asm, nil)
	if len(asm.lines) != 1 || asm.lines[0] != "mov rax, rbx" {
		t.Fatalf("unbox must degrade to a plain move, got %v", asm.lines)
	}
}
