package x86backend

import (
	"fmt"
	"testing"

	"github.com/tachyonjs/corevm/internal/ir"
)

func TestOvfPolicyAddJumpsToOverflowEdge(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	header := fn.NewBlock("header")
	normal := fn.NewBlock("normal")
	overflow := fn.NewBlock("overflow")

	a := fn.NewArg(0, sess.PInt())
	b := fn.NewArg(1, sess.PInt())
	header.Append(a)
	header.Append(b)
	addOvf := fn.NewAddOvf(a, b, normal, overflow)
	header.Append(addOvf)

	gi := &GenInfo{EdgeLabels: map[ir.Edge]Label{
		{Pred: header, Succ: normal}:   fakeLabel("header__normal"),
		{Pred: header, Succ: overflow}: fakeLabel("header__overflow"),
	}}
	asm := newFakeAsm()
	rec := AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RBX)}}
	pOvf.GenCode(addOvf, rec, asm, gi)

	want := []string{
		"add rax, rbx",
		fmt.Sprintf("j%d header__overflow", CondO),
		"jmp header__normal",
	}
	if !equalStrings(asm.lines, want) {
		t.Fatalf("add_ovf: got %v want %v", asm.lines, want)
	}
}

func TestOvfPolicySubAndMulSelectTheirMnemonic(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	header := fn.NewBlock("header")
	normal := fn.NewBlock("normal")
	overflow := fn.NewBlock("overflow")

	a := fn.NewArg(0, sess.PInt())
	b := fn.NewArg(1, sess.PInt())
	header.Append(a)
	header.Append(b)

	gi := &GenInfo{EdgeLabels: map[ir.Edge]Label{
		{Pred: header, Succ: normal}:   fakeLabel("header__normal"),
		{Pred: header, Succ: overflow}: fakeLabel("header__overflow"),
	}}
	rec := AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{RegOperand(RAX), RegOperand(RBX)}}

	subOvf := fn.NewSubOvf(a, b, normal, overflow)
	header.Append(subOvf)
	asm := newFakeAsm()
	pOvf.GenCode(subOvf, rec, asm, gi)
	want := []string{"sub rax, rbx", fmt.Sprintf("j%d header__overflow", CondO), "jmp header__normal"}
	if !equalStrings(asm.lines, want) {
		t.Fatalf("sub_ovf: got %v want %v", asm.lines, want)
	}

	mulOvf := fn.NewMulOvf(a, b, normal, overflow)
	header.Append(mulOvf)
	asm = newFakeAsm()
	pOvf.GenCode(mulOvf, rec, asm, gi)
	want = []string{"imul rax, rbx", fmt.Sprintf("j%d header__overflow", CondO), "jmp header__normal"}
	if !equalStrings(asm.lines, want) {
		t.Fatalf("mul_ovf: got %v want %v", asm.lines, want)
	}
}

func TestPolicyForRoutesOverflowOpcodesToOvfPolicy(t *testing.T) {
	for _, op := range []ir.Opcode{ir.OpAddOvf, ir.OpSubOvf, ir.OpMulOvf} {
		if got := PolicyFor(op); got != Policy(pOvf) {
			t.Fatalf("PolicyFor(%v) = %#v, want pOvf", op, got)
		}
	}
}
