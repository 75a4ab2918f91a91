package x86backend

import (
	"testing"

	"github.com/tachyonjs/corevm/internal/ir"
)

func TestLoadStorePolicyLoadAndStore(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	ptr := fn.NewArg(0, ir.TypeRPtr)
	off := session64Const(sess, 8)
	blk.Append(ptr)
	load := fn.NewLoad(ir.TypeI32, ptr, off)
	blk.Append(load)

	asm := newFakeAsm()
	pLoadStore.GenCode(load, AllocationRecord{Dest: RegOperand(RAX), Opnds: []Operand{MemOperand(RBX, 8)}}, asm, nil)
	if len(asm.lines) != 1 || asm.lines[0] != "mov rax, [rbx+8]" {
		t.Fatalf("unexpected load emission: %v", asm.lines)
	}

	val := fn.NewArg(1, ir.TypeI32)
	blk.Append(val)
	store := fn.NewStore(ptr, off, val)
	blk.Append(store)
	asm2 := newFakeAsm()
	pLoadStore.GenCode(store, AllocationRecord{Dest: MemOperand(RBX, 8), Opnds: []Operand{RegOperand(RAX)}}, asm2, nil)
	if len(asm2.lines) != 1 || asm2.lines[0] != "mov [rbx+8], rax" {
		t.Fatalf("unexpected store emission: %v", asm2.lines)
	}
}

func TestLoadStorePolicyGetSetCtxUseFixedRegister(t *testing.T) {
	sess := newTestSession()
	fn := ir.NewFunction(sess, "f")
	blk := fn.NewBlock("entry")
	getCtx := fn.NewGetCtx()
	blk.Append(getCtx)

	asm := newFakeAsm()
	pLoadStore.GenCode(getCtx, AllocationRecord{Dest: RegOperand(RBX)}, asm, nil)
	if len(asm.lines) != 1 || asm.lines[0] != "mov rbx, r15" {
		t.Fatalf("get_ctx must read from the fixed context register, got %v", asm.lines)
	}

	v := fn.NewArg(0, ir.TypeRPtr)
	blk.Append(v)
	setCtx := fn.NewSetCtx(v)
	blk.Append(setCtx)
	asm2 := newFakeAsm()
	pLoadStore.GenCode(setCtx, AllocationRecord{Opnds: []Operand{RegOperand(RBX)}}, asm2, nil)
	if len(asm2.lines) != 1 || asm2.lines[0] != "mov r15, rbx" {
		t.Fatalf("set_ctx must write to the fixed context register, got %v", asm2.lines)
	}
}

func session64Const(sess *ir.Session, v int64) *ir.Constant {
	return sess.IntConst(v, sess.PInt())
}
