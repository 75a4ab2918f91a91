package x86backend

import "github.com/tachyonjs/corevm/internal/ir"

// ifPolicy lowers the IR `if` instruction. The condition operand is either
// the i8/box result of a prior comparison (see compare.go) or a bare
// boolean value; per the Open Question resolution in DESIGN.md (the i8
// input mismatch named in SPEC_FULL.md §9), a single i8 condition is
// compared against zero rather than requiring two cmp operands.
type ifPolicy struct{ basePolicy }

func (ifPolicy) OpndCanBeImm(*ir.Instruction, int, int) bool { return false }

func (ifPolicy) GenCode(instr *ir.Instruction, rec AllocationRecord, asm Assembler, gi *GenInfo) {
	cond := instr.Uses()[0]
	thenBlk, elseBlk := instr.Targets()[0], instr.Targets()[1]
	// Jump to the CFG edge labels, not the block labels directly: the
	// emission driver binds each critical edge's phi-merge stub at the edge
	// label (emit.go's emitEdgeStub), and `if` always produces a critical
	// edge (two successors), so skipping straight to the block label would
	// silently drop any merge moves a downstream phi depends on.
	thenLabel := gi.EdgeLabels[ir.Edge{Pred: instr.Block(), Succ: thenBlk}]
	elseLabel := gi.EdgeLabels[ir.Edge{Pred: instr.Block(), Succ: elseBlk}]

	if cmpInstr, ok := cond.(*ir.Instruction); ok && isComparisonOpcode(cmpInstr.Opcode()) {
		unsigned := !operandIsSigned(cmpInstr)
		ccode := condForCompare(cmpInstr.Opcode(), unsigned)
		asm.Cmp(rec.Opnds[0], rec.Opnds[1])
		emitCondJump(asm, ccode, thenLabel, elseLabel)
		return
	}

	// Bare i8/box boolean: compare against zero, jump to then on nonzero.
	asm.Cmp(rec.Opnds[0], ImmOperand(0))
	emitCondJump(asm, CondNE, thenLabel, elseLabel)
}

// emitCondJump emits a jcc on cc to trueLabel followed by an unconditional
// jmp to falseLabel. The labels are never swapped; the bare-boolean path
// above already places its immediate 0 on the right of cmp.
func emitCondJump(asm Assembler, cc Cond, trueLabel, falseLabel Label) {
	asm.Jcc(cc, trueLabel)
	asm.Jmp(falseLabel)
}

func isComparisonOpcode(op ir.Opcode) bool {
	switch op {
	case ir.OpLt, ir.OpLte, ir.OpGt, ir.OpGte, ir.OpEq, ir.OpNeq, ir.OpSeq, ir.OpNseq:
		return true
	default:
		return false
	}
}
