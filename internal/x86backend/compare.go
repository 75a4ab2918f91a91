package x86backend

import "github.com/tachyonjs/corevm/internal/ir"

// comparePolicy emits the standalone path for lt/lte/gt/gte/eq/neq/seq/nseq:
// a single cmp of the two operands. The actual branch decision for an `if`
// fed directly by one of these lives in lower_if.go. No setcc-style
// sequence is emitted, so the boolean result is not written into the
// comparison's destination.
type comparePolicy struct{ basePolicy }

func (comparePolicy) GenCode(instr *ir.Instruction, rec AllocationRecord, asm Assembler, _ *GenInfo) {
	// Only the flags are set; rec.Dest is not touched.
	asm.Cmp(rec.Opnds[0], rec.Opnds[1])
}

// condForCompare maps an IR comparison opcode and operand signedness to the
// x86 condition code, per §4.6's "selects a signed or unsigned jump
// mnemonic based on input signedness" rule (box is treated as signed).
func condForCompare(op ir.Opcode, unsigned bool) Cond {
	switch op {
	case ir.OpLt:
		if unsigned {
			return CondB
		}
		return CondLT
	case ir.OpLte:
		if unsigned {
			return CondBE
		}
		return CondLE
	case ir.OpGt:
		if unsigned {
			return CondA
		}
		return CondGT
	case ir.OpGte:
		if unsigned {
			return CondAE
		}
		return CondGE
	case ir.OpEq, ir.OpSeq:
		return CondEQ
	case ir.OpNeq, ir.OpNseq:
		return CondNE
	default:
		unsupported("compare", "unsupported comparison opcode %v", op)
		return CondEQ
	}
}

func operandIsSigned(instr *ir.Instruction) bool {
	if len(instr.Uses()) == 0 {
		return true
	}
	t := instr.Uses()[0].Type()
	return t == ir.TypeBox || !t.IsUnsigned()
}
