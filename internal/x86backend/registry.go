package x86backend

import "github.com/tachyonjs/corevm/internal/ir"

// noopPolicy covers pseudo-instructions (arg, get_num_args, get_arg_table,
// phi) which the driver's block loop skips outright, and the HIR family,
// whose actual code generation is a runtime helper-call mechanism outside
// this package's scope (the HIR handler functions are named as external
// collaborators in SPEC_FULL.md §1's non-goals).
type noopPolicy struct{ basePolicy }

func (noopPolicy) GenCode(*ir.Instruction, AllocationRecord, Assembler, *GenInfo) {}

var (
	pAlu          = aluPolicy{}
	pMulUnsigned  = mulUnsignedPolicy{}
	pMulSigned    = mulSignedPolicy{}
	pDiv          = divModPolicy{wantRemainder: false}
	pMod          = divModPolicy{wantRemainder: true}
	pBitwise      = bitwisePolicy{}
	pNot          = notPolicy{}
	pShift        = shiftPolicy{}
	pMove         = movePolicy{}
	pCompare      = comparePolicy{}
	pIf           = ifPolicy{}
	pJump         = jumpPolicy{}
	pRet          = retPolicy{}
	pThrow        = throwPolicy{}
	pCall         = callPolicy{}
	pConvert      = convertPolicy{}
	pLoadStore    = loadStorePolicy{}
	pOvf          = ovfPolicy{}
	pNoop         = noopPolicy{}
)

// PolicyFor returns the policy descriptor governing op. Every Opcode named
// in the ir package's opcode.go other than OpInvalid resolves to exactly
// one policy; an unmapped opcode is a
// bug in this registry, not a legal runtime input, so it panics rather than
// returning a zero value that would silently mis-emit.
func PolicyFor(op ir.Opcode) Policy {
	switch op {
	case ir.OpAdd, ir.OpSub:
		return pAlu
	case ir.OpMul:
		return pMulSigned // signed by default; callers needing the unsigned
		// lowering select pMulUnsigned explicitly via UnsignedMulPolicy,
		// since ir.Opcode alone does not carry operand signedness for mul
		// (unlike shr, which reads it off the output type).
	case ir.OpDiv:
		return pDiv
	case ir.OpMod:
		return pMod
	case ir.OpAnd, ir.OpOr, ir.OpXor:
		return pBitwise
	case ir.OpBitNot:
		return pNot
	case ir.OpShl, ir.OpShr, ir.OpUshr:
		return pShift
	case ir.OpMove:
		return pMove
	case ir.OpLt, ir.OpLte, ir.OpGt, ir.OpGte, ir.OpEq, ir.OpNeq, ir.OpSeq, ir.OpNseq:
		return pCompare
	case ir.OpIf:
		return pIf
	case ir.OpJump:
		return pJump
	case ir.OpRet:
		return pRet
	case ir.OpThrow:
		return pThrow
	case ir.OpCall, ir.OpConstruct, ir.OpGetPropVal, ir.OpPutPropVal:
		return pCall
	case ir.OpUnbox, ir.OpBox, ir.OpICast, ir.OpItof, ir.OpFtoi:
		return pConvert
	case ir.OpLoad, ir.OpStore, ir.OpGetCtx, ir.OpSetCtx:
		return pLoadStore
	case ir.OpAddOvf, ir.OpSubOvf, ir.OpMulOvf:
		return pOvf
	case ir.OpArg, ir.OpGetNumArgs, ir.OpGetArgTable, ir.OpPhi:
		return pNoop
	case ir.OpNot, ir.OpTypeof, ir.OpInstanceof, ir.OpCatch, ir.OpHasProp, ir.OpPropEnum,
		ir.OpDelPropVal, ir.OpMakeArguments, ir.OpNewCell, ir.OpGetCell, ir.OpPutCell,
		ir.OpNewClos, ir.OpGetClos, ir.OpPutClos, ir.OpNewObject, ir.OpNewArray:
		return pNoop
	default:
		unsupported("policy", "no policy registered for opcode %v", op)
		return nil
	}
}

// UnsignedMulPolicy is the policy the emission driver selects instead of
// PolicyFor(ir.OpMul) when the multiplication's operand type is unsigned,
// per §4.6's "unsigned mul requires rax/eax and writes rdx/edx" rule; the
// driver (emit.go) is responsible for making that selection since Policy
// lookup by opcode alone cannot see operand signedness.
func UnsignedMulPolicy() Policy { return pMulUnsigned }
