package x86backend

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/asmfmt"
	"github.com/sirupsen/logrus"

	"github.com/tachyonjs/corevm/internal/ir"
)

// Driver implements the emission protocol from SPEC_FULL.md §4.6, adapted
// from the teacher's backend.compiler's block-walking shape
// (_examples/faddat-wazero/internal/engine/wazevo/backend/compiler.go
// lowerBlocks) generalised to this package's explicit-phi CFG and the
// edge-transition-stub handling that phi resolution requires.
type Driver struct {
	Asm  Assembler
	Conv CallConvention
	Log  *logrus.Logger

	// Dump, if non-nil, receives one line per instruction handed to
	// GenCode (its IR text from Instruction.Format, then "; block:id"),
	// formatted through asmfmt at the end of Emit — a diagnostic surface
	// only (SPEC_FULL.md §4.7), never consulted by Emit's own control flow.
	// The lines are IR text, not the assembler's own mnemonics.
	Dump io.Writer

	dumpBuf bytes.Buffer
}

// NewDriver constructs a Driver targeting asm under calling convention conv.
func NewDriver(asm Assembler, conv CallConvention) *Driver {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return &Driver{Asm: asm, Conv: conv, Log: log}
}

// Emit walks plan.BlockOrder() and drives asm through the five-step
// protocol: prologue, label materialisation, per-block instruction
// emission with critical-edge/fallthrough stub handling, and the epilogue
// emitted inline at each ret.
func (d *Driver) Emit(fn *ir.Function, plan AllocationPlan) {
	order := plan.BlockOrder()
	d.Log.WithField("function", fn.Name).Debug("x86backend: emission started")

	blockLabels := make(map[*ir.Block]Label, len(order))
	for _, blk := range order {
		blockLabels[blk] = d.Asm.NewLabel(blk.Name())
	}
	edgeLabels := make(map[ir.Edge]Label)
	for _, blk := range order {
		for _, e := range blk.Edges() {
			edgeLabels[e] = d.Asm.NewLabel(edgeLabelName(e))
		}
	}
	gi := &GenInfo{BlockLabels: blockLabels, EdgeLabels: edgeLabels, Conv: d.Conv}

	d.emitPrologue(plan)

	for idx, blk := range order {
		for _, pred := range blk.Preds() {
			if pred.IsCritical() {
				d.emitEdgeStub(ir.Edge{Pred: pred, Succ: blk}, plan, gi, true)
			}
		}

		d.Asm.Bind(blockLabels[blk])

		for _, instr := range blk.Instrs() {
			if instr.Opcode().IsPseudo() {
				continue
			}
			rec := plan.Instr(instr.ID())
			for _, mv := range rec.PreMoves {
				emitMove(mv.Src, mv.Dst, d.Asm)
			}
			if instr.Opcode() == ir.OpRet {
				d.emitEpilogue(plan)
			}
			pol := d.policyFor(instr)
			pol.GenCode(instr, rec, d.Asm, gi)
			d.record(blk, instr, rec)
		}

		if succs := blk.Succs(); len(succs) == 1 {
			foldable := idx+1 < len(order) && order[idx+1] == succs[0]
			d.emitEdgeStub(ir.Edge{Pred: blk, Succ: succs[0]}, plan, gi, foldable)
		}
	}

	d.Log.WithField("function", fn.Name).Debug("x86backend: emission finished")
	d.flushDump()
}

// policyFor resolves the instruction's policy descriptor, special-casing
// unsigned multiplication (§4.6's "unsigned mul requires rax/eax"): Opcode
// alone cannot see operand signedness, so the driver — which has the
// instruction in hand — makes that selection rather than PolicyFor.
func (d *Driver) policyFor(instr *ir.Instruction) Policy {
	if instr.Opcode() == ir.OpMul && len(instr.Uses()) > 0 && instr.Uses()[0].Type().IsUnsigned() {
		return UnsignedMulPolicy()
	}
	return PolicyFor(instr.Opcode())
}

// emitEdgeStub emits the edge-transition stub: the edge label, its merge
// moves in order, then an unconditional jump to the successor's block
// label — folded away when fold is true, since the stub is placed
// immediately before that label and falls straight through to it.
func (d *Driver) emitEdgeStub(edge ir.Edge, plan AllocationPlan, gi *GenInfo, fold bool) {
	d.Asm.Bind(gi.EdgeLabels[edge])
	for _, mv := range plan.MergeMoves(edge) {
		emitMove(mv.Src, mv.Dst, d.Asm)
	}
	if !fold {
		d.Asm.Jmp(gi.BlockLabels[edge.Succ])
	}
}

// emitPrologue subtracts the spill area from the stack pointer. Per-register
// callee-save spill moves are not emitted here: they arrive as ordinary
// PreMoves on the first instruction's AllocationRecord, since their
// destination spill-slot offsets are the allocator's to compute, not this
// driver's.
func (d *Driver) emitPrologue(plan AllocationPlan) {
	if size := plan.Stack().SpillSize(); size > 0 {
		d.Asm.Sub(RegOperand(rspPseudo), ImmOperand(int64(size)))
	}
}

func (d *Driver) emitEpilogue(plan AllocationPlan) {
	if size := plan.Stack().SpillSize(); size > 0 {
		d.Asm.Add(RegOperand(rspPseudo), ImmOperand(int64(size)))
	}
}

// rspPseudo is the stack-pointer register used by prologue/epilogue
// adjustment; modelled as RSP directly since this package does not
// otherwise allocate RSP to IR values.
const rspPseudo = RSP

func edgeLabelName(e ir.Edge) string {
	return fmt.Sprintf("%s__%s", e.Pred.Name(), e.Succ.Name())
}

func (d *Driver) record(blk *ir.Block, instr *ir.Instruction, rec AllocationRecord) {
	if d.Dump == nil {
		return
	}
	fmt.Fprintf(&d.dumpBuf, "%s  ; %s:%d\n", instr.Format(), blk.Name(), instr.ID())
}

func (d *Driver) flushDump() {
	if d.Dump == nil {
		return
	}
	formatted, err := asmfmt.Format(&d.dumpBuf)
	if err != nil {
		// asmfmt is a diagnostic nicety; a formatting failure must not
		// take down emission, so fall back to the raw buffer.
		d.Dump.Write(d.dumpBuf.Bytes())
		return
	}
	d.Dump.Write(formatted)
	d.dumpBuf.Reset()
}
