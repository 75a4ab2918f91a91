package ir

// Function is the unit of compilation: one Function holds one arena triple
// (arguments, instructions, blocks) and belongs to exactly one Session. It
// is Reset-able for reuse across compilations of different JavaScript
// functions within the same process, mirroring the teacher's per-Builder
// pooling (ssa/builder.go's Reset/pool pattern).
type Function struct {
	session *Session
	Name    string

	args   pool[Argument]
	instrs pool[Instruction]
	blocks pool[Block]

	blockOrder []*Block
}

// NewFunction allocates a Function bound to session.
func NewFunction(session *Session, name string) *Function {
	fn := &Function{
		session: session,
		Name:    name,
		args:    newPool[Argument](),
		instrs:  newPool[Instruction](),
		blocks:  newPool[Block](),
	}
	session.Log.WithField("function", name).Debug("ir: function allocated")
	return fn
}

// Session returns the owning Session.
func (fn *Function) Session() *Session { return fn.session }

// Reset reclaims every arena page so fn can be reused for another function,
// per the teacher's Builder.Reset contract.
func (fn *Function) Reset(name string) {
	fn.Name = name
	fn.args.reset()
	fn.instrs.reset()
	fn.blocks.reset()
	fn.blockOrder = fn.blockOrder[:0]
}

// NewArgument declares a formal parameter of the given type and name at the
// next positional index.
func (fn *Function) NewArgument(typ Type, name string) *Argument {
	id, arg := fn.args.allocate()
	arg.typ = typ
	arg.name = name
	arg.Index = id
	return arg
}

// NewBlock allocates a fresh, empty, unsealed basic block.
func (fn *Function) NewBlock(name string) *Block {
	id, b := fn.blocks.allocate()
	b.id = id
	b.fn = fn
	b.name = name
	fn.blockOrder = append(fn.blockOrder, b)
	return b
}

// Blocks returns every block allocated so far, in allocation order. This is
// the default block ordering; passes that compute a different layout
// (reverse postorder, hot/cold split, ...) pass their own slice to the
// emission driver instead of relying on this order.
func (fn *Function) Blocks() []*Block {
	return fn.blockOrder
}

// NumInstructions returns the number of instructions allocated so far,
// primarily useful for test assertions and capacity hints.
func (fn *Function) NumInstructions() int { return fn.instrs.len() }

// newInstr is the shared allocation path every family constructor in
// families.go funnels through: it allocates from the arena, wires the
// mnemonic, type parameters, and targets, and links every input's dests set
// via addUse. It does not append the instruction to any block; callers do
// that once validation succeeds, via Block.Append (or NewPhi for phis).
func (fn *Function) newInstr(op Opcode, explicitMnemonic string, typeParams []Type, inputs []Value, targets []*Block, targetRoles []string) *Instruction {
	id, instr := fn.instrs.allocate()
	instr.id = id
	instr.session = fn.session
	instr.opcode = op
	instr.typeParams = typeParams
	instr.targets = targets
	instr.targetRoles = targetRoles
	for _, v := range inputs {
		instr.addUse(v)
	}
	if explicitMnemonic != "" {
		instr.mnemonic = explicitMnemonic
	} else {
		instr.mnemonic = mnemonicFor(op.baseMnemonic(), typeParams, inputs)
	}
	return instr
}
