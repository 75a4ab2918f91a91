package ir

// NewPhi allocates an empty phi instruction at the head of block. Its type
// is TypeNone until the first AddIncoming call, at which point it collapses
// to that value's type, per the phi type-collapse rule in SPEC_FULL.md §3/§4.4.
func (fn *Function) NewPhi(block *Block) *Instruction {
	id, instr := fn.instrs.allocate()
	instr.id = id
	instr.session = fn.session
	instr.opcode = OpPhi
	instr.mnemonic = "phi"
	instr.typ = TypeNone
	instr.parent = block
	// Phis are inserted at block head, ahead of ordinary instructions,
	// rather than via Block.Append (which enforces terminator-last).
	block.instrs = append([]*Instruction{instr}, block.instrs...)
	return instr
}

// AddIncoming appends (v, pred) to the phi's parallel uses/preds arrays,
// enforcing the uniform-type invariant: every incoming value must share the
// same type, and the phi's own type collapses to that type on the first
// call. If v is itself an Instruction, this phi is added to v's dests.
func (i *Instruction) AddIncoming(v Value, pred *Block) {
	if i.opcode != OpPhi {
		bug("AddIncoming called on non-phi instruction %s", i.mnemonic)
	}
	if i.typ == TypeNone && len(i.uses) == 0 {
		i.typ = v.Type()
	} else if v.Type() != i.typ {
		fail("phi", "AddIncoming: type mismatch, phi is %s but incoming value from %s is %s", i.typ, pred.Name(), v.Type())
	}
	i.addUse(v)
	i.preds = append(i.preds, pred)
}

// GetIncoming returns the use matched to predecessor pred. Panics if pred is
// not among the phi's recorded predecessors.
func (i *Instruction) GetIncoming(pred *Block) Value {
	if i.opcode != OpPhi {
		bug("GetIncoming called on non-phi instruction %s", i.mnemonic)
	}
	for k, p := range i.preds {
		if p == pred {
			return i.uses[k]
		}
	}
	bug("GetIncoming: %s is not a recorded predecessor of phi %s", pred.Name(), i.Name())
	return nil
}

// ReplPred rewrites the predecessor slot matching old to new, leaving the
// corresponding use value untouched. Panics if old is not a recorded
// predecessor.
func (i *Instruction) ReplPred(old, new *Block) {
	if i.opcode != OpPhi {
		bug("ReplPred called on non-phi instruction %s", i.mnemonic)
	}
	for k, p := range i.preds {
		if p == old {
			i.preds[k] = new
			return
		}
	}
	bug("ReplPred: %s is not a recorded predecessor of phi %s", old.Name(), i.Name())
}

// Preds returns the phi's parallel predecessor array. Panics if called on a
// non-phi instruction.
func (i *Instruction) Preds() []*Block {
	if i.opcode != OpPhi {
		bug("Preds called on non-phi instruction %s", i.mnemonic)
	}
	return i.preds
}
