package ir

// Verify walks fn and checks the invariants from SPEC_FULL.md §8 that can be
// checked proactively in one pass (1: uses/dests bidirectional consistency,
// 2: phi arity/type, 4: per-family output-type rules — re-derived for the
// families whose rule can be recomputed purely from current operand types,
// which also catches a stale output type left behind by a ReplaceUse that
// changed an operand's type, and 5: exactly one terminator per block, at the
// tail). It returns the first violation as a *DiagnosticError with
// Kind == KindInvariant, or nil if fn is well-formed.
func (fn *Function) Verify() (err *DiagnosticError) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(*DiagnosticError); ok {
				err = de
				return
			}
			panic(r)
		}
	}()
	for _, blk := range fn.Blocks() {
		fn.verifyBlock(blk)
	}
	return nil
}

func (fn *Function) verifyBlock(blk *Block) {
	for idx, instr := range blk.Instrs() {
		isLast := idx == len(blk.Instrs())-1
		if instr.IsBranch() != isLast {
			bug("block %s: instruction %s at position %d has IsBranch()=%v but is%s the last instruction",
				blk.Name(), instr.mnemonic, idx, instr.IsBranch(), map[bool]string{true: "", false: " not"}[isLast])
		}
		verifyUsesDests(instr)
		if instr.opcode == OpPhi {
			verifyPhi(instr)
		} else {
			verifyFamilyType(instr)
		}
	}
}

// verifyUsesDests checks invariant 1 for instr's own use edges: every
// instruction-typed use must list instr back in its dests set.
func verifyUsesDests(instr *Instruction) {
	for _, u := range instr.uses {
		src, ok := u.(*Instruction)
		if !ok {
			continue
		}
		if _, present := src.dests[instr]; !present {
			bug("uses/dests invariant broken: %s uses %s but %s is not in its dests", instr.mnemonic, src.mnemonic, instr.mnemonic)
		}
	}
	for d := range instr.dests {
		found := false
		for _, u := range d.uses {
			if u == Value(instr) {
				found = true
				break
			}
		}
		if !found {
			bug("uses/dests invariant broken: %s lists %s as a dest but does not appear in its uses", instr.mnemonic, d.mnemonic)
		}
	}
}

func verifyPhi(instr *Instruction) {
	if len(instr.uses) != len(instr.preds) {
		bug("phi %s: len(uses)=%d != len(preds)=%d", instr.Name(), len(instr.uses), len(instr.preds))
	}
	if len(instr.uses) == 0 {
		return
	}
	want := instr.uses[0].Type()
	for _, u := range instr.uses {
		if u.Type() != want {
			bug("phi %s: incoming values have mismatched types (%s vs %s)", instr.Name(), want, u.Type())
		}
	}
	if instr.typ != want {
		bug("phi %s: declared type %s does not match incoming type %s", instr.Name(), instr.typ, want)
	}
}

// verifyFamilyType re-derives the expected output type from current operand
// types for the families whose rule is purely a function of operand types,
// and compares it against the stored type. Families whose output type
// depends on construction-time-only information (call return type,
// conversion target type parameters) are not re-derived here since their
// "current operand type" is insufficient to reconstruct the original rule.
func verifyFamilyType(instr *Instruction) {
	switch instr.opcode {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod:
		a, b := instr.uses[0].Type(), instr.uses[1].Type()
		if a == b {
			if instr.typ != a {
				bug("%s: expected output type %s, got %s", instr.mnemonic, a, instr.typ)
			}
		}
	case OpAnd, OpOr, OpXor, OpShl, OpShr, OpUshr:
		b := instr.uses[1].Type()
		if instr.typ != b {
			bug("%s: expected output type %s, got %s", instr.mnemonic, b, instr.typ)
		}
	case OpLt, OpLte, OpGt, OpGte, OpEq, OpNeq:
		a := instr.uses[0].Type()
		want := TypeI8
		if a == TypeBox {
			want = TypeBox
		}
		if instr.typ != want {
			bug("%s: expected output type %s, got %s", instr.mnemonic, want, instr.typ)
		}
	}
}
