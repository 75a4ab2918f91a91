package ir

import "strings"

// Instruction is a node in the typed SSA graph: it has a stable id, an
// output type (possibly TypeNone), an ordered list of input uses, an
// ordered list of branch targets, a side-effect flag, and a set of
// destination instructions (the use-list inverted). The bidirectional
// invariant `a ∈ b.dests ⇔ b ∈ a.uses` is maintained by addUse/ReplaceUse and
// must never be violated by direct field mutation from outside this file.
type Instruction struct {
	id       int
	session  *Session
	parent   *Block
	opcode   Opcode
	mnemonic string

	typ        Type
	typeParams []Type
	uses       []Value
	targets    []*Block
	// targetRoles names each entry of targets, in the order used by call
	// family setters/getters (e.g. "continue", "throw") and by if/jump.
	targetRoles []string

	sideEffects bool
	outputName  string

	dests map[*Instruction]struct{}

	// phi-only: preds[k] is the predecessor block that uses[k] flows from.
	preds []*Block
}

// ID returns the instruction's stable arena index.
func (i *Instruction) ID() int { return i.id }

// Type implements Value.
func (i *Instruction) Type() Type { return i.typ }

// Name implements Value. If no explicit output name was set, it synthesises
// `$t_<id>` the way the pretty-printer's default naming rule requires.
func (i *Instruction) Name() string {
	if i.outputName != "" {
		return i.outputName
	}
	return "$t_" + itoa(i.id)
}

// SetName overrides the synthesised output name with an explicit one.
func (i *Instruction) SetName(name string) { i.outputName = name }

// Opcode returns the instruction's kind.
func (i *Instruction) Opcode() Opcode { return i.opcode }

// Mnemonic returns the instruction's printable mnemonic, including any type
// suffixes chosen at construction time.
func (i *Instruction) Mnemonic() string { return i.mnemonic }

// Block returns the parent block, or nil if the instruction has been copied
// but not yet inserted, or has been removed from its block.
func (i *Instruction) Block() *Block { return i.parent }

// Uses returns the ordered input values. Callers must not mutate the
// returned slice; use ReplaceUse.
func (i *Instruction) Uses() []Value { return i.uses }

// Targets returns the ordered branch targets. Empty for non-branching
// instructions.
func (i *Instruction) Targets() []*Block { return i.targets }

// TargetRoles names each entry of Targets, in construction order (e.g.
// "continue", "throw" for the call family; "then", "else" for if). Empty
// when the instruction kind does not use named roles.
func (i *Instruction) TargetRoles() []string { return i.targetRoles }

// SideEffects reports whether this instruction has observable side effects
// beyond producing its output value.
func (i *Instruction) SideEffects() bool { return i.sideEffects }

// IsBranch reports whether the instruction transfers control, per the rule
// in SPEC_FULL.md §4.4: true whenever targets is non-empty, and
// unconditionally true for ret/throw even with zero targets.
func (i *Instruction) IsBranch() bool {
	switch i.opcode {
	case OpRet, OpThrow:
		return true
	default:
		return len(i.targets) > 0
	}
}

// Dests returns the set of instructions that use this instruction's result,
// i.e. the inverse of Uses. The bidirectional invariant guarantees this is
// always in sync with every user's Uses list.
func (i *Instruction) Dests() []*Instruction {
	out := make([]*Instruction, 0, len(i.dests))
	for d := range i.dests {
		out = append(out, d)
	}
	return out
}

// addUse appends v to i's input list, and if v is itself an Instruction,
// registers i in v's dests set — maintaining the bidirectional invariant at
// the single point of insertion.
func (i *Instruction) addUse(v Value) {
	i.uses = append(i.uses, v)
	if src, ok := v.(*Instruction); ok {
		if src.dests == nil {
			src.dests = make(map[*Instruction]struct{})
		}
		src.dests[i] = struct{}{}
	}
}

// ReplaceUse rewrites the use at position idx from its old value to newVal,
// updating the old source's dests set (removal, unless another use slot of i
// still holds it) and the new source's dests set (insertion, idempotent by
// construction since dests is a set).
func (i *Instruction) ReplaceUse(idx int, newVal Value) {
	if idx < 0 || idx >= len(i.uses) {
		bug("ReplaceUse: index %d out of range for instruction %s with %d uses", idx, i.mnemonic, len(i.uses))
	}
	old := i.uses[idx]
	if oldInstr, ok := old.(*Instruction); ok {
		stillUsed := false
		for k, u := range i.uses {
			if k != idx && u == old {
				stillUsed = true
				break
			}
		}
		if !stillUsed {
			delete(oldInstr.dests, i)
		}
	}
	i.uses[idx] = newVal
	if newInstr, ok := newVal.(*Instruction); ok {
		if newInstr.dests == nil {
			newInstr.dests = make(map[*Instruction]struct{})
		}
		newInstr.dests[i] = struct{}{}
	}
}

// ReplaceDest mirrors ReplaceUse from the other direction: it rewrites every
// use of old across old's dest set to point at replacement instead,
// including updating each rewriting instruction's uses slice. Named
// replDest in the source this package was distilled from, where it referred
// to an undefined name; here it is implemented, symmetrically with
// ReplaceUse, as "replace every place that uses old as a dest-source with
// replacement".
func (i *Instruction) ReplaceDest(replacement Value) {
	for dest := range i.dests {
		for idx, u := range dest.uses {
			if u == Value(i) {
				dest.ReplaceUse(idx, replacement)
			}
		}
	}
}

// Copy produces an orphan clone sharing the same mnemonic, type parameters,
// uses, and targets, but with no parent block and no dests: the clone is
// not yet a destination of anything, matching the round-trip property that
// copying clears parentBlock and dests.
func (i *Instruction) Copy(fn *Function) *Instruction {
	id, clone := fn.instrs.allocate()
	clone.id = id
	clone.session = i.session
	clone.opcode = i.opcode
	clone.mnemonic = i.mnemonic
	clone.typ = i.typ
	clone.typeParams = append([]Type(nil), i.typeParams...)
	clone.targetRoles = append([]string(nil), i.targetRoles...)
	clone.sideEffects = i.sideEffects
	clone.outputName = i.outputName
	clone.targets = append([]*Block(nil), i.targets...)
	clone.preds = append([]*Block(nil), i.preds...)
	for _, u := range i.uses {
		clone.addUse(u)
	}
	return clone
}

// mnemonicFor synthesises the printable mnemonic per the rule in
// SPEC_FULL.md §3 ("Mnemonic synthesis"): explicit type parameters are appended; otherwise if all
// input types agree and are not box, that type is appended; otherwise every
// input type is appended in order.
func mnemonicFor(base string, typeParams []Type, uses []Value) string {
	if len(typeParams) > 0 {
		parts := make([]string, 0, len(typeParams)+1)
		parts = append(parts, base)
		for _, t := range typeParams {
			parts = append(parts, t.String())
		}
		return strings.Join(parts, "_")
	}
	if len(uses) == 0 {
		return base
	}
	first := uses[0].Type()
	uniform := first != TypeBox
	for _, u := range uses[1:] {
		if u.Type() != first {
			uniform = false
			break
		}
	}
	if uniform {
		return base + "_" + first.String()
	}
	parts := make([]string, 0, len(uses)+1)
	parts = append(parts, base)
	for _, u := range uses {
		parts = append(parts, u.Type().String())
	}
	return strings.Join(parts, "_")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
