package ir

import "strings"

// Format renders the whole function as the diagnostic text described in
// SPEC_FULL.md §6, one block per FormatHeader-prefixed group, adapted from
// the teacher's Builder.Format()/basicBlock.FormatHeader() shape.
func (fn *Function) Format() string {
	var b strings.Builder
	for _, blk := range fn.Blocks() {
		b.WriteString(blk.FormatHeader())
		b.WriteByte('\n')
		for _, instr := range blk.Instrs() {
			b.WriteString("\t")
			b.WriteString(instr.Format())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatHeader renders "blk0: <-- (blk_pred, ...)" the way the teacher's
// basicBlock.FormatHeader does, substituting this package's pred/succ
// linkage for wazero's block-parameter linkage.
func (b *Block) FormatHeader() string {
	if len(b.preds) == 0 {
		return b.Name() + ":"
	}
	names := make([]string, len(b.preds))
	for i, p := range b.preds {
		names[i] = p.Name()
	}
	return b.Name() + ": <-- (" + strings.Join(names, ", ") + ")"
}

// Format renders one instruction line. Phi and move get their own shapes
// per §6; every other instruction renders as
// "<type> <name> = <mnemonic> <operand>, ... <role> <target>, ...".
func (i *Instruction) Format() string {
	switch i.opcode {
	case OpPhi:
		return i.formatPhi()
	case OpMove:
		return "move " + valueName(i.uses[0]) + ", " + valueName(i.uses[1])
	default:
		return i.formatDefault()
	}
}

func (i *Instruction) formatDefault() string {
	var b strings.Builder
	if i.typ != TypeNone {
		b.WriteString(i.typ.String())
		b.WriteByte(' ')
		b.WriteString(i.Name())
		b.WriteString(" = ")
	}
	b.WriteString(i.mnemonic)
	for idx, u := range i.uses {
		if idx == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(valueName(u))
	}
	for idx, t := range i.targets {
		if idx == 0 && len(i.uses) == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		if idx < len(i.targetRoles) {
			b.WriteString(i.targetRoles[idx])
			b.WriteByte(' ')
		}
		b.WriteString(t.Name())
	}
	return b.String()
}

func (i *Instruction) formatPhi() string {
	var b strings.Builder
	b.WriteString(i.typ.String())
	b.WriteByte(' ')
	b.WriteString(i.Name())
	b.WriteString(" = phi ")
	for idx, u := range i.uses {
		if idx > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('[')
		b.WriteString(valueName(u))
		b.WriteByte(' ')
		b.WriteString(i.preds[idx].Name())
		b.WriteByte(']')
	}
	return b.String()
}

func valueName(v Value) string {
	return v.Name()
}
