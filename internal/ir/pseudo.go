package ir

// Pseudo-instructions carry no executable code of their own; the emission
// driver's block loop skips them by opcode (see Opcode.IsPseudo). They
// exist purely so the IR can refer to frame-setup values (a formal
// argument, the argument count, the raw argument table) uniformly as
// instructions rather than as a separate value kind.

// NewArg wraps argument index idx as a pseudo-instruction result, so later
// instructions can reference "the value of argument i" through ordinary use
// linkage even before register allocation has assigned it a location.
func (fn *Function) NewArg(idx int, typ Type) *Instruction {
	idxConst := fn.session.IntConst(int64(idx), fn.session.PInt())
	instr := fn.newInstr(OpArg, "arg", []Type{typ}, []Value{idxConst}, nil, nil)
	instr.typ = typ
	return instr
}

// NewGetNumArgs reads the caller-supplied argument count.
func (fn *Function) NewGetNumArgs() *Instruction {
	instr := fn.newInstr(OpGetNumArgs, "get_num_args", nil, nil, nil, nil)
	instr.typ = fn.session.PInt()
	return instr
}

// NewGetArgTable reads the raw pointer to the caller-supplied argument
// table, used by make_arguments and by variadic call lowering.
func (fn *Function) NewGetArgTable() *Instruction {
	instr := fn.newInstr(OpGetArgTable, "get_arg_table", nil, nil, nil, nil)
	instr.typ = TypeRPtr
	return instr
}
