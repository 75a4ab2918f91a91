package x86backend

import "fmt"

// fakeLabel is a label identity usable as a map key and printable for
// assertions, standing in for whatever token a real Assembler returns.
type fakeLabel string

// fakeAsm records every call it receives as a line of text, so tests can
// assert on the emitted instruction sequence without a real assembler.
type fakeAsm struct {
	lines  []string
	labels int
}

func newFakeAsm() *fakeAsm { return &fakeAsm{} }

func (f *fakeAsm) log(format string, args ...interface{}) {
	f.lines = append(f.lines, fmt.Sprintf(format, args...))
}

func (f *fakeAsm) Mov(dst, src Operand)              { f.log("mov %s, %s", dst, src) }
func (f *fakeAsm) Add(dst, src Operand)              { f.log("add %s, %s", dst, src) }
func (f *fakeAsm) Sub(dst, src Operand)              { f.log("sub %s, %s", dst, src) }
func (f *fakeAsm) Mul(src Operand)                   { f.log("mul %s", src) }
func (f *fakeAsm) IMul2(dst, src Operand)            { f.log("imul %s, %s", dst, src) }
func (f *fakeAsm) IMul3(dst, src Operand, imm int64) { f.log("imul %s, %s, %d", dst, src, imm) }
func (f *fakeAsm) Div(src Operand)                   { f.log("div %s", src) }
func (f *fakeAsm) IDiv(src Operand)                  { f.log("idiv %s", src) }
func (f *fakeAsm) Cqo()                               { f.log("cqo") }
func (f *fakeAsm) Cdq()                               { f.log("cdq") }
func (f *fakeAsm) And(dst, src Operand)              { f.log("and %s, %s", dst, src) }
func (f *fakeAsm) Or(dst, src Operand)               { f.log("or %s, %s", dst, src) }
func (f *fakeAsm) Xor(dst, src Operand)              { f.log("xor %s, %s", dst, src) }
func (f *fakeAsm) Not(dst Operand)                   { f.log("not %s", dst) }
func (f *fakeAsm) Sal(dst, count Operand)            { f.log("sal %s, %s", dst, count) }
func (f *fakeAsm) Sar(dst, count Operand)            { f.log("sar %s, %s", dst, count) }
func (f *fakeAsm) Shr(dst, count Operand)            { f.log("shr %s, %s", dst, count) }
func (f *fakeAsm) Cmp(a, b Operand)                  { f.log("cmp %s, %s", a, b) }
func (f *fakeAsm) Jmp(target Label)                  { f.log("jmp %s", target) }
func (f *fakeAsm) Jcc(cond Cond, target Label)       { f.log("j%d %s", cond, target) }
func (f *fakeAsm) Ret()                               { f.log("ret") }
func (f *fakeAsm) Nop()                               { f.log("nop") }
func (f *fakeAsm) NewLabel(name string) Label {
	f.labels++
	return fakeLabel(name)
}
func (f *fakeAsm) Bind(l Label) { f.log("%s:", l) }
func (f *fakeAsm) AddXMM(dst, src Operand) { f.log("addsd %s, %s", dst, src) }
func (f *fakeAsm) SubXMM(dst, src Operand) { f.log("subsd %s, %s", dst, src) }
func (f *fakeAsm) MulXMM(dst, src Operand) { f.log("mulsd %s, %s", dst, src) }
func (f *fakeAsm) DivXMM(dst, src Operand) { f.log("divsd %s, %s", dst, src) }
func (f *fakeAsm) CvtI2F(dst, src Operand) { f.log("cvtsi2sd %s, %s", dst, src) }
func (f *fakeAsm) CvtF2I(dst, src Operand) { f.log("cvttsd2si %s, %s", dst, src) }

func (op Operand) String() string {
	switch op.Kind {
	case OperandReg:
		return op.Reg.String()
	case OperandMem:
		return fmt.Sprintf("[%s+%d]", op.Base, op.Offset)
	default:
		if op.IsFloat {
			return fmt.Sprintf("$%g", op.ImmF64)
		}
		return fmt.Sprintf("$%d", op.ImmBits)
	}
}
