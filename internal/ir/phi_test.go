package ir

import "testing"

func TestPhiGetIncomingAndReplPred(t *testing.T) {
	_, fn := newTestFn(t)
	merge := fn.NewBlock("merge")
	pred1 := fn.NewBlock("pred1")
	pred2 := fn.NewBlock("pred2")
	phi := fn.NewPhi(merge)

	v1 := fn.Session().BoxedIntConst(1)
	v2 := fn.Session().BoxedIntConst(2)
	phi.AddIncoming(v1, pred1)
	phi.AddIncoming(v2, pred2)

	if got := phi.GetIncoming(pred1); got != Value(v1) {
		t.Fatalf("GetIncoming(pred1) = %v, want v1", got)
	}

	pred3 := fn.NewBlock("pred3")
	phi.ReplPred(pred1, pred3)
	if got := phi.GetIncoming(pred3); got != Value(v1) {
		t.Fatalf("after ReplPred, GetIncoming(pred3) = %v, want v1 (use must stay put)", got)
	}
}

func TestPhiGetIncomingUnknownPredPanics(t *testing.T) {
	_, fn := newTestFn(t)
	merge := fn.NewBlock("merge")
	unrelated := fn.NewBlock("unrelated")
	phi := fn.NewPhi(merge)
	phi.AddIncoming(fn.Session().BoxedIntConst(1), fn.NewBlock("pred1"))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic calling GetIncoming with an unknown predecessor")
		}
	}()
	phi.GetIncoming(unrelated)
}

func TestReplaceDestRewritesEveryUser(t *testing.T) {
	s, fn := newTestFn(t)
	a := s.IntConst(1, TypeI32)
	b := s.IntConst(2, TypeI32)
	add := fn.NewAdd(a, b)
	mul := fn.NewMul(add, s.IntConst(3, TypeI32))
	sub := fn.NewSub(add, s.IntConst(4, TypeI32))

	replacement := fn.NewAdd(b, a)
	add.ReplaceDest(replacement)

	if mul.Uses()[0] != Value(replacement) {
		t.Fatalf("mul's use of add was not rewritten to replacement")
	}
	if sub.Uses()[0] != Value(replacement) {
		t.Fatalf("sub's use of add was not rewritten to replacement")
	}
	if len(add.Dests()) != 0 {
		t.Fatalf("add still has dests after ReplaceDest rewired every user")
	}
}
