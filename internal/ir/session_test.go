package ir

import "testing"

// TestConstantUniquing checks invariant 3 from SPEC_FULL.md §8: equal
// (value, type) pairs must yield the identical *Constant, and the same
// literal at a different type must not collide.
func TestConstantUniquing(t *testing.T) {
	s := NewSession(DefaultPlatformConfig(), nil)

	a := s.IntConst(0, TypeI32)
	b := s.IntConst(0, TypeI32)
	if a != b {
		t.Fatalf("IntConst(0, i32) returned distinct constants on repeat calls")
	}

	boxed := s.BoxedIntConst(0)
	if boxed == a {
		t.Fatalf("constant 0 at box and at i32 must not be identical")
	}
	if boxed.Type() != TypeBox {
		t.Fatalf("BoxedIntConst type = %s, want box", boxed.Type())
	}

	str1 := s.StringConst("x")
	str2 := s.StringConst("x")
	if str1 != str2 {
		t.Fatalf("StringConst(\"x\") returned distinct constants on repeat calls")
	}

	f1 := s.FloatConst(1.5)
	f2 := s.FloatConst(1.5)
	if f1 != f2 {
		t.Fatalf("FloatConst(1.5) returned distinct constants on repeat calls")
	}
}

func TestIntConstRejectsNonIntegerType(t *testing.T) {
	s := NewSession(DefaultPlatformConfig(), nil)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for IntConst with non-integer type")
		}
	}()
	s.IntConst(1, TypeF64)
}
