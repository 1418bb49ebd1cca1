package keywalk

import "testing"

// newK1 builds a small two-key fixture: key 'a' (no shift variants)
// adjacent to key 'b' (shift variant 'B'), each the other's only
// neighbor.
func newK1(t *testing.T) (*Keyboard, int, int) {
	t.Helper()
	kb := NewKeyboard([]Key{
		NewKey('a', nil, true),
		NewKey('b', []byte{'B'}, true),
	})
	if err := kb.Wire(0, []int{1}); err != nil {
		t.Fatalf("wire a: %v", err)
	}
	if err := kb.Wire(1, []int{0}); err != nil {
		t.Fatalf("wire b: %v", err)
	}
	if err := kb.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return kb, 0, 1
}

func TestValidateKeyBaseInVariants(t *testing.T) {
	k := NewKey('a', []byte{'a'}, true)
	if st := ValidateKey(k); st != KeyBaseInVariants {
		t.Fatalf("status = %v, want KeyBaseInVariants", st)
	}
}

func TestValidateKeyRepeatedVariant(t *testing.T) {
	k := NewKey('a', []byte{'A', 'A'}, true)
	if st := ValidateKey(k); st != KeyRepeatedVariant {
		t.Fatalf("status = %v, want KeyRepeatedVariant", st)
	}
}

func TestValidateKeyRepeatedNeighbor(t *testing.T) {
	k := NewKey('a', nil, true)
	k.Neighbors = []int{1, 1}
	if st := ValidateKey(k); st != KeyRepeatedNeighbor {
		t.Fatalf("status = %v, want KeyRepeatedNeighbor", st)
	}
}

func TestValidateKeyOK(t *testing.T) {
	k := NewKey('a', []byte{'A'}, true)
	k.Neighbors = []int{1}
	if st := ValidateKey(k); st != KeyOK {
		t.Fatalf("status = %v, want KeyOK", st)
	}
}

func TestDisjoint(t *testing.T) {
	a := NewKey('a', []byte{'A'}, true)
	b := NewKey('b', []byte{'B'}, true)
	if !disjoint(a, b) {
		t.Fatal("a and b should be disjoint")
	}
	c := NewKey('c', []byte{'A'}, true)
	if disjoint(a, c) {
		t.Fatal("a and c share 'A', should not be disjoint")
	}
}

func TestKeyboardValidateRejectsNonDisjoint(t *testing.T) {
	kb := NewKeyboard([]Key{
		NewKey('a', []byte{'b'}, true),
		NewKey('b', nil, true),
	})
	if err := kb.Validate(); err == nil {
		t.Fatal("expected error for non-disjoint keys")
	}
}

func TestKeyboardValidateRejectsOutOfRangeNeighbor(t *testing.T) {
	kb := NewKeyboard([]Key{NewKey('a', nil, true)})
	_ = kb.Wire(0, []int{5})
	if err := kb.Validate(); err == nil {
		t.Fatal("expected error for out-of-range neighbor index")
	}
}

func TestFindByChar(t *testing.T) {
	kb, _, _ := newK1(t)
	if idx, ok := kb.FindByChar('a'); !ok || idx != 0 {
		t.Fatalf("FindByChar('a') = (%d,%v), want (0,true)", idx, ok)
	}
	if idx, ok := kb.FindByChar('B'); !ok || idx != 1 {
		t.Fatalf("FindByChar('B') = (%d,%v), want (1,true)", idx, ok)
	}
	if _, ok := kb.FindByChar('z'); ok {
		t.Fatal("FindByChar('z') should report not found")
	}
}

func TestMaxBranchingAndCeiling(t *testing.T) {
	kb, _, _ := newK1(t)
	// a: V=1, 1 active neighbor -> branch 1. b: V=2, 1 active neighbor -> branch 2.
	if got := kb.MaxBranching(); got != 2 {
		t.Fatalf("MaxBranching() = %d, want 2", got)
	}
	if err := kb.CheckStackCeiling(10, 1); err == nil {
		t.Fatal("expected capacity error with a ceiling of 1")
	}
	if err := kb.CheckStackCeiling(10, DefaultStackCeiling); err != nil {
		t.Fatalf("unexpected capacity error: %v", err)
	}
}

func TestValidateMinMax(t *testing.T) {
	if err := validateMinMax(0, 3); err == nil {
		t.Fatal("expected error for min <= 0")
	}
	if err := validateMinMax(3, 2); err == nil {
		t.Fatal("expected error for max < min")
	}
	if err := validateMinMax(1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
