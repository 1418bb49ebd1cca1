package keywalk

import (
	"reflect"
	"testing"
)

func TestEnumerateK1(t *testing.T) {
	kb, a, _ := newK1(t)
	var got []string
	if err := kb.Enumerate(a, 2, 3, func(s string) { got = append(got, s) }); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	want := []string{"ab", "aba", "aB", "aBa"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Enumerate = %v, want %v", got, want)
	}
}

func TestEnumerateLengthOne(t *testing.T) {
	kb, a, _ := newK1(t)
	var got []string
	if err := kb.Enumerate(a, 1, 1, func(s string) { got = append(got, s) }); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	want := []string{"a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Enumerate = %v, want %v", got, want)
	}
}

func TestEnumerateEveryEmissionInWindow(t *testing.T) {
	kb, a, _ := newK1(t)
	const min, max = 1, 4
	seen := map[string]int{}
	if err := kb.Enumerate(a, min, max, func(s string) {
		seen[s]++
		if len(s) < min || len(s) > max {
			t.Fatalf("emitted %q outside window [%d,%d]", s, min, max)
		}
	}); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	for s, n := range seen {
		if n != 1 {
			t.Fatalf("string %q emitted %d times, want exactly once", s, n)
		}
	}
	if len(seen) == 0 {
		t.Fatal("expected at least one emission")
	}
}

func TestEnumerateRejectsBadWindow(t *testing.T) {
	kb, a, _ := newK1(t)
	if err := kb.Enumerate(a, 0, 3, func(string) {}); err == nil {
		t.Fatal("expected error for min <= 0")
	}
	if err := kb.Enumerate(a, 3, 2, func(string) {}); err == nil {
		t.Fatal("expected error for max < min")
	}
}
