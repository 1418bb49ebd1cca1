// Package keywalk enumerates every string that can be typed on a physical
// keyboard by walking only between keys that are physically adjacent,
// where each key position can emit its base character or any of its shift
// variants.
//
// Given a [Keyboard], a set of starting keys, and a length window
// [min, max], [Keyboard.Enumerate] emits every walk-derived string of
// length in that window exactly once, and [Keyboard.Count] computes the
// exact number of such strings without enumerating them.
//
// # Usage
//
//	kb, err := configfile.Load(path)
//	err = kb.Validate()
//	err = kb.Enumerate(start, min, max, func(s string) {
//	    fmt.Println(s)
//	})
//
// # Restart
//
// A previously emitted string can seed a fresh run so enumeration resumes
// at the first unvisited successor of that string, without re-deriving the
// strings that already preceded it. See [Keyboard.EnumerateFromRestart].
package keywalk

import (
	"fmt"

	"github.com/rafaelsanzio/keywalk/internal/walkerr"
)

// KeyStatus is the result of validating a single [Key].
type KeyStatus int

// Key validation outcomes.
const (
	KeyOK KeyStatus = iota
	KeyBaseInVariants
	KeyRepeatedVariant
	KeyRepeatedNeighbor
)

func (s KeyStatus) String() string {
	switch s {
	case KeyOK:
		return "OK"
	case KeyBaseInVariants:
		return "BASE_IN_VARIANTS"
	case KeyRepeatedVariant:
		return "REPEATED_VARIANT"
	case KeyRepeatedNeighbor:
		return "REPEATED_NEIGHBOR"
	default:
		return "UNKNOWN"
	}
}

// Key describes one physical keyboard position: its base character, its
// ordered shift variants, whether it is reachable during traversal, and
// (once wired into a [Keyboard]) its ordered neighbors.
//
// Neighbors are stored as indices into the owning Keyboard's key slice
// rather than as pointers. The key graph is cyclic by nature (adjacent
// keys point back at each other), and index references keep that cycle
// from becoming an ownership cycle — the Keyboard alone owns the storage.
type Key struct {
	Base          byte
	ShiftVariants []byte
	Active        bool
	Neighbors     []int
}

// NewKey builds a Key with no neighbors. Neighbors are filled in later by
// [Keyboard.Wire], once every key in the keyboard has been constructed and
// forward references can be resolved.
func NewKey(base byte, variants []byte, active bool) Key {
	vs := make([]byte, len(variants))
	copy(vs, variants)
	return Key{Base: base, ShiftVariants: vs, Active: active}
}

// V is the number of character choices available at the key: the base
// character plus every shift variant.
func (k Key) V() int {
	return 1 + len(k.ShiftVariants)
}

// ValidateKey checks a single Key's invariants in isolation: its base does
// not appear among its shift variants, its shift variants are pairwise
// distinct, and its neighbor indices contain no duplicates.
func ValidateKey(k Key) KeyStatus {
	for _, v := range k.ShiftVariants {
		if v == k.Base {
			return KeyBaseInVariants
		}
	}
	seen := make(map[byte]bool, len(k.ShiftVariants))
	for _, v := range k.ShiftVariants {
		if seen[v] {
			return KeyRepeatedVariant
		}
		seen[v] = true
	}
	seenNeighbor := make(map[int]bool, len(k.Neighbors))
	for _, n := range k.Neighbors {
		if seenNeighbor[n] {
			return KeyRepeatedNeighbor
		}
		seenNeighbor[n] = true
	}
	return KeyOK
}

// disjoint reports whether a and b share no character across
// {base} ∪ shift_variants.
func disjoint(a, b Key) bool {
	chars := make(map[byte]bool, 1+len(a.ShiftVariants))
	chars[a.Base] = true
	for _, v := range a.ShiftVariants {
		chars[v] = true
	}
	if chars[b.Base] {
		return false
	}
	for _, v := range b.ShiftVariants {
		if chars[v] {
			return false
		}
	}
	return true
}

// Keyboard is an ordered collection of Keys plus a character-to-key
// lookup. It owns every Key's storage and the neighbor edge set; once
// [Keyboard.Validate] succeeds it is treated as immutable. The counting
// engine keeps its memo table per [Keyboard.Count] call, outside the
// Keyboard.
type Keyboard struct {
	Keys  []Key
	index map[byte]int
}

// NewKeyboard wraps keys into a Keyboard and builds the character lookup.
// It does not validate; call [Keyboard.Validate] before use.
func NewKeyboard(keys []Key) *Keyboard {
	kb := &Keyboard{Keys: keys}
	kb.buildIndex()
	return kb
}

func (kb *Keyboard) buildIndex() {
	kb.index = make(map[byte]int, len(kb.Keys)*2)
	for i, k := range kb.Keys {
		kb.index[k.Base] = i
		for _, v := range k.ShiftVariants {
			kb.index[v] = i
		}
	}
}

// Wire sets the neighbor list of the key at idx. It is the second phase of
// two-phase construction: keys are built with [NewKey] first (no
// neighbors), then wired once every key's index is known, permitting
// forward references and the cyclic adjacency the key graph requires.
func (kb *Keyboard) Wire(idx int, neighbors []int) error {
	if idx < 0 || idx >= len(kb.Keys) {
		return walkerr.Internalf("wire: key index %d out of range", idx)
	}
	ns := make([]int, len(neighbors))
	copy(ns, neighbors)
	kb.Keys[idx].Neighbors = ns
	return nil
}

// FindByChar returns the index of the unique key whose base or some shift
// variant equals c. It is total over the keyboard's declared alphabet;
// undefined characters report ok=false.
//
// Implemented as a map built once at construction. A linear scan over Keys
// would also satisfy the contract (the reference leaves this open); the
// map gives constant-time lookups for the start keys and for every byte
// of a restart string.
func (kb *Keyboard) FindByChar(c byte) (int, bool) {
	i, ok := kb.index[c]
	return i, ok
}

// Validate performs the global checks required once at load time: every
// key individually valid, every ordered pair of keys disjoint, and every
// neighbor index in range.
func (kb *Keyboard) Validate() error {
	for i, k := range kb.Keys {
		if st := ValidateKey(k); st != KeyOK {
			return walkerr.Configurationf("key %q: %s", k.Base, st)
		}
		for _, n := range k.Neighbors {
			if n < 0 || n >= len(kb.Keys) {
				return walkerr.Configurationf("key %q: neighbor index %d out of range", k.Base, n)
			}
		}
		_ = i
	}
	for i := 0; i < len(kb.Keys); i++ {
		for j := i + 1; j < len(kb.Keys); j++ {
			if !disjoint(kb.Keys[i], kb.Keys[j]) {
				return walkerr.Configurationf("keys %q and %q are not disjoint", kb.Keys[i].Base, kb.Keys[j].Base)
			}
		}
	}
	return nil
}

// activeNeighbors returns the indices of keyIdx's neighbors that are
// active, in declared order.
func (kb *Keyboard) activeNeighbors(keyIdx int) []int {
	k := &kb.Keys[keyIdx]
	out := make([]int, 0, len(k.Neighbors))
	for _, n := range k.Neighbors {
		if kb.Keys[n].Active {
			out = append(out, n)
		}
	}
	return out
}

// MaxBranching returns max over keys of V(k) * len(active_neighbors(k)),
// the per-level fan-out bound used by [Keyboard.CheckStackCeiling].
func (kb *Keyboard) MaxBranching() int {
	best := 0
	for i, k := range kb.Keys {
		branch := k.V() * len(kb.activeNeighbors(i))
		if branch > best {
			best = branch
		}
	}
	return best
}

// DefaultStackCeiling is the default ceiling on traversal stack frames:
// configurations whose bound could exceed it are rejected rather than
// allowed to grow the stack without limit.
const DefaultStackCeiling = 4096

// CheckStackCeiling rejects a (min, max) run whose worst-case stack depth,
// O(max * MaxBranching()), could exceed ceiling.
func (kb *Keyboard) CheckStackCeiling(max, ceiling int) error {
	bound := kb.MaxBranching() * max
	if bound > ceiling {
		return walkerr.Capacityf("traversal stack bound %d exceeds ceiling %d (max=%d, max_branching=%d)", bound, ceiling, max, kb.MaxBranching())
	}
	return nil
}

func validateMinMax(min, max int) error {
	if min <= 0 {
		return walkerr.Argumentf("min must be > 0, got %d", min)
	}
	if max < min {
		return walkerr.Argumentf("max must be >= min, got max=%d min=%d", max, min)
	}
	return nil
}

// formatByte renders a byte for diagnostics, as a quoted rune when
// printable.
func formatByte(b byte) string {
	return fmt.Sprintf("%q", string(rune(b)))
}
