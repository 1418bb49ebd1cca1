package keywalk

// Sink receives one emitted string per call. Enumerate and
// EnumerateFromRestart call it synchronously, in traversal order. They
// reuse one word buffer between calls, but each string passed to Sink is
// a fresh copy of it, so Sink may retain the string.
type Sink func(string)

// engineFrame is one pending unit of work on the traversal stack: emit
// key's choice c at word position pos, then (if pos+1 < max) push the
// candidates reachable from key.
type engineFrame struct {
	key int
	pos int
	c   choice
}

// pushCandidates appends cands onto stack in reverse, so that popping the
// stack (LIFO) visits them in cands' own order. Neighbors and variants are
// listed by nextSpace/choicesOf in declared order; pushing in reverse is
// what makes the stack discipline reproduce that declared order on pop.
// (Push order itself is not load bearing — only the resulting pop order
// is — so any push sequence yielding this pop order is equally correct.)
func pushCandidates(stack []engineFrame, cands []candidate, pos int) []engineFrame {
	for j := len(cands) - 1; j >= 0; j-- {
		stack = append(stack, engineFrame{key: cands[j].key, pos: pos, c: cands[j].c})
	}
	return stack
}

// Enumerate emits every string reachable by walking the keyboard from
// startIdx, of length in [min, max], exactly once.
func (kb *Keyboard) Enumerate(startIdx, min, max int, sink Sink) error {
	if err := validateMinMax(min, max); err != nil {
		return err
	}
	seed := pushCandidates(nil, kb.choicesOf(startIdx), 0)
	return kb.runEnumeration(seed, nil, min, max, sink)
}

// runEnumeration drives the shared iterative DFS loop used by both a
// fresh Enumerate call and a reconstructed restart stack. prefix, if
// non-nil, seeds word[0:len(prefix)] before the loop starts: a
// reconstructed restart stack only ever writes word at each frame's own
// position, so the positions preceding the restart point must be filled
// in up front or they would surface as zero bytes.
func (kb *Keyboard) runEnumeration(stack []engineFrame, prefix []byte, min, max int, sink Sink) error {
	word := make([]byte, max)
	copy(word, prefix)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		k := &kb.Keys[f.key]
		word[f.pos] = f.c.char(k)

		if f.pos+1 >= min {
			sink(string(word[:f.pos+1]))
		}
		if f.pos+1 < max {
			stack = pushCandidates(stack, kb.nextSpace(f.key), f.pos+1)
		}
	}
	return nil
}
