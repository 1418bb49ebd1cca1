package keywalk

import "github.com/rafaelsanzio/keywalk/internal/walkerr"

// EnumerateFromRestart resumes enumeration past a previously emitted
// string w, without re-deriving the walks that preceded it. It is
// equivalent to running Enumerate(startIdx, min, max, sink) and discarding
// every emission before w, except that it never visits the subtrees those
// discarded emissions came from.
//
// w must be a prefix-complete walk from startIdx: each successive byte
// must name an active neighbor of the key named by the byte before it,
// and len(w) must fall within [min, max]. A length outside the window is
// a KindArgument error; a w that is not such a walk on this keyboard is a
// KindConfiguration error.
//
// The walk w itself is emitted again first, as part of resuming into its
// own continuation; that duplicate is acceptable. What must never
// happen, and is guaranteed here, is emitting anything that would sort
// earlier in traversal order than w.
func (kb *Keyboard) EnumerateFromRestart(startIdx, min, max int, w []byte, sink Sink) error {
	if err := validateMinMax(min, max); err != nil {
		return err
	}
	if len(w) < min || len(w) > max {
		return walkerr.Argumentf("restart string length %d outside window [%d, %d]", len(w), min, max)
	}
	stack, err := kb.buildRestartStack(startIdx, w)
	if err != nil {
		return err
	}
	// The reconstructed stack's final-position frame re-writes w's last
	// byte itself; only the positions before it need seeding.
	return kb.runEnumeration(stack, w[:len(w)-1], min, max, sink)
}

// buildRestartStack reconstructs the traversal stack state a normal
// Enumerate run would have reached immediately before popping the frame
// that emits w, so w is emitted again and its continuation is expanded.
//
// For each position i in w, the candidates available at that position
// (w's own key's choices at i == 0, or nextSpace of the position-(i-1)
// key otherwise) are split at the candidate used by w[i]: candidates
// after it in that list represent sibling branches not yet explored
// and are pushed for every position; at the final position, the used
// candidate itself is included too, so the engine continues past w
// instead of stopping at it. Candidates at or before the used one, at
// every non-final position, are never pushed — they are exactly the
// branches a normal run would already have exhausted before reaching w.
func (kb *Keyboard) buildRestartStack(startIdx int, w []byte) ([]engineFrame, error) {
	l := len(w)
	path := make([]int, l)
	for i, ch := range w {
		idx, ok := kb.FindByChar(ch)
		if !ok {
			return nil, walkerr.Configurationf("restart string byte %s at position %d is not on the keyboard", formatByte(ch), i)
		}
		path[i] = idx
	}
	if path[0] != startIdx {
		return nil, walkerr.Configurationf("restart string does not begin with the requested start key")
	}
	for i := 0; i < l-1; i++ {
		if !kb.isActiveNeighbor(path[i], path[i+1]) {
			return nil, walkerr.Configurationf("restart string byte %s at position %d is not an active neighbor of the preceding key", formatByte(w[i+1]), i+1)
		}
	}

	var stack []engineFrame
	for i := 0; i < l; i++ {
		var space []candidate
		if i == 0 {
			space = kb.choicesOf(path[0])
		} else {
			space = kb.nextSpace(path[i-1])
		}

		used := kb.indexOfCandidate(space, path[i], w[i])
		if used < 0 {
			return nil, walkerr.Internalf("restart: could not locate the choice used at position %d", i)
		}

		var group []candidate
		if i == l-1 {
			group = space[used:]
		} else {
			group = space[used+1:]
		}
		stack = pushCandidates(stack, group, i)
	}
	return stack, nil
}

// indexOfCandidate finds the position within space of the candidate
// naming key and emitting byte ch, or -1 if absent.
func (kb *Keyboard) indexOfCandidate(space []candidate, key int, ch byte) int {
	for i, cand := range space {
		if cand.key != key {
			continue
		}
		if cand.c.char(&kb.Keys[cand.key]) == ch {
			return i
		}
	}
	return -1
}
