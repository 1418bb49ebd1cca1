package keywalk

import (
	"math/big"

	"github.com/rafaelsanzio/keywalk/internal/walkerr"
)

// Counts holds the result of a counting run: the per-start-key walk count
// and their sum, as arbitrary-precision integers. Window sizes beyond a
// handful of keys cross 2^53 quickly; float64 would silently lose
// precision past that point, so counts are big.Int throughout.
type Counts struct {
	PerStart map[byte]*big.Int
	Total    *big.Int
}

// countFrame is one unit of work on the counting engine's explicit stack.
// expanded distinguishes a frame's first visit (push children, then
// requeue it) from its second (combine children's already-memoized
// counts), the two-pop discipline that makes a non-recursive, postorder
// stack walk possible.
type countFrame struct {
	key, depth int
	expanded   bool
}

// Count computes, for each byte in starts, the number of distinct walks of
// length in [min, max] beginning at that key, and their sum.
//
// A duplicate start byte, an unknown start byte, or an inactive start key
// is reported as an error rather than silently deduplicated or skipped.
func (kb *Keyboard) Count(starts []byte, min, max int) (Counts, error) {
	if err := validateMinMax(min, max); err != nil {
		return Counts{}, err
	}
	memo := make([][]*big.Int, len(kb.Keys))
	for i := range memo {
		memo[i] = make([]*big.Int, max)
	}

	perStart := make(map[byte]*big.Int, len(starts))
	total := new(big.Int)
	seen := make(map[byte]bool, len(starts))
	for _, s := range starts {
		if seen[s] {
			return Counts{}, walkerr.Argumentf("duplicate start key %s", formatByte(s))
		}
		seen[s] = true

		idx, ok := kb.FindByChar(s)
		if !ok {
			return Counts{}, walkerr.Configurationf("unknown start key %s", formatByte(s))
		}
		if !kb.Keys[idx].Active {
			return Counts{}, walkerr.Configurationf("start key %s is inactive", formatByte(s))
		}

		c, err := kb.countFrom(idx, min, max, memo)
		if err != nil {
			return Counts{}, err
		}
		perStart[s] = c
		total.Add(total, c)
	}
	return Counts{PerStart: perStart, Total: total}, nil
}

// countFrom computes the walk count rooted at key start via an iterative
// two-pop postorder traversal: a frame is pushed once unexpanded (which
// schedules its children and requeues it), then popped a second time
// already expanded, at which point every child's count is guaranteed
// memoized and the frame can combine them.
//
// A nil memo slot, rather than a zero value, marks "not yet computed";
// zero is a legitimate count (a key with no active neighbors whose
// window min excludes its own depth contributes none), so it is stored
// and returned like any other value instead of being special-cased.
func (kb *Keyboard) countFrom(start, min, max int, memo [][]*big.Int) (*big.Int, error) {
	stack := []countFrame{{key: start, depth: 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if memo[f.key][f.depth] != nil {
			continue
		}

		if !f.expanded {
			f.expanded = true
			stack = append(stack, f)
			if f.depth < max-1 {
				for _, n := range kb.activeNeighbors(f.key) {
					if memo[n][f.depth+1] == nil {
						stack = append(stack, countFrame{key: n, depth: f.depth + 1})
					}
				}
			}
			continue
		}

		v := big.NewInt(int64(kb.Keys[f.key].V()))
		total := new(big.Int)
		if f.depth == max-1 {
			if f.depth+1 >= min {
				total.Set(v)
			}
		} else {
			sum := new(big.Int)
			for _, n := range kb.activeNeighbors(f.key) {
				c := memo[n][f.depth+1]
				if c == nil {
					return nil, walkerr.Internalf("count: memo slot for key %d depth %d not computed before combination", n, f.depth+1)
				}
				sum.Add(sum, c)
			}
			total.Mul(v, sum)
			if f.depth+1 >= min {
				total.Add(total, v)
			}
		}

		memo[f.key][f.depth] = total
	}

	result := memo[start][0]
	if result == nil {
		return nil, walkerr.Internalf("count: start key %d depth 0 was never computed", start)
	}
	return result, nil
}
