// Package diff computes shortest edit scripts between two slices of an arbitrary type with an
// arbitrary equality operator.
package diff

// Implementation note: This is Myers' greedy O(ND) algorithm. The forward pass searches over
// increasing edit distances d and records, for every d, the furthest reaching position on every
// diagonal k. The backward pass replays those records from the end of both inputs to the origin.
// The following articles explain the algorithm far better than any comment in here could:
//
// https://blog.jcoglan.com/2017/02/12/the-myers-diff-algorithm-part-1/
// https://blog.jcoglan.com/2017/02/15/the-myers-diff-algorithm-part-2/
// https://blog.jcoglan.com/2017/02/17/the-myers-diff-algorithm-part-3/
//
// A common suffix is not stripped and change groups are not slid around afterwards: either would
// change which of several equally short scripts is returned.

import (
	"fmt"
	"slices"
)

const debug bool = false

// Op describes an edit operation.
//
//go:generate go run golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // Two slice elements match
	Delete           // A deletion of an element from the left slice
	Insert           // An insertion of an element from the right slice
)

// Edit describes a single edit of a diff.
//
//   - For Match, X and Y are set to their respective elements
//   - For Delete, X is set to the element of the left slice that's missing in the right one and Y is
//     set to the zero value
//   - For Insert, Y is set to the element of the right slice that's missing in the left one and X
//     is set to the zero value
type Edit[T any] struct {
	Op   Op
	X, Y T
}

// Diff returns a shortest edit script that transforms x into y, comparing elements with eq. eq
// doesn't have to be structural equality, it's always called with an element of x as its first
// and an element of y as its second argument.
//
// Among several scripts of the same length Diff always returns the same one. For example,
// replacing a single element always yields the deletion followed by the insertion.
func Diff[T any](x, y []T, eq func(a, b T) bool) []Edit[T] {
	var edits []Edit[T]

	// Skipping the common prefix doesn't change the result, it's exactly the snake that the
	// search starts with.
	if n := longestCommonPrefix(x, y, eq); n > 0 {
		edits = slices.Grow(edits, n)
		for i := range n {
			edits = append(edits, Edit[T]{Op: Match, X: x[i], Y: y[i]})
		}
		x = x[n:]
		y = y[n:]
	}

	switch {
	case len(x) == 0 && len(y) == 0:
		// nothing left to do
	case len(x) == 0:
		edits = slices.Grow(edits, len(y))
		for i := range y {
			edits = append(edits, Edit[T]{Op: Insert, Y: y[i]})
		}
	case len(y) == 0:
		edits = slices.Grow(edits, len(x))
		for i := range x {
			edits = append(edits, Edit[T]{Op: Delete, X: x[i]})
		}
	default:
		edits = findShortestEditSequence(edits, x, y, eq)
	}

	return edits
}

// Edits is [Diff] using == for equality.
func Edits[T comparable](x, y []T) []Edit[T] {
	return Diff(x, y, func(a, b T) bool { return a == b })
}

// Distance returns the number of insertions and deletions in edits.
func Distance[T any](edits []Edit[T]) int {
	n := 0
	for _, e := range edits {
		if e.Op != Match {
			n++
		}
	}
	return n
}

func longestCommonPrefix[T any](x, y []T, eq func(a, b T) bool) int {
	n := min(len(x), len(y))
	for i := range n {
		if !eq(x[i], y[i]) {
			return i
		}
	}
	return n
}

func findShortestEditSequence[T any](edits []Edit[T], x, y []T, eq func(a, b T) bool) []Edit[T] {
	if len(x)+len(y) < 0 {
		panic("inputs too large")
	}

	v := computeMyersGraph(x, y, eq)

	// Appends edits in reverse order by backtracking along the edges in the graph and reverses
	// them in place afterwards.
	preexistingEdits := len(edits)
	s := len(x)
	t := len(y)

	for d := v.maxDepth; ; d-- {
		k := s - t
		if debug {
			if max(k, -k)%2 != d%2 {
				panic("invariant violation")
			}
		}

		var prevK int
		switch {
		case d == 0:
			prevK = 0
		case k == -d || (k != d && v.get(d-1, k-1) < v.get(d-1, k+1)):
			prevK = k + 1
		default:
			prevK = k - 1
		}

		prevS := 0
		if d > 0 {
			prevS = v.get(d-1, prevK)
		}
		prevT := prevS - prevK

		// Walk back along the snake that followed the single step at depth d. At d == 0 this is
		// the snake at the very start.
		for prevS < s && prevT < t {
			edits = append(edits, Edit[T]{Op: Match, X: x[s-1], Y: y[t-1]})
			s--
			t--
		}

		if d == 0 {
			break
		}

		if debug {
			if prevS == s && prevT == t {
				panic("invariant violation")
			}
		}
		if prevS == s {
			edits = append(edits, Edit[T]{Op: Insert, Y: y[prevT]})
		} else {
			if debug {
				if prevT != t {
					panic("invariant violation")
				}
			}
			edits = append(edits, Edit[T]{Op: Delete, X: x[prevS]})
		}

		s = prevS
		t = prevT
	}

	slices.Reverse(edits[preexistingEdits:])
	return edits
}

// myersGraph stores the furthest reaching position for every depth and diagonal that the forward
// pass visited. Instead of copying a frontier of size 2(N+M)+1 for every depth, depth d only
// stores the d+1 diagonals it can reach, packed into one flat slice.
type myersGraph struct {
	v        []int
	maxDepth int
}

func (g *myersGraph) upgradeMaxDepth(maxDepth int) {
	if maxDepth < g.maxDepth {
		return
	}
	n := (maxDepth + 2) * (maxDepth + 1) / 2
	g.v = slices.Grow(g.v, n-len(g.v))
	g.v = g.v[:n]
	g.maxDepth = maxDepth
}

func (g *myersGraph) get(d, k int) int    { return g.v[g.index(d, k)] }
func (g *myersGraph) set(d, k int, v int) { g.v[g.index(d, k)] = v }

func (g *myersGraph) index(d, k int) int {
	if debug {
		if d < 0 || d > g.maxDepth {
			panic(fmt.Sprintf("d must be in [0, %v] but is %v", g.maxDepth, d))
		}
		if k < -d || k > d {
			panic(fmt.Sprintf("k must be in [%v, %v] but is %v", -d, d, k))
		}
		if k&1 != d&1 {
			panic(fmt.Sprintf("d and k must have same parity: %v vs %v", d, k))
		}
	}
	// The number of k's is always equal to d + 1. Therefore, we know how many k's were before
	// this d: (d + 1) * d / 2. We can then pack the k's into the next d slots.
	i := (d + 1) * d / 2
	j := k
	if k < 0 {
		j = -k - 1
	}
	return i + j
}

func computeMyersGraph[T any](x, y []T, eq func(a, b T) bool) myersGraph {
	v := myersGraph{maxDepth: -1}
	dMax := len(x) + len(y)
	for d := range dMax + 1 {
		v.upgradeMaxDepth(d)
		for k := -d; k <= d; k += 2 {
			var s int
			if d == 0 {
				s = 0
			} else if k == -d || (k != d && v.get(d-1, k-1) < v.get(d-1, k+1)) {
				s = v.get(d-1, k+1)
			} else {
				s = v.get(d-1, k-1) + 1
			}
			t := s - k

			if s < len(x) && t < len(y) {
				lcp := longestCommonPrefix(x[s:], y[t:], eq)
				s += lcp
				t += lcp
			}

			v.set(d, k, s)

			if s >= len(x) && t >= len(y) {
				return v
			}
		}
	}
	panic("never reached")
}
