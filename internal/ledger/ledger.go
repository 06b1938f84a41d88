// Package ledger keeps the clues collected during an investigation as an
// ordered set backed by an unbalanced binary search tree.
package ledger

import "iter"

type node struct {
	clue  string
	left  *node
	right *node
}

// Ledger is a set of clue texts ordered by byte-wise comparison.
// The zero value is an empty ledger ready for use.
type Ledger struct {
	root *node
	size int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Insert adds clue to the ledger. It returns false when an equal clue is
// already present, in which case the ledger is unchanged.
//
// The tree is never rebalanced: inserting clues in sorted order degrades it
// to a list.
func (l *Ledger) Insert(clue string) bool {
	link := &l.root
	for *link != nil {
		n := *link
		switch {
		case clue < n.clue:
			link = &n.left
		case clue > n.clue:
			link = &n.right
		default:
			return false
		}
	}
	*link = &node{clue: clue}
	l.size++
	return true
}

// InOrder yields the clues in ascending order. The sequence may be ranged
// over any number of times.
func (l *Ledger) InOrder() iter.Seq[string] {
	return func(yield func(string) bool) {
		walk(l.root, yield)
	}
}

func walk(n *node, yield func(string) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, yield) && yield(n.clue) && walk(n.right, yield)
}

// Len returns the number of clues in the ledger.
func (l *Ledger) Len() int {
	return l.size
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (l *Ledger) Height() int {
	return height(l.root)
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// Clear drops every clue.
func (l *Ledger) Clear() {
	l.root = nil
	l.size = 0
}
