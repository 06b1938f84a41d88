// Package verdict scores an accusation against the collected clues.
package verdict

import (
	"iter"
	"slices"
)

// Threshold is the number of matching clues needed to sustain an accusation.
const Threshold = 2

// Verdict is the outcome of an accusation.
type Verdict int

const (
	Weak Verdict = iota
	Sustained
)

func (v Verdict) String() string {
	if v == Sustained {
		return "sustained"
	}
	return "weak"
}

// Clues is an ordered collection of collected clue texts.
type Clues interface {
	InOrder() iter.Seq[string]
}

// Index resolves a clue to the suspect it points at.
type Index interface {
	Lookup(clue string) (string, bool)
}

// Accusation is the scored result of accusing a suspect.
type Accusation struct {
	Suspect  string
	Evidence int
	Matching []string // clues pointing at Suspect, ascending
	Verdict  Verdict
}

// Tally counts the collected clues whose suspect is exactly accused. Clues
// with no association, or pointing at someone else, are skipped.
func Tally(accused string, clues Clues, index Index) int {
	n := 0
	for range matching(accused, clues, index) {
		n++
	}
	return n
}

// matching yields, in order, the clues whose suspect is exactly accused.
func matching(accused string, clues Clues, index Index) iter.Seq[string] {
	return func(yield func(string) bool) {
		for clue := range clues.InOrder() {
			if s, ok := index.Lookup(clue); ok && s == accused {
				if !yield(clue) {
					return
				}
			}
		}
	}
}

// Judge applies the evidence threshold.
func Judge(count int) Verdict {
	if count >= Threshold {
		return Sustained
	}
	return Weak
}

// Evaluate tallies the evidence against accused and judges it.
func Evaluate(accused string, clues Clues, index Index) Accusation {
	a := Accusation{Suspect: accused, Matching: slices.Collect(matching(accused, clues, index))}
	a.Evidence = len(a.Matching)
	a.Verdict = Judge(a.Evidence)
	return a
}
