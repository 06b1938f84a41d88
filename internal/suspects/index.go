// Package suspects maps clue text to the suspect it points at, using a
// fixed-size hash table with separate chaining.
package suspects

import "sort"

// Buckets is the number of chains in an Index. It is a prime well above the
// number of clues in a case.
const Buckets = 101

type entry struct {
	clue    string
	suspect string
	next    *entry
}

// Index is a clue → suspect association table. Keys are unique: associating
// an existing clue replaces its suspect.
type Index struct {
	buckets [Buckets]*entry
	size    int
}

// New returns an empty index.
func New() *Index {
	return &Index{}
}

// hash is djb2 reduced to a bucket number.
func hash(s string) uint64 {
	var h uint64 = 5381
	for i := 0; i < len(s); i++ {
		h = h<<5 + h + uint64(s[i])
	}
	return h % Buckets
}

// Associate records that clue points at suspect, replacing any previous
// association for the same clue.
func (x *Index) Associate(clue, suspect string) {
	b := hash(clue)
	for e := x.buckets[b]; e != nil; e = e.next {
		if e.clue == clue {
			e.suspect = suspect
			return
		}
	}
	x.buckets[b] = &entry{clue: clue, suspect: suspect, next: x.buckets[b]}
	x.size++
}

// Lookup returns the suspect associated with clue.
func (x *Index) Lookup(clue string) (string, bool) {
	for e := x.buckets[hash(clue)]; e != nil; e = e.next {
		if e.clue == clue {
			return e.suspect, true
		}
	}
	return "", false
}

// Len returns the number of associations.
func (x *Index) Len() int {
	return x.size
}

// Suspects returns the distinct suspects in the index, sorted.
func (x *Index) Suspects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, head := range x.buckets {
		for e := head; e != nil; e = e.next {
			if !seen[e.suspect] {
				seen[e.suspect] = true
				out = append(out, e.suspect)
			}
		}
	}
	sort.Strings(out)
	return out
}

// chainLength reports how many entries share clue's bucket.
func (x *Index) chainLength(clue string) int {
	n := 0
	for e := x.buckets[hash(clue)]; e != nil; e = e.next {
		n++
	}
	return n
}
