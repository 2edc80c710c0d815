// Package literal computes finite literal sets from pattern expression trees.
//
// A tree whose language is a small finite set of strings can be searched
// with a multi-literal automaton (Aho-Corasick) instead of a regex engine.
// The extractor in this package decides when that holds and produces the set.
package literal

import (
	"bytes"
	"slices"
)

// Literal is one string of a pattern's language.
type Literal struct {
	Bytes []byte

	// Complete is true when Bytes is a whole match of the pattern rather
	// than a fragment that must be verified by an engine.
	Complete bool
}

// NewLiteral returns a Literal over b.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Seq is an unordered set of alternative literals.
type Seq struct {
	lits []Literal
}

// NewSeq returns a Seq holding lits. The slice is retained.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{lits: lits}
}

// Len returns the number of literals. A nil Seq has none.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lits)
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.lits[i]
}

// IsEmpty reports whether s holds no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// AllComplete reports whether every literal is a whole match.
// An empty Seq is never complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	return !slices.ContainsFunc(s.lits, func(l Literal) bool { return !l.Complete })
}

// HasEmpty reports whether s contains the empty string, which occurs at
// every position of every input.
func (s *Seq) HasEmpty() bool {
	if s == nil {
		return false
	}
	return slices.ContainsFunc(s.lits, func(l Literal) bool { return len(l.Bytes) == 0 })
}

// Minimize drops every literal that contains a shorter (or equal) kept
// literal, since a text containing the longer one necessarily contains the
// shorter. ["foo", "xfooy"] becomes ["foo"]; duplicates collapse.
//
// Survivors are ordered by length, then bytewise, so the result is
// independent of insertion order.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	slices.SortStableFunc(s.lits, func(a, b Literal) int {
		if n := len(a.Bytes) - len(b.Bytes); n != 0 {
			return n
		}
		return bytes.Compare(a.Bytes, b.Bytes)
	})

	out := s.lits[:0:0]
	for _, lit := range s.lits {
		if !slices.ContainsFunc(out, func(k Literal) bool { return bytes.Contains(lit.Bytes, k.Bytes) }) {
			out = append(out, lit)
		}
	}
	s.lits = out
}
