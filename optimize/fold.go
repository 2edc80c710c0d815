// Package optimize implements the pure tree rewrites applied to a pattern
// expression before it is emitted: character-class folding, the negation
// transform, redundant-grouping elision, and the grouping predicates the
// serializer consults to keep emitted text precedence-safe.
//
// Every function in this package returns new nodes and never modifies its
// arguments.
package optimize

import (
	"sort"
	"unicode/utf8"

	"github.com/coregx/scrive/ast"
)

// DefaultFoldThreshold is the shortest run of consecutive code points that
// is written as a range. Shorter runs are written as individual members.
const DefaultFoldThreshold = 3

// FoldClass normalizes character class members.
//
// Code point members are sorted ascending and merged into maximal runs of
// consecutive code points. A run of at least threshold code points becomes a
// single range item; a shorter run becomes one item per code point. Shorthand
// members are deduplicated and placed after the code points in d, s, w order,
// followed by Unicode categories sorted by name.
// The result depends only on the set of members, not on their input order.
//
// Ranges are merged as intervals, so a class such as [\x00-\x{10FFFF}] is
// never expanded code point by code point.
//
// Example:
//
//	items := optimize.FoldClass(singles('e', 'a', 'c', 'b', 'd', 'x'), 3)
//	// items = [a-e] [x]
func FoldClass(items []ast.ClassItem, threshold int) []ast.ClassItem {
	if threshold < 1 {
		threshold = DefaultFoldThreshold
	}

	ranges := make([]ast.ClassItem, 0, len(items))
	var perl [4]bool
	var props []string
	for _, it := range items {
		if it.IsPerl() {
			perl[it.Perl] = true
			continue
		}
		if it.IsProperty() {
			props = append(props, it.Property)
			continue
		}
		lo, hi := it.Lo, it.Hi
		if lo > hi {
			lo, hi = hi, lo
		}
		ranges = append(ranges, ast.ClassItem{Lo: lo, Hi: hi})
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Lo != ranges[j].Lo {
			return ranges[i].Lo < ranges[j].Lo
		}
		return ranges[i].Hi < ranges[j].Hi
	})

	// Merge overlapping and adjacent intervals into maximal runs.
	var runs []ast.ClassItem
	for _, r := range ranges {
		if n := len(runs); n > 0 && r.Lo <= runs[n-1].Hi+1 {
			if r.Hi > runs[n-1].Hi {
				runs[n-1].Hi = r.Hi
			}
			continue
		}
		runs = append(runs, r)
	}

	out := make([]ast.ClassItem, 0, len(runs)+3+len(props))
	for _, r := range runs {
		if int64(r.Hi)-int64(r.Lo)+1 >= int64(threshold) {
			out = append(out, r)
			continue
		}
		for c := r.Lo; c <= r.Hi; c++ {
			out = append(out, ast.ClassItem{Lo: c, Hi: c})
		}
	}
	for _, p := range []ast.PerlClass{ast.PerlDigit, ast.PerlSpace, ast.PerlWord} {
		if perl[p] {
			out = append(out, ast.ClassItem{Perl: p})
		}
	}
	sort.Strings(props)
	for i, p := range props {
		if i == 0 || p != props[i-1] {
			out = append(out, ast.ClassItem{Property: p})
		}
	}
	return out
}

// FoldAlternation rewrites an alternation whose branches are all single
// characters into one character class.
//
// A branch qualifies when it is a Literal of exactly one code point or a
// non-negated CharClass. If any branch does not qualify, or there are fewer
// than two branches, the alternation is returned unchanged and ok is false.
//
// Example:
//
//	alt := ast.Alternation{Children: []ast.Node{
//	    ast.Literal{Text: "c"}, ast.Literal{Text: "a"}, ast.Literal{Text: "b"},
//	}}
//	n, ok := optimize.FoldAlternation(alt, 3) // CharClass [a-c], true
func FoldAlternation(alt ast.Alternation, threshold int) (n ast.Node, ok bool) {
	if len(alt.Children) < 2 {
		return alt, false
	}
	var items []ast.ClassItem
	for _, c := range alt.Children {
		switch c := c.(type) {
		case ast.Literal:
			r, size := utf8.DecodeRuneInString(c.Text)
			if size == 0 || size != len(c.Text) {
				return alt, false
			}
			items = append(items, ast.ClassItem{Lo: r, Hi: r})
		case ast.CharClass:
			if c.Negated {
				return alt, false
			}
			items = append(items, c.Items...)
		default:
			return alt, false
		}
	}
	return ast.CharClass{Items: FoldClass(items, threshold)}, true
}
