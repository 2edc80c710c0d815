// Package ast defines the node model of a pattern expression.
//
// The node set is closed: every node type in this package implements Node
// through an unexported method, and the optimizer and the serializer switch
// over the concrete types exhaustively. Nodes are plain values that are never
// mutated after construction, so a subtree can be shared by any number of
// trees and serialized from several goroutines at once.
//
// Group indices are not stored on nodes. They are assigned by the serializer
// in pre-order, so the same tree always yields the same numbering regardless
// of the order in which its parts were built.
//
// Example:
//
//	tree := ast.Sequence{Children: []ast.Node{
//	    ast.Anchor{Kind: ast.StartOfText},
//	    ast.Quantified{Child: ast.Literal{Text: "ab"}, Min: 1, Max: ast.Unbounded},
//	    ast.Anchor{Kind: ast.EndOfText},
//	}}
package ast

import "strings"

// Unbounded is the Max value of a Quantified node without an upper bound.
const Unbounded = -1

// Node is a pattern expression node.
//
// The implementations are Literal, CharClass, Raw, Sequence, Alternation,
// Quantified, Group, Lookaround, Backreference, Anchor, FlagScope, AnyChar,
// Flagged and Comment. No other type can implement Node.
type Node interface {
	node()
}

// Literal matches Text exactly. Metacharacters are escaped at emission.
type Literal struct {
	Text string
}

// PerlClass identifies a shorthand class member such as \d.
type PerlClass uint8

// Shorthand class members.
const (
	NoPerl PerlClass = iota
	PerlDigit
	PerlSpace
	PerlWord
)

// String returns the escape letter of the shorthand (d, s or w).
func (p PerlClass) String() string {
	switch p {
	case PerlDigit:
		return "d"
	case PerlSpace:
		return "s"
	case PerlWord:
		return "w"
	default:
		return ""
	}
}

// ClassItem is one member of a character class: the inclusive code point
// range [Lo, Hi], or, when Perl is set, a shorthand class, or, when Property
// is set, the Unicode general category it names (\p{Property}).
type ClassItem struct {
	Lo, Hi   rune
	Perl     PerlClass
	Property string
}

// IsPerl reports whether the item is a shorthand class.
func (c ClassItem) IsPerl() bool {
	return c.Perl != NoPerl
}

// IsProperty reports whether the item is a Unicode category.
func (c ClassItem) IsProperty() bool {
	return c.Property != ""
}

// IsNamed reports whether the item is a shorthand or a Unicode category
// rather than a code point range.
func (c ClassItem) IsNamed() bool {
	return c.IsPerl() || c.IsProperty()
}

// Escape returns the escape of a named item, \d or \p{L}, or its complement,
// \D or \P{L}, when negated is set. It returns "" for a code point range.
func (c ClassItem) Escape(negated bool) string {
	switch {
	case c.IsPerl() && negated:
		return `\` + strings.ToUpper(c.Perl.String())
	case c.IsPerl():
		return `\` + c.Perl.String()
	case c.IsProperty() && negated:
		return `\P{` + c.Property + `}`
	case c.IsProperty():
		return `\p{` + c.Property + `}`
	default:
		return ""
	}
}

// CharClass matches one code point that is a member of Items, or one that is
// not when Negated is set.
//
// Items built by the combinators are normalized: ranges sorted ascending and
// merged, then shorthands in d, s, w order, then categories by name.
type CharClass struct {
	Items   []ClassItem
	Negated bool
}

// Raw is pattern text inserted verbatim. Its internal precedence is unknown,
// so the serializer groups it whenever it is an operand of something.
type Raw struct {
	Text string
}

// Sequence is the concatenation of Children.
type Sequence struct {
	Children []Node
}

// Alternation matches any one of Children, tried left to right.
// A valid tree never contains an Alternation without children.
type Alternation struct {
	Children []Node
}

// Quantified repeats Child between Min and Max times. Max is Unbounded for
// open-ended repetition. Lazy prefers the fewest repetitions.
type Quantified struct {
	Child    Node
	Min, Max int
	Lazy     bool
}

// Group wraps Child in parentheses. A capturing group records its match by
// index and, when Name is set, by name.
type Group struct {
	Child     Node
	Name      string
	Capturing bool
}

// Direction is the direction of a lookaround assertion.
type Direction uint8

// Lookaround directions.
const (
	Ahead Direction = iota
	Behind
)

// String returns "ahead" or "behind".
func (d Direction) String() string {
	if d == Behind {
		return "behind"
	}
	return "ahead"
}

// Lookaround is a zero-width assertion that Child matches (or, when Negate
// is set, does not match) right after or right before the current position.
type Lookaround struct {
	Child     Node
	Direction Direction
	Negate    bool
}

// Backreference matches the text previously captured by a group, referenced
// by Name when it is set, otherwise by the 1-based Index.
type Backreference struct {
	Name  string
	Index int
}

// AnchorKind is the kind of a zero-width anchor.
type AnchorKind uint8

// Anchor kinds.
const (
	StartOfText AnchorKind = iota
	EndOfText
	StartOfLine
	EndOfLine
	WordBoundary
	NonWordBoundary
)

var anchorNames = [...]string{
	StartOfText:     "start-of-text",
	EndOfText:       "end-of-text",
	StartOfLine:     "start-of-line",
	EndOfLine:       "end-of-line",
	WordBoundary:    "word-boundary",
	NonWordBoundary: "non-word-boundary",
}

// String returns the hyphenated name of the anchor kind.
func (k AnchorKind) String() string {
	if int(k) < len(anchorNames) {
		return anchorNames[k]
	}
	return "unknown-anchor"
}

// Anchor is a zero-width position assertion.
type Anchor struct {
	Kind AnchorKind
}

// FlagScope applies flag overrides to Child only.
type FlagScope struct {
	Child    Node
	Enabled  Flags
	Disabled Flags
}

// AnyChar matches any single code point (the dot).
type AnyChar struct{}

// Flagged requests Flags for the whole compiled pattern. It emits Child
// unchanged; the serializer unions the flags of every Flagged node in the
// tree into the flag set it returns.
type Flagged struct {
	Child Node
	Flags Flags
}

// Comment is an annotation that matches nothing. It turns on verbose mode for
// the whole pattern and is emitted as a #-comment running to the end of the
// line. Text must not contain a line break.
type Comment struct {
	Text string
}

func (Literal) node()       {}
func (CharClass) node()     {}
func (Raw) node()           {}
func (Sequence) node()      {}
func (Alternation) node()   {}
func (Quantified) node()    {}
func (Group) node()         {}
func (Lookaround) node()    {}
func (Backreference) node() {}
func (Anchor) node()        {}
func (FlagScope) node()     {}
func (AnyChar) node()       {}
func (Flagged) node()       {}
func (Comment) node()       {}
