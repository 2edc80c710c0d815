package optimize

import (
	"unicode/utf8"

	"github.com/coregx/scrive/ast"
)

// NeedsGroupForQuantifier reports whether n must be wrapped in a
// non-capturing group before a quantifier suffix is appended to its text.
//
// Multi-element sequences, multi-branch alternations, literals that are not
// exactly one character, raw fragments, anchors and already quantified nodes
// need a wrapper, and so do comments, whose text ends in a line break.
// Groups, lookarounds and flag scopes are already
// parenthesized; single characters, classes and backreferences are atoms.
func NeedsGroupForQuantifier(n ast.Node) bool {
	switch n := n.(type) {
	case ast.Literal:
		return utf8.RuneCountInString(n.Text) != 1
	case ast.CharClass, ast.AnyChar, ast.Backreference,
		ast.Group, ast.Lookaround, ast.FlagScope:
		return false
	case ast.Sequence:
		if len(n.Children) == 1 {
			return NeedsGroupForQuantifier(n.Children[0])
		}
		return true
	case ast.Alternation:
		if len(n.Children) == 1 {
			return NeedsGroupForQuantifier(n.Children[0])
		}
		return true
	case ast.Flagged:
		return NeedsGroupForQuantifier(n.Child)
	case ast.Raw, ast.Quantified, ast.Anchor, ast.Comment:
		return true
	default:
		return true
	}
}

// NeedsGroupInSequence reports whether n must be wrapped when it is one of
// several elements of a sequence. Without a wrapper a top-level | in its text
// would split the surrounding concatenation.
func NeedsGroupInSequence(n ast.Node) bool {
	switch n := n.(type) {
	case ast.Alternation:
		if len(n.Children) == 1 {
			return NeedsGroupInSequence(n.Children[0])
		}
		return true
	case ast.Sequence:
		if len(n.Children) == 1 {
			return NeedsGroupInSequence(n.Children[0])
		}
		return false
	case ast.Flagged:
		return NeedsGroupInSequence(n.Child)
	case ast.Raw:
		return true
	default:
		return false
	}
}

// NeedsGroupAsBranch reports whether n must be wrapped when it is a branch
// of an alternation with more than one branch. Multi-element sequences are
// wrapped when groupSequences is set; nothing else needs a wrapper.
func NeedsGroupAsBranch(n ast.Node, groupSequences bool) bool {
	switch n := n.(type) {
	case ast.Sequence:
		if len(n.Children) == 1 {
			return NeedsGroupAsBranch(n.Children[0], groupSequences)
		}
		return groupSequences && len(n.Children) > 1
	case ast.Flagged:
		return NeedsGroupAsBranch(n.Child, groupSequences)
	default:
		return false
	}
}
