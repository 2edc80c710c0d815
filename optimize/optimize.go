package optimize

import "github.com/coregx/scrive/ast"

// Optimize rewrites n bottom-up and returns the optimized tree.
//
// Rewrites:
//   - every CharClass is refolded with threshold
//   - nested sequences and nested alternations are flattened
//   - alternations of single characters become one CharClass
//   - single-child sequences and alternations are replaced by the child
//   - {1,1} quantifiers are replaced by their operand
//   - a non-capturing group directly around a construct that is already
//     parenthesized (group, lookaround, flag scope) is dropped
//
// The rewrites preserve the set of strings matched and the pre-order of
// capturing groups, so group numbering is unaffected.
func Optimize(n ast.Node, threshold int) ast.Node {
	switch n := n.(type) {
	case ast.CharClass:
		n.Items = FoldClass(n.Items, threshold)
		return n

	case ast.Sequence:
		children := make([]ast.Node, 0, len(n.Children))
		for _, c := range n.Children {
			c = Optimize(c, threshold)
			if s, ok := c.(ast.Sequence); ok {
				children = append(children, s.Children...)
				continue
			}
			children = append(children, c)
		}
		if len(children) == 1 {
			return children[0]
		}
		return ast.Sequence{Children: children}

	case ast.Alternation:
		children := make([]ast.Node, 0, len(n.Children))
		for _, c := range n.Children {
			c = Optimize(c, threshold)
			if a, ok := c.(ast.Alternation); ok {
				children = append(children, a.Children...)
				continue
			}
			children = append(children, c)
		}
		if len(children) == 1 {
			return children[0]
		}
		alt := ast.Alternation{Children: children}
		if folded, ok := FoldAlternation(alt, threshold); ok {
			return folded
		}
		return alt

	case ast.Quantified:
		n.Child = Optimize(n.Child, threshold)
		if n.Min == 1 && n.Max == 1 {
			return n.Child
		}
		return n

	case ast.Group:
		n.Child = Optimize(n.Child, threshold)
		if !n.Capturing {
			switch n.Child.(type) {
			case ast.Group, ast.Lookaround, ast.FlagScope:
				return n.Child
			}
		}
		return n

	case ast.Lookaround:
		n.Child = Optimize(n.Child, threshold)
		return n

	case ast.FlagScope:
		n.Child = Optimize(n.Child, threshold)
		return n

	case ast.Flagged:
		n.Child = Optimize(n.Child, threshold)
		return n

	case ast.Literal, ast.Raw, ast.Backreference, ast.Anchor, ast.AnyChar, ast.Comment:
		return n

	default:
		return n
	}
}
