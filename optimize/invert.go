package optimize

import "github.com/coregx/scrive/ast"

// Invert returns the negation of n.
//
// For a CharClass the Negated flag is flipped, so Invert(Invert(c)) equals c.
// Any other node is wrapped in a negative lookahead. That result is a
// zero-width assertion: it matches a position where n does not match, not a
// span of text that excludes n, so callers must anchor or position it.
func Invert(n ast.Node) ast.Node {
	if c, ok := n.(ast.CharClass); ok {
		c.Negated = !c.Negated
		return c
	}
	return ast.Lookaround{Child: n, Direction: ast.Ahead, Negate: true}
}
