package ast

// Children returns the direct children of n in emission order.
// Leaves return nil. The returned slice must not be modified.
func Children(n Node) []Node {
	switch n := n.(type) {
	case Sequence:
		return n.Children
	case Alternation:
		return n.Children
	case Quantified:
		return []Node{n.Child}
	case Group:
		return []Node{n.Child}
	case Lookaround:
		return []Node{n.Child}
	case FlagScope:
		return []Node{n.Child}
	case Flagged:
		return []Node{n.Child}
	default:
		return nil
	}
}

// Walk visits n and its descendants depth-first in pre-order, which is the
// order in which their text appears in the emitted pattern. If fn returns
// false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Walk(c, fn)
	}
}
