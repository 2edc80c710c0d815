package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Describe renders n as an indented tree, one node per line. It is a
// debugging aid; its format is not part of any compatibility promise.
//
// Example:
//
//	fmt.Print(ast.Describe(ast.Quantified{Child: ast.Literal{Text: "ab"}, Min: 1, Max: ast.Unbounded}))
//	// Quantified{1,inf}
//	//   Literal "ab"
func Describe(n Node) string {
	var b strings.Builder
	describe(&b, n, 0)
	return b.String()
}

func describe(b *strings.Builder, n Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(label(n))
	b.WriteByte('\n')
	for _, c := range Children(n) {
		describe(b, c, depth+1)
	}
}

func label(n Node) string {
	switch n := n.(type) {
	case nil:
		return "<nil>"
	case Literal:
		return "Literal " + strconv.Quote(n.Text)
	case CharClass:
		return "CharClass " + describeClass(n)
	case Raw:
		return "Raw " + strconv.Quote(n.Text)
	case Sequence:
		return fmt.Sprintf("Sequence(%d)", len(n.Children))
	case Alternation:
		return fmt.Sprintf("Alternation(%d)", len(n.Children))
	case Quantified:
		hi := "inf"
		if n.Max != Unbounded {
			hi = strconv.Itoa(n.Max)
		}
		s := fmt.Sprintf("Quantified{%d,%s}", n.Min, hi)
		if n.Lazy {
			s += " lazy"
		}
		return s
	case Group:
		switch {
		case !n.Capturing:
			return "Group non-capturing"
		case n.Name != "":
			return "Group " + strconv.Quote(n.Name)
		default:
			return "Group"
		}
	case Lookaround:
		s := "Lookaround " + n.Direction.String()
		if n.Negate {
			s += " negated"
		}
		return s
	case Backreference:
		if n.Name != "" {
			return "Backreference " + strconv.Quote(n.Name)
		}
		return "Backreference " + strconv.Itoa(n.Index)
	case Anchor:
		return "Anchor " + n.Kind.String()
	case FlagScope:
		return fmt.Sprintf("FlagScope +%q -%q", n.Enabled.String(), n.Disabled.String())
	case AnyChar:
		return "AnyChar"
	case Flagged:
		return fmt.Sprintf("Flagged %q", n.Flags.String())
	case Comment:
		return "Comment " + strconv.Quote(n.Text)
	default:
		return fmt.Sprintf("%T", n)
	}
}

func describeClass(c CharClass) string {
	var b strings.Builder
	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	for i, it := range c.Items {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case it.IsNamed():
			b.WriteString(it.Escape(false))
		case it.Lo == it.Hi:
			b.WriteString(strconv.QuoteRune(it.Lo))
		default:
			b.WriteString(strconv.QuoteRune(it.Lo) + "-" + strconv.QuoteRune(it.Hi))
		}
	}
	b.WriteByte(']')
	return b.String()
}
