package scrive

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/coregx/scrive/ast"
	"github.com/coregx/scrive/numrange"
	"github.com/coregx/scrive/optimize"
)

// Must returns n, or panics if err is not nil. It wraps combinators that
// return an error when their arguments are known to be valid.
//
// Example:
//
//	octet := scrive.Must(scrive.NumberRange(0, 255))
func Must(n Node, err error) Node {
	if err != nil {
		panic(err)
	}
	return n
}

func constructionError(op string, err error, format string, args ...any) error {
	return &ast.ConstructionError{Op: op, Detail: fmt.Sprintf(format, args...), Err: err}
}

// Literal matches text exactly. Metacharacters are escaped.
func Literal(text string) Node {
	return ast.Literal{Text: text}
}

// Raw inserts text verbatim. The text is not validated, and is grouped
// whenever it is an operand of a quantifier, a sequence or an alternation.
func Raw(text string) Node {
	return ast.Raw{Text: text}
}

// Template builds a node from pattern text containing {name} placeholders.
// Each placeholder with an entry in vars is replaced by that node; text
// around the placeholders is inserted as Raw. Placeholders without an entry
// are left in the text unchanged, so quantifiers such as {2} and categories
// such as \p{Lu} pass through. Pass Literal(s) to splice in plain text
// safely.
//
// Example:
//
//	key := scrive.Must(scrive.Template(`{name}\s*=\s*`, map[string]scrive.Node{
//	    "name": scrive.Literal("a.b"),
//	})) // a\.b(?:\s*=\s*)
func Template(pattern string, vars map[string]Node) (Node, error) {
	var parts []ast.Node
	var raw strings.Builder
	flush := func() {
		if raw.Len() > 0 {
			parts = append(parts, ast.Raw{Text: raw.String()})
			raw.Reset()
		}
	}

	rest := pattern
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			raw.WriteString(rest)
			break
		}
		raw.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.IndexByte(rest, '}')
		name := ""
		if end > 0 {
			name = rest[1:end]
		}
		v, ok := vars[name]
		if !ok || !ast.ValidGroupName(name) {
			raw.WriteByte('{')
			rest = rest[1:]
			continue
		}
		if v == nil {
			return nil, constructionError("Template", ast.ErrInvalidArgument, "nil value for {%s}", name)
		}
		flush()
		parts = append(parts, v)
		rest = rest[end+1:]
	}
	flush()

	switch len(parts) {
	case 0:
		return ast.Literal{}, nil
	case 1:
		return parts[0], nil
	default:
		return ast.Sequence{Children: parts}, nil
	}
}

// Comment annotates the pattern. It matches nothing and turns on verbose
// mode for the whole pattern, so literals around it have their whitespace
// escaped.
//
// Returns an error wrapping ErrInvalidArgument if text contains a line break.
func Comment(text string) (Node, error) {
	if strings.ContainsAny(text, "\r\n") {
		return nil, constructionError("Comment", ast.ErrInvalidArgument, "line break in %q", text)
	}
	return ast.Comment{Text: text}, nil
}

// AnyChar matches any character except a newline, or any character at all
// under DotAll.
func AnyChar() Node {
	return ast.AnyChar{}
}

// Chars matches one of the given characters.
//
// Example:
//
//	vowel := scrive.Must(scrive.Chars('u', 'o', 'i', 'e', 'a')) // [aeiou]
func Chars(chars ...rune) (Node, error) {
	items, err := runeItems("Chars", chars)
	if err != nil {
		return nil, err
	}
	return ast.CharClass{Items: items}, nil
}

// NoneOf matches one character that is not among the given characters.
func NoneOf(chars ...rune) (Node, error) {
	items, err := runeItems("NoneOf", chars)
	if err != nil {
		return nil, err
	}
	return ast.CharClass{Items: items, Negated: true}, nil
}

func runeItems(op string, chars []rune) ([]ast.ClassItem, error) {
	if len(chars) == 0 {
		return nil, constructionError(op, ast.ErrInvalidArgument, "no characters")
	}
	items := make([]ast.ClassItem, len(chars))
	for i, r := range chars {
		if !utf8.ValidRune(r) {
			return nil, constructionError(op, ast.ErrInvalidArgument, "invalid code point %U", r)
		}
		items[i] = ast.ClassItem{Lo: r, Hi: r}
	}
	return optimize.FoldClass(items, optimize.DefaultFoldThreshold), nil
}

// Range matches one character between lo and hi inclusive.
//
// Returns an error wrapping ErrInvalidArgument if lo > hi.
func Range(lo, hi rune) (Node, error) {
	if lo > hi {
		return nil, constructionError("Range", ast.ErrInvalidArgument, "%q > %q", lo, hi)
	}
	if !utf8.ValidRune(lo) || !utf8.ValidRune(hi) {
		return nil, constructionError("Range", ast.ErrInvalidArgument, "invalid code point in %U-%U", lo, hi)
	}
	items := []ast.ClassItem{{Lo: lo, Hi: hi}}
	return ast.CharClass{Items: optimize.FoldClass(items, optimize.DefaultFoldThreshold)}, nil
}

// Then matches the nodes one after another. Nested sequences are flattened,
// and a single node is returned unchanged.
func Then(nodes ...Node) Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	children := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if s, ok := n.(ast.Sequence); ok {
			children = append(children, s.Children...)
			continue
		}
		children = append(children, n)
	}
	return ast.Sequence{Children: children}
}

// Choice matches any one of the nodes, preferring earlier ones. Nested
// alternations are flattened.
//
// Returns an error wrapping ErrEmptyAlternation when called without nodes.
func Choice(nodes ...Node) (Node, error) {
	if len(nodes) == 0 {
		return nil, constructionError("Choice", ast.ErrEmptyAlternation, "no branches")
	}
	children := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if a, ok := n.(ast.Alternation); ok {
			children = append(children, a.Children...)
			continue
		}
		children = append(children, n)
	}
	return ast.Alternation{Children: children}, nil
}

func repeat(n Node, min, max int) Node {
	return ast.Quantified{Child: n, Min: min, Max: max}
}

// Maybe matches n zero or one time.
func Maybe(n Node) Node { return repeat(n, 0, 1) }

// ZeroOrMore matches n any number of times.
func ZeroOrMore(n Node) Node { return repeat(n, 0, ast.Unbounded) }

// OneOrMore matches n at least once.
func OneOrMore(n Node) Node { return repeat(n, 1, ast.Unbounded) }

// Times matches n exactly count times.
func Times(n Node, count int) (Node, error) {
	if count < 0 {
		return nil, constructionError("Times", ast.ErrInvalidQuantifier, "negative count %d", count)
	}
	return repeat(n, count, count), nil
}

// Between matches n at least min and at most max times.
//
// Returns an error wrapping ErrInvalidQuantifier if min is negative or
// min > max.
func Between(n Node, min, max int) (Node, error) {
	if min < 0 {
		return nil, constructionError("Between", ast.ErrInvalidQuantifier, "negative minimum %d", min)
	}
	if min > max {
		return nil, constructionError("Between", ast.ErrInvalidQuantifier, "minimum %d exceeds maximum %d", min, max)
	}
	return repeat(n, min, max), nil
}

// AtLeast matches n min or more times.
func AtLeast(n Node, min int) (Node, error) {
	if min < 0 {
		return nil, constructionError("AtLeast", ast.ErrInvalidQuantifier, "negative minimum %d", min)
	}
	return repeat(n, min, ast.Unbounded), nil
}

// AtMost matches n between zero and max times.
func AtMost(n Node, max int) (Node, error) {
	if max < 0 {
		return nil, constructionError("AtMost", ast.ErrInvalidQuantifier, "negative maximum %d", max)
	}
	return repeat(n, 0, max), nil
}

// Lazy makes a quantifier match as few repetitions as possible. Any other
// node is returned unchanged.
//
// Example:
//
//	tag := scrive.Then(scrive.Literal("<"), scrive.Lazy(scrive.OneOrMore(scrive.AnyChar())), scrive.Literal(">"))
//	// <.+?>
func Lazy(n Node) Node {
	if q, ok := n.(ast.Quantified); ok {
		q.Lazy = true
		return q
	}
	return n
}

// Group captures the text matched by child. Groups are numbered from 1 in
// the order their opening parentheses appear in the compiled text.
func Group(child Node) Node {
	return ast.Group{Child: child, Capturing: true}
}

// NamedGroup captures the text matched by child under name. Names consist of
// ASCII letters, digits and underscores and do not start with a digit.
// Uniqueness is checked by Compile.
func NamedGroup(name string, child Node) (Node, error) {
	if !ast.ValidGroupName(name) {
		return nil, constructionError("NamedGroup", ast.ErrInvalidArgument, "group name %q", name)
	}
	return ast.Group{Child: child, Name: name, Capturing: true}, nil
}

// NonCapturing groups child without capturing.
func NonCapturing(child Node) Node {
	return ast.Group{Child: child}
}

// Lookahead asserts that child matches at the current position.
func Lookahead(child Node) Node {
	return ast.Lookaround{Child: child, Direction: ast.Ahead}
}

// NegativeLookahead asserts that child does not match at the current position.
func NegativeLookahead(child Node) Node {
	return ast.Lookaround{Child: child, Direction: ast.Ahead, Negate: true}
}

// Lookbehind asserts that child matches immediately before the current position.
func Lookbehind(child Node) Node {
	return ast.Lookaround{Child: child, Direction: ast.Behind}
}

// NegativeLookbehind asserts that child does not match immediately before
// the current position.
func NegativeLookbehind(child Node) Node {
	return ast.Lookaround{Child: child, Direction: ast.Behind, Negate: true}
}

// Before matches subject only when it is followed by ahead.
func Before(subject, ahead Node) Node {
	return Then(subject, Lookahead(ahead))
}

// NotBefore matches subject only when it is not followed by ahead.
func NotBefore(subject, ahead Node) Node {
	return Then(subject, NegativeLookahead(ahead))
}

// After matches subject only when it is preceded by behind.
func After(subject, behind Node) Node {
	return Then(Lookbehind(behind), subject)
}

// NotAfter matches subject only when it is not preceded by behind.
func NotAfter(subject, behind Node) Node {
	return Then(NegativeLookbehind(behind), subject)
}

// Backref matches the text captured by the group with the given name.
// Compile fails if no such group exists.
func Backref(name string) (Node, error) {
	if !ast.ValidGroupName(name) {
		return nil, constructionError("Backref", ast.ErrInvalidArgument, "group name %q", name)
	}
	return ast.Backreference{Name: name}, nil
}

// BackrefIndex matches the text captured by the group with the given
// 1-based index. Compile fails if the tree has fewer groups.
func BackrefIndex(index int) (Node, error) {
	if index < 1 {
		return nil, constructionError("BackrefIndex", ast.ErrInvalidArgument, "index %d", index)
	}
	return ast.Backreference{Index: index}, nil
}

// AnchorString matches child only as the whole input.
func AnchorString(child Node) Node {
	return Then(StartOfText(), child, EndOfText())
}

// AnchorLine matches child only as a whole line.
func AnchorLine(child Node) Node {
	return Then(StartOfLine(), child, EndOfLine())
}

// Bounded matches child only as a whole word.
func Bounded(child Node) Node {
	return Then(WordBoundary(), child, WordBoundary())
}

// SeparatedBy matches count occurrences of element with separator between
// each pair. The repetition is unrolled: the result holds count copies of
// element and count-1 copies of separator.
//
// Example:
//
//	octet := scrive.Must(scrive.NumberRange(0, 255))
//	ip := scrive.Must(scrive.SeparatedBy(octet, scrive.Literal("."), 4))
func SeparatedBy(element, separator Node, count int) (Node, error) {
	if count < 1 {
		return nil, constructionError("SeparatedBy", ast.ErrInvalidArgument, "count %d", count)
	}
	if count == 1 {
		return element, nil
	}
	children := make([]ast.Node, 0, 2*count-1)
	for i := 0; i < count; i++ {
		if i > 0 {
			children = append(children, separator)
		}
		children = append(children, element)
	}
	return ast.Sequence{Children: children}, nil
}

// Invert negates n. A character class is complemented; anything else becomes
// a negative lookahead, a zero-width assertion that n does not match here.
func Invert(n Node) Node {
	return optimize.Invert(n)
}

// NumberRange matches the decimal representation of any integer in
// [min, max], without sign or leading zeros. The fragment is not anchored.
//
// Returns an error wrapping ErrInvalidRange if min > max or min < 0.
func NumberRange(min, max int) (Node, error) {
	return numrange.Compile(min, max)
}

// Integer matches an optionally signed run of digits, e.g. 42, -17 or +123.
func Integer() Node {
	return Then(Maybe(sign()), OneOrMore(Digit()))
}

// Decimal matches an optionally signed number with an optional fractional
// part, e.g. 3.14, -2.5 or 7.
func Decimal() Node {
	fraction := Then(Literal("."), OneOrMore(Digit()))
	return Then(Maybe(sign()), OneOrMore(Digit()), Maybe(fraction))
}

func sign() Node {
	return ast.CharClass{Items: []ast.ClassItem{{Lo: '+', Hi: '+'}, {Lo: '-', Hi: '-'}}}
}
