// Package numrange builds pattern fragments that match the decimal
// representations of the integers in a closed interval.
//
// The fragment matches exactly the canonical decimal strings (no sign, no
// leading zeros) of every integer in [min, max] and no other string. It does
// not anchor itself: callers compose it with anchors or word boundaries when
// a whole token must match.
//
// Example:
//
//	frag, err := numrange.Compile(0, 255)
//	if err != nil {
//	    return err
//	}
//	tree := ast.Sequence{Children: []ast.Node{
//	    ast.Anchor{Kind: ast.StartOfText}, frag, ast.Anchor{Kind: ast.EndOfText},
//	}}
package numrange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coregx/scrive/ast"
)

// ErrInvalidRange indicates min > max or a negative bound.
var ErrInvalidRange = errors.New("invalid range")

// RangeError reports the interval that was rejected.
type RangeError struct {
	Min, Max int
	Err      error
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("scrive: number range [%d,%d]: %v", e.Min, e.Max, e.Err)
}

// Unwrap returns the underlying error.
func (e *RangeError) Unwrap() error {
	return e.Err
}

// Compile returns a fragment matching the decimal strings of [min, max].
//
// Bounds with different digit counts are split at powers of ten and the
// pieces are alternated in ascending order. Within one digit count the
// interval is split at the first digit where the bounds differ. The same
// interval always yields a structurally identical tree, and recursion depth
// never exceeds the digit count of max.
//
// Returns a *RangeError wrapping ErrInvalidRange when min > max or min < 0.
func Compile(min, max int) (ast.Node, error) {
	if min < 0 || max < 0 || min > max {
		return nil, &RangeError{Min: min, Max: max, Err: ErrInvalidRange}
	}
	if min == max {
		return ast.Literal{Text: strconv.Itoa(min)}, nil
	}

	var branches []ast.Node
	lo := min
	for lo <= max {
		width := len(strconv.Itoa(lo))
		hi := max
		if limit := maxOfWidth(width); limit < max {
			hi = limit
		}
		branches = append(branches, fixed(strconv.Itoa(lo), strconv.Itoa(hi)))
		if hi == max {
			break
		}
		lo = hi + 1
	}
	return alternate(branches), nil
}

// maxOfWidth returns the largest integer with width decimal digits, or the
// largest int when that would overflow.
func maxOfWidth(width int) int {
	n := 0
	for i := 0; i < width; i++ {
		if n > (int(^uint(0)>>1)-9)/10 {
			return int(^uint(0) >> 1)
		}
		n = n*10 + 9
	}
	return n
}

// fixed matches every digit string of len(lo) between lo and hi inclusive.
// Both strings have equal length and may carry leading zeros.
func fixed(lo, hi string) ast.Node {
	if lo == hi {
		return ast.Literal{Text: lo}
	}
	width := len(lo)
	i := 0
	for lo[i] == hi[i] {
		i++
	}
	prefix := lo[:i]
	if allDigit(lo[i:], '0') && allDigit(hi[i:], '9') {
		return concat(prefix, anyDigits(width-i))
	}
	rest := width - i - 1
	a, b := lo[i], hi[i]

	if rest == 0 {
		return concat(prefix, digitClass(a, b))
	}

	loRest, hiRest := lo[i+1:], hi[i+1:]
	lowLoose := allDigit(loRest, '0')
	highLoose := allDigit(hiRest, '9')

	var branches []ast.Node

	// Branch A: first differing digit pinned to a, tight low suffix.
	// When the low suffix is all zeros it folds into the middle class.
	mid := a + 1
	if lowLoose {
		mid = a
	} else {
		branches = append(branches, seq(
			ast.Literal{Text: string(a)},
			fixed(loRest, strings.Repeat("9", rest)),
		))
	}

	// Branch B mirrors A on the high side.
	top := b - 1
	if highLoose {
		top = b
	}

	// Branch C: any digit strictly between, unconstrained suffix.
	if mid <= top {
		branches = append(branches, seq(digitClass(mid, top), anyDigits(rest)))
	}

	if !highLoose {
		branches = append(branches, seq(
			ast.Literal{Text: string(b)},
			fixed(strings.Repeat("0", rest), hiRest),
		))
	}
	return concat(prefix, alternate(branches))
}

func allDigit(s string, d byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != d {
			return false
		}
	}
	return true
}

// digitClass matches one digit in [a, b].
func digitClass(a, b byte) ast.Node {
	if a == b {
		return ast.Literal{Text: string(a)}
	}
	items := make([]ast.ClassItem, 0, 3)
	if b-a+1 >= 3 {
		items = append(items, ast.ClassItem{Lo: rune(a), Hi: rune(b)})
	} else {
		for d := a; d <= b; d++ {
			items = append(items, ast.ClassItem{Lo: rune(d), Hi: rune(d)})
		}
	}
	return ast.CharClass{Items: items}
}

// anyDigits matches n unconstrained digit positions.
func anyDigits(n int) ast.Node {
	digit := ast.CharClass{Items: []ast.ClassItem{{Lo: '0', Hi: '9'}}}
	if n == 1 {
		return digit
	}
	return ast.Quantified{Child: digit, Min: n, Max: n}
}

func alternate(branches []ast.Node) ast.Node {
	if len(branches) == 1 {
		return branches[0]
	}
	return ast.Alternation{Children: branches}
}

func concat(prefix string, n ast.Node) ast.Node {
	if prefix == "" {
		return n
	}
	return seq(ast.Literal{Text: prefix}, n)
}

// seq concatenates a and b, merging adjacent literals and flattening
// nested sequences.
func seq(a, b ast.Node) ast.Node {
	var children []ast.Node
	for _, n := range []ast.Node{a, b} {
		if s, ok := n.(ast.Sequence); ok {
			children = append(children, s.Children...)
		} else {
			children = append(children, n)
		}
	}
	merged := make([]ast.Node, 0, len(children))
	for _, n := range children {
		lit, ok := n.(ast.Literal)
		if !ok {
			merged = append(merged, n)
			continue
		}
		if last := len(merged) - 1; last >= 0 {
			if prev, ok := merged[last].(ast.Literal); ok {
				merged[last] = ast.Literal{Text: prev.Text + lit.Text}
				continue
			}
		}
		merged = append(merged, lit)
	}
	if len(merged) == 1 {
		return merged[0]
	}
	return ast.Sequence{Children: merged}
}
