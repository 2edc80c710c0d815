package literal

import (
	"github.com/coregx/scrive/ast"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex trees:
//   - MaxLiterals: prevents memory bloat from alternations and cross products
//   - MaxLiteralLen: literals longer than this abort extraction
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in the extracted set.
	// Default: 256.
	MaxLiterals int

	// MaxLiteralLen limits the length in bytes of each literal.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   256,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts literal sets from pattern expression trees.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractExact returns the complete language of n when it is a finite set of
// literals within the configured limits. ok is false otherwise.
//
// Handles these node types:
//   - Literal: the text itself
//   - CharClass: expanded if small and not negated, e.g. [abc] → ["a", "b", "c"]
//   - Sequence: cross product of the children, e.g. (a|b)c → ["ac", "bc"]
//   - Alternation: union of the branches
//   - Group: the child (capture does not change the language)
//   - Quantified: bounded repetition expanded, e.g. a{1,2} → ["a", "aa"]
//   - Flagged, FlagScope: the child, unless case-insensitive matching is requested
//
// Anchors, lookarounds, backreferences, raw fragments and the dot make the
// language unknown.
//
// Example:
//
//	tree := ast.Alternation{Children: []ast.Node{ast.Literal{Text: "cat"}, ast.Literal{Text: "dog"}}}
//	seq, ok := literal.New(literal.DefaultConfig()).ExtractExact(tree)
//	// seq = ["cat", "dog"], ok = true
func (e *Extractor) ExtractExact(n ast.Node) (*Seq, bool) {
	strs, ok := e.exact(n, 0)
	if !ok {
		return nil, false
	}
	lits := make([]Literal, len(strs))
	for i, s := range strs {
		lits[i] = NewLiteral([]byte(s), true)
	}
	return NewSeq(lits...), true
}

func (e *Extractor) exact(n ast.Node, depth int) ([]string, bool) {
	// Guard against excessive recursion (deeply nested trees)
	if depth > 100 {
		return nil, false
	}

	switch n := n.(type) {
	case ast.Literal:
		if len(n.Text) > e.config.MaxLiteralLen {
			return nil, false
		}
		return []string{n.Text}, true

	case ast.CharClass:
		return e.expandClass(n)

	case ast.Sequence:
		acc := []string{""}
		for _, c := range n.Children {
			part, ok := e.exact(c, depth+1)
			if !ok {
				return nil, false
			}
			acc, ok = e.cross(acc, part)
			if !ok {
				return nil, false
			}
		}
		return acc, true

	case ast.Alternation:
		var all []string
		for _, c := range n.Children {
			part, ok := e.exact(c, depth+1)
			if !ok {
				return nil, false
			}
			all = appendUnique(all, part...)
			if len(all) > e.config.MaxLiterals {
				return nil, false
			}
		}
		return all, true

	case ast.Group:
		return e.exact(n.Child, depth+1)

	case ast.Quantified:
		if n.Max == ast.Unbounded || n.Max > e.config.MaxLiterals {
			return nil, false
		}
		part, ok := e.exact(n.Child, depth+1)
		if !ok {
			return nil, false
		}
		var all []string
		acc := []string{""}
		for i := 0; i <= n.Max; i++ {
			if i >= n.Min {
				all = appendUnique(all, acc...)
				if len(all) > e.config.MaxLiterals {
					return nil, false
				}
			}
			if i == n.Max {
				break
			}
			if acc, ok = e.cross(acc, part); !ok {
				return nil, false
			}
		}
		return all, true

	case ast.Flagged:
		if n.Flags.Has(ast.IgnoreCase) {
			return nil, false
		}
		return e.exact(n.Child, depth+1)

	case ast.FlagScope:
		if n.Enabled.Has(ast.IgnoreCase) {
			return nil, false
		}
		return e.exact(n.Child, depth+1)

	default:
		// Raw, Anchor, Lookaround, Backreference, AnyChar, Comment
		return nil, false
	}
}

// expandClass expands a small, non-negated class without shorthands.
//
// Examples:
//
//	[abc]   → ["a", "b", "c"] (3 chars, under limit)
//	[a-z]   → not expanded (26 chars, over default limit of 10)
//	[^a]    → not expanded (negated)
func (e *Extractor) expandClass(c ast.CharClass) ([]string, bool) {
	if c.Negated || len(c.Items) == 0 {
		return nil, false
	}
	count := 0
	for _, it := range c.Items {
		if it.IsNamed() {
			return nil, false
		}
		count += int(it.Hi-it.Lo) + 1
		if count > e.config.MaxClassSize {
			return nil, false
		}
	}
	var out []string
	for _, it := range c.Items {
		for r := it.Lo; r <= it.Hi; r++ {
			out = appendUnique(out, string(r))
		}
	}
	return out, true
}

// cross returns every concatenation of a string from a with one from b.
func (e *Extractor) cross(a, b []string) ([]string, bool) {
	if len(a)*len(b) > e.config.MaxLiterals {
		return nil, false
	}
	out := make([]string, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			s := x + y
			if len(s) > e.config.MaxLiteralLen {
				return nil, false
			}
			out = appendUnique(out, s)
		}
	}
	return out, true
}

func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		dup := false
		for _, d := range dst {
			if d == s {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, s)
		}
	}
	return dst
}
