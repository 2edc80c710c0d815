// Package emit serializes a pattern expression tree into pattern text.
//
// Serialization walks the tree depth-first in pre-order:
//  1. capturing groups are numbered 1, 2, 3, ... in the order their opening
//     parentheses appear in the output, and named groups are recorded
//  2. the whole tree is validated: duplicate group names and backreferences
//     to undeclared groups are rejected
//  3. text is emitted, with literals escaped and non-capturing groups
//     synthesized wherever precedence requires one
//
// The global flags requested anywhere in the tree are returned alongside the
// text as one set. Output is all-or-nothing: on error no text is returned.
//
// Compile is a pure function of its arguments and is safe to call from
// several goroutines on the same tree.
package emit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/scrive/ast"
	"github.com/coregx/scrive/internal/logging"
	"github.com/coregx/scrive/optimize"
)

// Features records constructs in the emitted text that only backtracking
// engines support.
type Features uint8

// Feature bits.
const (
	Backreferences Features = 1 << iota
	Lookarounds
	VerboseSyntax
)

// NeedsBacktracking reports whether the text uses a construct outside the
// RE2 subset.
func (f Features) NeedsBacktracking() bool {
	return f&(Backreferences|Lookarounds|VerboseSyntax) != 0
}

// Result is the output of Compile.
type Result struct {
	// Text is the pattern text.
	Text string

	// Flags is the union of the global flags requested in the tree.
	Flags ast.Flags

	// Groups maps group names to their 1-based indices.
	Groups map[string]int

	// NumGroups is the number of capturing groups.
	NumGroups int

	// Features lists constructs that need a backtracking engine.
	Features Features

	// Config is the configuration Text was rendered with. Adapters that
	// re-emit the tree use it to keep the rendering consistent.
	Config Config
}

// Inline returns Text prefixed with the inline form of Flags, e.g. "(?im)",
// for engines that accept no separate option set.
func (r *Result) Inline() string {
	if r.Flags == 0 {
		return r.Text
	}
	return "(?" + r.Flags.String() + ")" + r.Text
}

// GroupNames returns the group names ordered by index.
func (r *Result) GroupNames() []string {
	names := make([]string, 0, len(r.Groups))
	for name := range r.Groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return r.Groups[names[i]] < r.Groups[names[j]]
	})
	return names
}

// Compile serializes n.
//
// Returns a *CompileError wrapping ErrDuplicateGroupName or
// ErrUnknownGroupReference when the tree is inconsistent, ErrTooComplex when
// it is nested deeper than config.MaxDepth, and a *ConfigError when config is
// invalid.
//
// Example:
//
//	res, err := emit.Compile(tree, emit.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	re := regexp.MustCompile(res.Inline())
func Compile(n ast.Node, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	log := logging.GetLogger("emit")

	if err := checkDepth(n, 0, config.MaxDepth); err != nil {
		log.Debug().Err(err).Msg("tree rejected")
		return nil, err
	}
	if config.Optimize {
		n = optimize.Optimize(n, config.FoldThreshold)
	}

	c := &compiler{
		config: config,
		res:    &Result{Groups: make(map[string]int), Config: config},
	}
	if err := c.collect(n); err != nil {
		log.Debug().Err(err).Msg("tree rejected")
		return nil, err
	}
	if err := c.resolve(); err != nil {
		log.Debug().Err(err).Msg("tree rejected")
		return nil, err
	}
	text, err := c.render(n, c.res.Flags)
	if err != nil {
		log.Debug().Err(err).Msg("tree rejected")
		return nil, err
	}
	c.res.Text = text

	log.Debug().
		Int("length", len(text)).
		Int("groups", c.res.NumGroups).
		Str("flags", c.res.Flags.String()).
		Msg("pattern compiled")
	return c.res, nil
}

type compiler struct {
	config Config
	res    *Result
	refs   []ast.Backreference
}

func checkDepth(n ast.Node, depth, limit int) error {
	if depth > limit {
		return &CompileError{
			Detail: fmt.Sprintf("nesting exceeds %d levels", limit),
			Err:    ErrTooComplex,
		}
	}
	for _, c := range ast.Children(n) {
		if err := checkDepth(c, depth+1, limit); err != nil {
			return err
		}
	}
	return nil
}

// collect numbers capturing groups in pre-order, records names, backreferences,
// global flags and features.
func (c *compiler) collect(n ast.Node) error {
	var err error
	ast.Walk(n, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case ast.Group:
			if !n.Capturing {
				return true
			}
			c.res.NumGroups++
			if n.Name == "" {
				return true
			}
			if !ast.ValidGroupName(n.Name) {
				err = &CompileError{Detail: "group name " + strconv.Quote(n.Name), Err: ErrInvalidNode}
				return false
			}
			if prev, dup := c.res.Groups[n.Name]; dup {
				err = &CompileError{
					Detail: fmt.Sprintf("%q declared by groups %d and %d", n.Name, prev, c.res.NumGroups),
					Err:    ErrDuplicateGroupName,
				}
				return false
			}
			c.res.Groups[n.Name] = c.res.NumGroups
		case ast.Backreference:
			c.refs = append(c.refs, n)
			c.res.Features |= Backreferences
		case ast.Lookaround:
			c.res.Features |= Lookarounds
		case ast.Anchor:
			if n.Kind == ast.StartOfLine || n.Kind == ast.EndOfLine {
				c.res.Flags |= ast.Multiline
			}
		case ast.Flagged:
			c.res.Flags |= n.Flags
		case ast.Comment:
			if strings.ContainsAny(n.Text, "\r\n") {
				err = &CompileError{Detail: "comment spans lines", Err: ErrInvalidNode}
				return false
			}
			c.res.Flags |= ast.Verbose
		case ast.FlagScope:
			if (n.Enabled | n.Disabled).Has(ast.Verbose) {
				c.res.Features |= VerboseSyntax
			}
		}
		return true
	})
	if err != nil {
		return err
	}
	if c.res.Flags.Has(ast.Verbose) {
		c.res.Features |= VerboseSyntax
	}
	return nil
}

// resolve checks every backreference against the group table.
func (c *compiler) resolve() error {
	for _, ref := range c.refs {
		if ref.Name != "" {
			if _, ok := c.res.Groups[ref.Name]; !ok {
				return &CompileError{
					Detail: "no group named " + strconv.Quote(ref.Name),
					Err:    ErrUnknownGroupReference,
				}
			}
			continue
		}
		if ref.Index < 1 || ref.Index > c.res.NumGroups {
			return &CompileError{
				Detail: fmt.Sprintf("index %d, pattern has %d groups", ref.Index, c.res.NumGroups),
				Err:    ErrUnknownGroupReference,
			}
		}
	}
	return nil
}

// render emits n under the effective flags in scope.
func (c *compiler) render(n ast.Node, flags ast.Flags) (string, error) {
	switch n := n.(type) {
	case ast.Literal:
		return escapeLiteral(n.Text, flags.Has(ast.Verbose)), nil

	case ast.CharClass:
		return renderClass(n, flags.Has(ast.Verbose)), nil

	case ast.Raw:
		return n.Text, nil

	case ast.AnyChar:
		return ".", nil

	case ast.Sequence:
		var b strings.Builder
		multi := len(n.Children) > 1
		prevRef := false
		for _, child := range n.Children {
			text, err := c.render(child, flags)
			if err != nil {
				return "", err
			}
			if multi && optimize.NeedsGroupInSequence(child) {
				text = "(?:" + text + ")"
			}
			if prevRef && text != "" && text[0] >= '0' && text[0] <= '9' {
				b.WriteString("(?:)")
			}
			b.WriteString(text)
			if _, comment := child.(ast.Comment); text != "" && !comment {
				prevRef = endsWithNumericRef(child)
			}
		}
		return b.String(), nil

	case ast.Alternation:
		if len(n.Children) == 0 {
			return "", &CompileError{Detail: "alternation without branches", Err: ErrInvalidNode}
		}
		parts := make([]string, len(n.Children))
		multi := len(n.Children) > 1
		for i, child := range n.Children {
			text, err := c.render(child, flags)
			if err != nil {
				return "", err
			}
			if multi && optimize.NeedsGroupAsBranch(child, c.config.GroupBranchSequences) {
				text = "(?:" + text + ")"
			}
			parts[i] = text
		}
		return strings.Join(parts, "|"), nil

	case ast.Quantified:
		if n.Min < 0 || (n.Max != ast.Unbounded && n.Max < n.Min) {
			return "", &CompileError{
				Detail: fmt.Sprintf("repetition {%d,%d}", n.Min, n.Max),
				Err:    ErrInvalidNode,
			}
		}
		text, err := c.render(n.Child, flags)
		if err != nil {
			return "", err
		}
		if optimize.NeedsGroupForQuantifier(n.Child) {
			text = "(?:" + text + ")"
		}
		text += quantifierSuffix(n.Min, n.Max)
		if n.Lazy {
			text += "?"
		}
		return text, nil

	case ast.Group:
		text, err := c.render(n.Child, flags)
		if err != nil {
			return "", err
		}
		switch {
		case !n.Capturing:
			return "(?:" + text + ")", nil
		case n.Name != "":
			return "(?<" + n.Name + ">" + text + ")", nil
		default:
			return "(" + text + ")", nil
		}

	case ast.Lookaround:
		text, err := c.render(n.Child, flags)
		if err != nil {
			return "", err
		}
		open := "(?"
		if n.Direction == ast.Behind {
			open += "<"
		}
		if n.Negate {
			open += "!"
		} else {
			open += "="
		}
		return open + text + ")", nil

	case ast.Backreference:
		if n.Name != "" {
			return `\k<` + n.Name + ">", nil
		}
		return `\` + strconv.Itoa(n.Index), nil

	case ast.Anchor:
		return renderAnchor(n.Kind, flags), nil

	case ast.FlagScope:
		scoped := (flags | n.Enabled) &^ n.Disabled
		text, err := c.render(n.Child, scoped)
		if err != nil {
			return "", err
		}
		mods := n.Enabled.String()
		if d := n.Disabled.String(); d != "" {
			mods += "-" + d
		}
		return "(?" + mods + ":" + text + ")", nil

	case ast.Flagged:
		return c.render(n.Child, flags)

	case ast.Comment:
		// Outside verbose mode, a comment has no syntax to carry it.
		if !flags.Has(ast.Verbose) {
			return "", nil
		}
		return "#" + n.Text + "\n", nil

	default:
		return "", &CompileError{Detail: fmt.Sprintf("unsupported node %T", n), Err: ErrInvalidNode}
	}
}

func endsWithNumericRef(n ast.Node) bool {
	switch n := n.(type) {
	case ast.Backreference:
		return n.Name == ""
	case ast.Sequence:
		for i := len(n.Children) - 1; i >= 0; i-- {
			if !isEmpty(n.Children[i]) {
				return endsWithNumericRef(n.Children[i])
			}
		}
		return false
	case ast.Flagged:
		return endsWithNumericRef(n.Child)
	default:
		return false
	}
}

func isEmpty(n ast.Node) bool {
	switch n := n.(type) {
	case ast.Literal:
		return n.Text == ""
	case ast.Sequence:
		for _, c := range n.Children {
			if !isEmpty(c) {
				return false
			}
		}
		return true
	case ast.Flagged:
		return isEmpty(n.Child)
	default:
		return false
	}
}

func renderAnchor(kind ast.AnchorKind, flags ast.Flags) string {
	multiline := flags.Has(ast.Multiline)
	switch kind {
	case ast.StartOfText:
		if multiline {
			return `\A`
		}
		return "^"
	case ast.EndOfText:
		if multiline {
			return `\z`
		}
		return "$"
	case ast.StartOfLine:
		if multiline {
			return "^"
		}
		return "(?m:^)"
	case ast.EndOfLine:
		if multiline {
			return "$"
		}
		return "(?m:$)"
	case ast.WordBoundary:
		return `\b`
	case ast.NonWordBoundary:
		return `\B`
	default:
		return ""
	}
}

func quantifierSuffix(lo, hi int) string {
	switch {
	case lo == 0 && hi == 1:
		return "?"
	case lo == 0 && hi == ast.Unbounded:
		return "*"
	case lo == 1 && hi == ast.Unbounded:
		return "+"
	case hi == ast.Unbounded:
		return "{" + strconv.Itoa(lo) + ",}"
	case lo == hi:
		return "{" + strconv.Itoa(lo) + "}"
	default:
		return "{" + strconv.Itoa(lo) + "," + strconv.Itoa(hi) + "}"
	}
}

// metachars must be escaped in literal context.
const metachars = `.^$*+?()[]{}|\`

// classMetachars must be escaped inside a bracketed class.
const classMetachars = `\]^-[`

func escapeLiteral(s string, verbose bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		writeRune(&b, r, metachars, verbose)
	}
	return b.String()
}

func writeRune(b *strings.Builder, r rune, special string, verbose bool) {
	switch {
	case r < utf8.RuneSelf && strings.IndexByte(special, byte(r)) >= 0:
		b.WriteByte('\\')
		b.WriteRune(r)
	case r < 0x20 || r == 0x7f:
		fmt.Fprintf(b, `\x%02X`, r)
	case verbose && (r == ' ' || r == '#'):
		b.WriteByte('\\')
		b.WriteRune(r)
	case verbose && unicode.IsSpace(r):
		fmt.Fprintf(b, `\u%04X`, r)
	default:
		b.WriteRune(r)
	}
}

func renderClass(c ast.CharClass, verbose bool) string {
	if len(c.Items) == 0 {
		if c.Negated {
			return `[\s\S]`
		}
		return `[^\s\S]`
	}
	if len(c.Items) == 1 {
		it := c.Items[0]
		switch {
		case it.IsNamed():
			return it.Escape(c.Negated)
		case it.Lo == it.Hi && !c.Negated:
			var b strings.Builder
			writeRune(&b, it.Lo, metachars, verbose)
			return b.String()
		}
	}

	var b strings.Builder
	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	for _, it := range c.Items {
		switch {
		case it.IsNamed():
			b.WriteString(it.Escape(false))
		case it.Lo == it.Hi:
			writeRune(&b, it.Lo, classMetachars, verbose)
		default:
			writeRune(&b, it.Lo, classMetachars, verbose)
			b.WriteByte('-')
			writeRune(&b, it.Hi, classMetachars, verbose)
		}
	}
	b.WriteByte(']')
	return b.String()
}
