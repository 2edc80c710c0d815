// Package engine hands compiled pattern text to a regular-expression engine.
//
// Two backends are available:
//   - coregex: an RE2-compatible engine, used for everything it can execute
//   - regexp2: a backtracking engine, used when the text needs
//     backreferences, lookarounds or verbose syntax
//
// Compile chooses between them from the features recorded in emit.Result.
// When the whole language of the tree is a finite set of literals, an
// Aho-Corasick automaton answers containment queries ahead of the backend.
package engine

import (
	"github.com/coregx/scrive/ast"
	"github.com/coregx/scrive/emit"
	"github.com/coregx/scrive/internal/logging"
	"github.com/coregx/scrive/literal"
)

// Matcher runs a compiled pattern against text.
//
// All methods are safe for concurrent use.
type Matcher interface {
	// MatchPrefix reports whether a match starts at the beginning of s.
	MatchPrefix(s string) bool

	// MatchString reports whether s contains a match anywhere.
	MatchString(s string) bool

	// MatchFull reports whether the whole of s is a match.
	MatchFull(s string) bool

	// FindString returns the leftmost match in s, or "" if there is none.
	FindString(s string) string

	// FindAllString returns up to n successive non-overlapping matches.
	// n < 0 returns all matches.
	FindAllString(s string, n int) []string

	// Split slices s into substrings separated by matches, with the same
	// count semantics as regexp.Regexp.Split.
	Split(s string, n int) []string

	// ReplaceAllString replaces every match with repl, expanding $1, $name
	// and ${name} references as regexp.Regexp.Expand does.
	ReplaceAllString(src, repl string) string

	// SubexpNames returns the group names indexed by group number.
	// Element 0 is the whole match and is always "".
	SubexpNames() []string

	// Backend names the engine executing the pattern.
	Backend() Backend
}

// Backend identifies a matching engine.
type Backend uint8

const (
	// Auto selects the backend from the pattern's features.
	Auto Backend = iota

	// CoregexBackend is github.com/coregx/coregex.
	CoregexBackend

	// Regexp2Backend is github.com/dlclark/regexp2.
	Regexp2Backend
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case Auto:
		return "auto"
	case CoregexBackend:
		return "coregex"
	case Regexp2Backend:
		return "regexp2"
	default:
		return "unknown"
	}
}

// Options controls backend selection.
//
// Example:
//
//	opts := engine.DefaultOptions()
//	opts.Backend = engine.Regexp2Backend // always use the backtracking engine
//	m, err := engine.CompileWithOptions(res, tree, opts)
type Options struct {
	// Backend forces a backend. Auto picks coregex unless the pattern needs
	// backtracking.
	// Default: Auto
	Backend Backend

	// EnablePrefilter allows the Aho-Corasick literal prefilter.
	// Default: true
	EnablePrefilter bool

	// PrefilterMinLiterals is the smallest literal set worth an automaton.
	// Smaller sets are left to the backend.
	// Default: 8
	PrefilterMinLiterals int

	// Extractor limits literal extraction from the tree.
	Extractor literal.ExtractorConfig
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Backend:              Auto,
		EnablePrefilter:      true,
		PrefilterMinLiterals: 8,
		Extractor:            literal.DefaultConfig(),
	}
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Backend > Regexp2Backend {
		return &emit.ConfigError{Field: "Backend", Message: "unknown backend"}
	}
	if o.PrefilterMinLiterals < 1 {
		return &emit.ConfigError{Field: "PrefilterMinLiterals", Message: "must be at least 1"}
	}
	return nil
}

// Compile builds a Matcher for res with DefaultOptions. tree must be the node
// res was compiled from; it is used for literal extraction and for
// re-emission on regexp2, and may be nil.
func Compile(res *emit.Result, tree ast.Node) (Matcher, error) {
	return CompileWithOptions(res, tree, DefaultOptions())
}

// CompileWithOptions builds a Matcher for res.
//
// With Backend set to Auto, text that needs backtracking goes to regexp2 and
// everything else to coregex. Text coregex rejects (a raw fragment in
// Perl syntax, for example) is retried with regexp2.
func CompileWithOptions(res *emit.Result, tree ast.Node, opts Options) (Matcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := logging.GetLogger("engine")

	backend := opts.Backend
	if backend == Auto {
		backend = CoregexBackend
		if res.Features.NeedsBacktracking() {
			backend = Regexp2Backend
		}
	}

	var m Matcher
	var err error
	switch backend {
	case CoregexBackend:
		m, err = Coregex(res)
		if err != nil && opts.Backend == Auto {
			log.Debug().Err(err).Msg("coregex rejected pattern, retrying with regexp2")
			m, err = Regexp2(res, tree)
		}
	default:
		m, err = Regexp2(res, tree)
	}
	if err != nil {
		return nil, err
	}

	if opts.EnablePrefilter && tree != nil && res.Flags == 0 {
		if seq, ok := literal.New(opts.Extractor).ExtractExact(tree); ok {
			seq.Minimize()
			if seq.Len() >= opts.PrefilterMinLiterals && !seq.HasEmpty() {
				p, perr := newPrefiltered(m, seq)
				if perr == nil {
					log.Debug().
						Str("backend", m.Backend().String()).
						Int("literals", seq.Len()).
						Msg("matcher compiled with literal prefilter")
					return p, nil
				}
				log.Debug().Err(perr).Msg("prefilter build failed")
			}
		}
	}

	log.Debug().Str("backend", m.Backend().String()).Msg("matcher compiled")
	return m, nil
}

// inlineFlags returns the inline form of the global flags of res, e.g. "(?im)".
func inlineFlags(res *emit.Result) string {
	if res.Flags == 0 {
		return ""
	}
	return "(?" + res.Flags.String() + ")"
}

// anchorFull wraps text so that it only matches the whole input.
func anchorFull(text string) string {
	return `\A(?:` + text + `)\z`
}

// positional returns n with every named group unnamed and every named
// backreference replaced by the index groups assigns to it.
func positional(n ast.Node, groups map[string]int) ast.Node {
	switch n := n.(type) {
	case ast.Group:
		n.Child = positional(n.Child, groups)
		n.Name = ""
		return n
	case ast.Backreference:
		if n.Name != "" {
			return ast.Backreference{Index: groups[n.Name]}
		}
		return n
	case ast.Sequence:
		return ast.Sequence{Children: positionalAll(n.Children, groups)}
	case ast.Alternation:
		return ast.Alternation{Children: positionalAll(n.Children, groups)}
	case ast.Quantified:
		n.Child = positional(n.Child, groups)
		return n
	case ast.Lookaround:
		n.Child = positional(n.Child, groups)
		return n
	case ast.FlagScope:
		n.Child = positional(n.Child, groups)
		return n
	case ast.Flagged:
		n.Child = positional(n.Child, groups)
		return n
	default:
		return n
	}
}

func positionalAll(children []ast.Node, groups map[string]int) []ast.Node {
	out := make([]ast.Node, len(children))
	for i, c := range children {
		out[i] = positional(c, groups)
	}
	return out
}

// subexpNames builds the SubexpNames slice from the group table of res.
func subexpNames(res *emit.Result) []string {
	names := make([]string, res.NumGroups+1)
	for name, i := range res.Groups {
		if i > 0 && i < len(names) {
			names[i] = name
		}
	}
	return names
}

// splitMatches implements regexp.Regexp.Split over match index pairs.
func splitMatches(s string, n int, matches [][]int, nonEmptyPattern bool) []string {
	if n == 0 {
		return nil
	}
	if nonEmptyPattern && len(s) == 0 {
		return []string{""}
	}

	out := make([]string, 0, len(matches))
	beg, end := 0, 0
	for _, match := range matches {
		if n > 0 && len(out) == n-1 {
			break
		}
		end = match[0]
		if match[1] != 0 {
			out = append(out, s[beg:end])
		}
		beg = match[1]
	}
	if end != len(s) {
		out = append(out, s[beg:])
	}
	return out
}
