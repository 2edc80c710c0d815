// Package scrive builds regular expressions from composable Go calls.
//
// Instead of writing pattern text by hand, a pattern is assembled from
// combinators into an immutable expression tree, and Compile turns the tree
// into text for a regular-expression engine:
//   - literals are escaped, so "1.5" never matches "105"
//   - non-capturing groups are added only where precedence requires one
//   - character classes and single-character alternations are folded
//   - capturing groups are numbered in the order their parentheses appear,
//     no matter in which order the parts were built
//   - numeric ranges such as 0..255 become exact digit patterns
//
// Basic usage:
//
//	octet := scrive.Must(scrive.NumberRange(0, 255))
//	dot := scrive.Literal(".")
//	ip := scrive.AnchorString(scrive.Must(scrive.SeparatedBy(octet, dot, 4)))
//
//	p, err := scrive.Compile(ip)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p) // ^(?:[0-9]|[1-9][0-9]|1[0-9]{2}|2(?:[0-4][0-9]|5[0-5]))\.(?:...
//
// Matching:
//
//	m, err := p.Matcher()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m.MatchString("192.168.0.1") // true
//
// Matcher picks github.com/coregx/coregex for RE2-compatible output and
// github.com/dlclark/regexp2 when the pattern uses backreferences, lookarounds
// or verbose syntax.
//
// Combinators that can detect a local mistake (a reversed range, a negative
// repetition count, an empty alternation) return an error next to the node.
// Mistakes that depend on the whole tree (a duplicate group name, a
// backreference to a missing group) are reported by Compile.
package scrive

import (
	"github.com/rs/zerolog"

	"github.com/coregx/scrive/ast"
	"github.com/coregx/scrive/emit"
	"github.com/coregx/scrive/engine"
	"github.com/coregx/scrive/internal/logging"
	"github.com/coregx/scrive/numrange"
)

// Node is a pattern expression node.
type Node = ast.Node

// Flags is a set of regular-expression flags.
type Flags = ast.Flags

// Flag values, for Scope.
const (
	FlagIgnoreCase = ast.IgnoreCase
	FlagMultiline  = ast.Multiline
	FlagDotAll     = ast.DotAll
	FlagVerbose    = ast.Verbose
)

// Config controls compilation. See emit.Config.
type Config = emit.Config

// Errors returned by the combinators, Compile and NumberRange.
// Use errors.Is to test for them.
var (
	ErrInvalidQuantifier     = ast.ErrInvalidQuantifier
	ErrInvalidArgument       = ast.ErrInvalidArgument
	ErrEmptyAlternation      = ast.ErrEmptyAlternation
	ErrDuplicateGroupName    = emit.ErrDuplicateGroupName
	ErrUnknownGroupReference = emit.ErrUnknownGroupReference
	ErrTooComplex            = emit.ErrTooComplex
	ErrInvalidNode           = emit.ErrInvalidNode
	ErrInvalidRange          = numrange.ErrInvalidRange
)

// Pattern is a compiled pattern: the text, the global flags and the group
// table of an expression tree.
//
// A Pattern is immutable and safe to use concurrently from multiple
// goroutines.
type Pattern struct {
	tree ast.Node
	res  *emit.Result
}

// DefaultConfig returns the default compilation configuration.
//
// Example:
//
//	config := scrive.DefaultConfig()
//	config.FoldThreshold = 4
//	p, err := scrive.CompileWithConfig(tree, config)
func DefaultConfig() Config {
	return emit.DefaultConfig()
}

// Compile serializes the tree rooted at n with the default configuration.
//
// Returns an error wrapping ErrDuplicateGroupName, ErrUnknownGroupReference,
// ErrTooComplex or ErrInvalidNode when the tree cannot be serialized.
//
// Example:
//
//	p, err := scrive.Compile(scrive.OneOrMore(scrive.Literal("ab")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p) // (?:ab)+
func Compile(n Node) (*Pattern, error) {
	return CompileWithConfig(n, emit.DefaultConfig())
}

// CompileWithConfig serializes the tree rooted at n with a custom
// configuration.
func CompileWithConfig(n Node, config Config) (*Pattern, error) {
	res, err := emit.Compile(n, config)
	if err != nil {
		return nil, err
	}
	return &Pattern{tree: n, res: res}, nil
}

// MustCompile is like Compile but panics if the tree cannot be serialized.
// It simplifies safe initialization of global variables holding patterns.
func MustCompile(n Node) *Pattern {
	p, err := Compile(n)
	if err != nil {
		panic("scrive: Compile: " + err.Error())
	}
	return p
}

// String returns the pattern text without the global flags.
func (p *Pattern) String() string {
	return p.res.Text
}

// Flags returns the union of the global flags requested in the tree.
func (p *Pattern) Flags() Flags {
	return p.res.Flags
}

// Inline returns the pattern text prefixed with its global flags in inline
// form, e.g. "(?i)abc". This is the form to pass to regexp.Compile.
func (p *Pattern) Inline() string {
	return p.res.Inline()
}

// NumSubexp returns the number of capturing groups.
func (p *Pattern) NumSubexp() int {
	return p.res.NumGroups
}

// SubexpIndex returns the index of the group with the given name, or -1 if
// there is no such group.
func (p *Pattern) SubexpIndex(name string) int {
	if i, ok := p.res.Groups[name]; ok {
		return i
	}
	return -1
}

// SubexpNames returns the group names indexed by group number, with "" for
// element 0 and for unnamed groups.
func (p *Pattern) SubexpNames() []string {
	names := make([]string, p.res.NumGroups+1)
	for name, i := range p.res.Groups {
		names[i] = name
	}
	return names
}

// NeedsBacktracking reports whether the text uses constructs outside the RE2
// syntax accepted by Go's regexp package.
func (p *Pattern) NeedsBacktracking() bool {
	return p.res.Features.NeedsBacktracking()
}

// Tree returns the expression tree the pattern was compiled from.
func (p *Pattern) Tree() Node {
	return p.tree
}

// Matcher compiles the pattern with a matching engine. See the engine
// package for the backend selection rules.
func (p *Pattern) Matcher() (engine.Matcher, error) {
	return engine.Compile(p.res, p.tree)
}

// MatcherWithOptions is like Matcher with custom engine options.
func (p *Pattern) MatcherWithOptions(opts engine.Options) (engine.Matcher, error) {
	return engine.CompileWithOptions(p.res, p.tree, opts)
}

// Describe renders the tree rooted at n as an indented outline, one node per
// line. It is meant for debugging.
func Describe(n Node) string {
	return ast.Describe(n)
}

// SetLogger installs the logger used by all scrive packages. The default
// logger discards everything.
//
// Example:
//
//	scrive.SetLogger(zerolog.New(os.Stderr).Level(zerolog.DebugLevel))
func SetLogger(l zerolog.Logger) {
	logging.SetLogger(l)
}
