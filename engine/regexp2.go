package engine

import (
	"fmt"
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/coregx/scrive/ast"
	"github.com/coregx/scrive/emit"
	"github.com/coregx/scrive/internal/logging"
)

type regexp2Matcher struct {
	re    *regexp2.Regexp
	full  func() (*regexp2.Regexp, error)
	expr  string
	names []string
}

// Regexp2 compiles res with github.com/dlclark/regexp2 in RE2 compatibility
// mode, which keeps $, \d, \s and \w in line with coregex. Global flags map
// to regexp2 options.
//
// regexp2 numbers named groups after unnamed ones. When res mixes the two,
// tree, the node res was compiled from, is re-emitted with positional groups
// so that group numbers, SubexpNames and replacement references agree with
// res. A mixed res without its tree is rejected.
func Regexp2(res *emit.Result, tree ast.Node) (Matcher, error) {
	text := res.Text
	if mixedGroups(res) {
		if tree == nil {
			return nil, fmt.Errorf("scrive: regexp2: pattern mixes named and unnamed groups and no tree was given")
		}
		pos, err := emit.Compile(positional(tree, res.Groups), res.Config)
		if err != nil {
			return nil, err
		}
		text = pos.Text
	}

	opts := regexp2Options(res.Flags)
	re, err := regexp2.Compile(text, opts)
	if err != nil {
		return nil, fmt.Errorf("scrive: regexp2: %w", err)
	}
	return &regexp2Matcher{
		re: re,
		full: sync.OnceValues(func() (*regexp2.Regexp, error) {
			return regexp2.Compile(anchorFull(text), opts)
		}),
		expr:  text,
		names: subexpNames(res),
	}, nil
}

func mixedGroups(res *emit.Result) bool {
	return len(res.Groups) > 0 && len(res.Groups) < res.NumGroups
}

func regexp2Options(flags ast.Flags) regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.RE2)
	if flags.Has(ast.IgnoreCase) {
		opts |= regexp2.IgnoreCase
	}
	if flags.Has(ast.Multiline) {
		opts |= regexp2.Multiline
	}
	if flags.Has(ast.DotAll) {
		opts |= regexp2.Singleline
	}
	if flags.Has(ast.Verbose) {
		opts |= regexp2.IgnorePatternWhitespace
	}
	return opts
}

func (m *regexp2Matcher) logErr(op string, err error) {
	log := logging.GetLogger("engine")
	log.Warn().Err(err).Str("op", op).Msg("regexp2 match failed")
}

func (m *regexp2Matcher) MatchPrefix(s string) bool {
	match, err := m.re.FindStringMatch(s)
	if err != nil {
		m.logErr("MatchPrefix", err)
		return false
	}
	return match != nil && match.Index == 0
}

func (m *regexp2Matcher) MatchString(s string) bool {
	ok, err := m.re.MatchString(s)
	if err != nil {
		m.logErr("MatchString", err)
		return false
	}
	return ok
}

func (m *regexp2Matcher) MatchFull(s string) bool {
	full, err := m.full()
	if err != nil {
		m.logErr("MatchFull", err)
		return false
	}
	ok, err := full.MatchString(s)
	if err != nil {
		m.logErr("MatchFull", err)
		return false
	}
	return ok
}

func (m *regexp2Matcher) FindString(s string) string {
	match, err := m.re.FindStringMatch(s)
	if err != nil {
		m.logErr("FindString", err)
		return ""
	}
	if match == nil {
		return ""
	}
	return match.String()
}

func (m *regexp2Matcher) FindAllString(s string, n int) []string {
	matches := m.findAll(s, n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = s[match[0]:match[1]]
	}
	return out
}

// findAll returns up to n matches as submatch index pairs in bytes, with the
// same choice of matches as regexp.Regexp.FindAllStringSubmatchIndex: an
// empty match right after the previous match is dropped. regexp2 reports
// positions in runes, so they are mapped back onto s.
func (m *regexp2Matcher) findAll(s string, n int) [][]int {
	if n == 0 {
		return nil
	}
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(s))

	var out [][]int
	prevEnd := -1
	match, err := m.re.FindStringMatch(s)
	for match != nil && err == nil {
		if match.Length > 0 || match.Index != prevEnd {
			out = append(out, m.submatches(match, offsets))
			if n > 0 && len(out) == n {
				break
			}
		}
		prevEnd = match.Index + match.Length
		match, err = m.re.FindNextMatch(match)
	}
	if err != nil {
		m.logErr("FindAll", err)
	}
	return out
}

func (m *regexp2Matcher) submatches(match *regexp2.Match, offsets []int) []int {
	loc := make([]int, 2*len(m.names))
	loc[0], loc[1] = offsets[match.Index], offsets[match.Index+match.Length]
	for i := 1; i < len(m.names); i++ {
		loc[2*i], loc[2*i+1] = -1, -1
		g := match.GroupByNumber(i)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		loc[2*i] = offsets[g.Index]
		loc[2*i+1] = offsets[g.Index+g.Length]
	}
	return loc
}

func (m *regexp2Matcher) Split(s string, n int) []string {
	return splitMatches(s, n, m.findAll(s, -1), len(m.expr) > 0)
}

func (m *regexp2Matcher) ReplaceAllString(src, repl string) string {
	return replaceAll(src, repl, m.findAll(src, -1), m.names)
}

func (m *regexp2Matcher) SubexpNames() []string {
	return m.names
}

func (m *regexp2Matcher) Backend() Backend {
	return Regexp2Backend
}
