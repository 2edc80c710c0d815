package engine

import (
	"fmt"
	"sync"

	"github.com/coregx/coregex"

	"github.com/coregx/scrive/emit"
	"github.com/coregx/scrive/internal/logging"
)

type coregexMatcher struct {
	re    *coregex.Regex
	full  func() (*coregex.Regex, error)
	names []string
}

// Coregex compiles res with github.com/coregx/coregex. Global flags are
// passed inline. Returns an error if the text is outside the RE2 syntax,
// which is always the case when res needs backtracking.
func Coregex(res *emit.Result) (Matcher, error) {
	if res.Features.NeedsBacktracking() {
		return nil, fmt.Errorf("scrive: coregex: pattern needs a backtracking engine")
	}
	re, err := coregex.Compile(res.Inline())
	if err != nil {
		return nil, fmt.Errorf("scrive: coregex: %w", err)
	}
	return &coregexMatcher{
		re: re,
		full: sync.OnceValues(func() (*coregex.Regex, error) {
			return coregex.Compile(inlineFlags(res) + anchorFull(res.Text))
		}),
		names: subexpNames(res),
	}, nil
}

func (m *coregexMatcher) MatchPrefix(s string) bool {
	// The leftmost match starts at 0 whenever any match does.
	loc := m.re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

func (m *coregexMatcher) MatchString(s string) bool {
	return m.re.MatchString(s)
}

func (m *coregexMatcher) MatchFull(s string) bool {
	full, err := m.full()
	if err != nil {
		log := logging.GetLogger("engine")
		log.Warn().Err(err).Msg("coregex full-match pattern rejected")
		return false
	}
	return full.MatchString(s)
}

func (m *coregexMatcher) FindString(s string) string {
	return m.re.FindString(s)
}

func (m *coregexMatcher) FindAllString(s string, n int) []string {
	return m.re.FindAllString(s, n)
}

func (m *coregexMatcher) Split(s string, n int) []string {
	return m.re.Split(s, n)
}

// ReplaceAllString expands repl itself: coregex only understands $0 to $9.
func (m *coregexMatcher) ReplaceAllString(src, repl string) string {
	return replaceAll(src, repl, m.re.FindAllStringSubmatchIndex(src, -1), m.names)
}

func (m *coregexMatcher) SubexpNames() []string {
	return m.names
}

func (m *coregexMatcher) Backend() Backend {
	return CoregexBackend
}
