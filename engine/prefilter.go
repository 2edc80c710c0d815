package engine

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/scrive/literal"
)

// prefiltered answers containment queries for patterns whose language is a
// finite literal set with an Aho-Corasick automaton, and delegates the rest
// to the backend. A text without any of the literals cannot match, so the
// automaton also short-circuits searches that would fail.
type prefiltered struct {
	Matcher
	auto *ahocorasick.Automaton
}

func newPrefiltered(m Matcher, seq *literal.Seq) (*prefiltered, error) {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &prefiltered{Matcher: m, auto: auto}, nil
}

func (p *prefiltered) MatchString(s string) bool {
	return p.auto.IsMatch([]byte(s))
}

func (p *prefiltered) FindString(s string) string {
	if !p.auto.IsMatch([]byte(s)) {
		return ""
	}
	return p.Matcher.FindString(s)
}

func (p *prefiltered) FindAllString(s string, n int) []string {
	if !p.auto.IsMatch([]byte(s)) {
		return nil
	}
	return p.Matcher.FindAllString(s, n)
}
