package ast

import (
	"errors"
	"strings"
	"testing"
)

func TestFlagsString(t *testing.T) {
	tests := []struct {
		flags Flags
		want  string
	}{
		{0, ""},
		{IgnoreCase, "i"},
		{Verbose | IgnoreCase, "ix"},
		{DotAll | Multiline, "ms"},
		{IgnoreCase | Multiline | DotAll | Verbose, "imsx"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("Flags(%d).String() = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func TestFlagsHasValid(t *testing.T) {
	f := IgnoreCase | DotAll
	if !f.Has(IgnoreCase) || !f.Has(IgnoreCase|DotAll) {
		t.Errorf("Has() = false for set flags")
	}
	if f.Has(IgnoreCase | Multiline) {
		t.Errorf("Has() = true for a partly unset mask")
	}
	if !f.Valid() {
		t.Errorf("Valid() = false for known flags")
	}
	if Flags(1 << 6).Valid() {
		t.Errorf("Valid() = true for an unknown bit")
	}
}

func TestValidGroupName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"year", true},
		{"_x", true},
		{"a1_B2", true},
		{"", false},
		{"1a", false},
		{"with-dash", false},
		{"sp ace", false},
		{"ünï", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidGroupName(tt.name); got != tt.want {
				t.Errorf("ValidGroupName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestConstructionError(t *testing.T) {
	var err error = &ConstructionError{Op: "Between", Detail: "minimum 3 exceeds maximum 2", Err: ErrInvalidQuantifier}
	if !errors.Is(err, ErrInvalidQuantifier) {
		t.Errorf("errors.Is(ErrInvalidQuantifier) = false")
	}
	want := "scrive: Between: invalid quantifier: minimum 3 exceeds maximum 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = &ConstructionError{Op: "Choice", Err: ErrEmptyAlternation}
	if got := err.Error(); got != "scrive: Choice: empty alternation" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWalkPreOrder(t *testing.T) {
	tree := Sequence{Children: []Node{
		Group{Child: Literal{Text: "a"}, Name: "outer", Capturing: true},
		Quantified{Child: Group{Child: Group{Child: Literal{Text: "b"}, Capturing: true}, Capturing: true}, Min: 0, Max: Unbounded},
		Lookaround{Child: Literal{Text: "c"}, Direction: Ahead},
	}}

	var order []string
	Walk(tree, func(n Node) bool {
		switch n := n.(type) {
		case Literal:
			order = append(order, n.Text)
		case Group:
			order = append(order, "G")
		}
		return true
	})
	if got := strings.Join(order, ""); got != "GaGGbc" {
		t.Errorf("Walk order = %q, want %q", got, "GaGGbc")
	}

	// Returning false prunes the subtree.
	count := 0
	Walk(tree, func(n Node) bool {
		count++
		_, isQuant := n.(Quantified)
		return !isQuant
	})
	if count != 6 {
		t.Errorf("Walk visited %d nodes with pruning, want 6", count)
	}
}

func TestChildrenLeaves(t *testing.T) {
	for _, n := range []Node{Literal{}, CharClass{}, Raw{}, Backreference{Index: 1}, Anchor{}, AnyChar{}} {
		if c := Children(n); c != nil {
			t.Errorf("Children(%T) = %v, want nil", n, c)
		}
	}
}

func TestDescribe(t *testing.T) {
	tree := Sequence{Children: []Node{
		Anchor{Kind: StartOfText},
		Quantified{Child: Literal{Text: "ab"}, Min: 1, Max: Unbounded, Lazy: true},
		CharClass{Items: []ClassItem{{Lo: 'a', Hi: 'c'}, {Lo: 'x', Hi: 'x'}, {Perl: PerlDigit}}, Negated: true},
		Group{Child: Backreference{Name: "y"}, Name: "n", Capturing: true},
	}}
	want := strings.Join([]string{
		"Sequence(4)",
		"  Anchor start-of-text",
		"  Quantified{1,inf} lazy",
		`    Literal "ab"`,
		`  CharClass [^'a'-'c' 'x' \d]`,
		`  Group "n"`,
		`    Backreference "y"`,
		"",
	}, "\n")
	if got := Describe(tree); got != want {
		t.Errorf("Describe() =\n%s\nwant\n%s", got, want)
	}
}

func TestClassItemEscape(t *testing.T) {
	tests := []struct {
		item    ClassItem
		negated bool
		want    string
	}{
		{ClassItem{Perl: PerlDigit}, false, `\d`},
		{ClassItem{Perl: PerlWord}, true, `\W`},
		{ClassItem{Property: "Lu"}, false, `\p{Lu}`},
		{ClassItem{Property: "L"}, true, `\P{L}`},
		{ClassItem{Lo: 'a', Hi: 'z'}, false, ""},
	}
	for _, tt := range tests {
		if got := tt.item.Escape(tt.negated); got != tt.want {
			t.Errorf("%+v.Escape(%v) = %q, want %q", tt.item, tt.negated, got, tt.want)
		}
	}
}

func TestDescribeComment(t *testing.T) {
	tree := Sequence{Children: []Node{
		CharClass{Items: []ClassItem{{Property: "Greek"}}},
		Comment{Text: "greek letter"},
	}}
	want := "Sequence(2)\n  CharClass [\\p{Greek}]\n  Comment \"greek letter\"\n"
	if got := Describe(tree); got != want {
		t.Errorf("Describe() =\n%s\nwant\n%s", got, want)
	}
}
