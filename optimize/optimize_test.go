package optimize

import (
	"reflect"
	"testing"

	"github.com/coregx/scrive/ast"
)

func singles(rs ...rune) []ast.ClassItem {
	items := make([]ast.ClassItem, len(rs))
	for i, r := range rs {
		items[i] = ast.ClassItem{Lo: r, Hi: r}
	}
	return items
}

func lit(s string) ast.Node { return ast.Literal{Text: s} }

func TestFoldClass(t *testing.T) {
	tests := []struct {
		name      string
		items     []ast.ClassItem
		threshold int
		want      []ast.ClassItem
	}{
		{
			name:      "run becomes range",
			items:     singles('e', 'a', 'c', 'b', 'd'),
			threshold: 3,
			want:      []ast.ClassItem{{Lo: 'a', Hi: 'e'}},
		},
		{
			name:      "short runs stay single",
			items:     singles('b', 'a', 'x'),
			threshold: 3,
			want:      singles('a', 'b', 'x'),
		},
		{
			name:      "threshold two",
			items:     singles('b', 'a', 'x'),
			threshold: 2,
			want:      []ast.ClassItem{{Lo: 'a', Hi: 'b'}, {Lo: 'x', Hi: 'x'}},
		},
		{
			name:      "duplicates",
			items:     singles('a', 'a', 'b'),
			threshold: 3,
			want:      singles('a', 'b'),
		},
		{
			name:      "overlapping ranges merge",
			items:     []ast.ClassItem{{Lo: 'm', Hi: 'z'}, {Lo: 'a', Hi: 'n'}},
			threshold: 3,
			want:      []ast.ClassItem{{Lo: 'a', Hi: 'z'}},
		},
		{
			name:      "adjacent range and single",
			items:     []ast.ClassItem{{Lo: '0', Hi: '8'}, {Lo: '9', Hi: '9'}},
			threshold: 3,
			want:      []ast.ClassItem{{Lo: '0', Hi: '9'}},
		},
		{
			name:      "shorthands last in d s w order",
			items:     []ast.ClassItem{{Perl: ast.PerlWord}, {Lo: '-', Hi: '-'}, {Perl: ast.PerlDigit}, {Perl: ast.PerlWord}},
			threshold: 3,
			want:      []ast.ClassItem{{Lo: '-', Hi: '-'}, {Perl: ast.PerlDigit}, {Perl: ast.PerlWord}},
		},
		{
			name:      "categories after shorthands by name",
			items:     []ast.ClassItem{{Property: "Lu"}, {Lo: 'a', Hi: 'a'}, {Property: "L"}, {Perl: ast.PerlDigit}, {Property: "Lu"}},
			threshold: 3,
			want:      []ast.ClassItem{{Lo: 'a', Hi: 'a'}, {Perl: ast.PerlDigit}, {Property: "L"}, {Property: "Lu"}},
		},
		{
			name:      "full code point space is not expanded",
			items:     []ast.ClassItem{{Lo: 0, Hi: 0x10FFFF}, {Lo: 'a', Hi: 'a'}},
			threshold: 3,
			want:      []ast.ClassItem{{Lo: 0, Hi: 0x10FFFF}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FoldClass(tt.items, tt.threshold)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FoldClass() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFoldClassOrderIndependent(t *testing.T) {
	a := FoldClass(singles('e', 'a', 'c', 'b', 'd'), DefaultFoldThreshold)
	b := FoldClass(singles('a', 'b', 'c', 'd', 'e'), DefaultFoldThreshold)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("FoldClass depends on input order: %v vs %v", a, b)
	}
}

func TestFoldAlternation(t *testing.T) {
	tests := []struct {
		name   string
		alt    ast.Alternation
		wantOK bool
		want   ast.Node
	}{
		{
			name:   "single characters",
			alt:    ast.Alternation{Children: []ast.Node{lit("c"), lit("a"), lit("b")}},
			wantOK: true,
			want:   ast.CharClass{Items: []ast.ClassItem{{Lo: 'a', Hi: 'c'}}},
		},
		{
			name: "characters and classes",
			alt: ast.Alternation{Children: []ast.Node{
				lit("x"),
				ast.CharClass{Items: []ast.ClassItem{{Lo: '0', Hi: '9'}}},
			}},
			wantOK: true,
			want:   ast.CharClass{Items: []ast.ClassItem{{Lo: '0', Hi: '9'}, {Lo: 'x', Hi: 'x'}}},
		},
		{
			name:   "multi-character literal",
			alt:    ast.Alternation{Children: []ast.Node{lit("a"), lit("bc")}},
			wantOK: false,
		},
		{
			name: "negated class",
			alt: ast.Alternation{Children: []ast.Node{
				lit("a"),
				ast.CharClass{Items: []ast.ClassItem{{Lo: 'b', Hi: 'b'}}, Negated: true},
			}},
			wantOK: false,
		},
		{
			name:   "empty literal",
			alt:    ast.Alternation{Children: []ast.Node{lit("a"), lit("")}},
			wantOK: false,
		},
		{
			name:   "single branch",
			alt:    ast.Alternation{Children: []ast.Node{lit("a")}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FoldAlternation(tt.alt, DefaultFoldThreshold)
			if ok != tt.wantOK {
				t.Fatalf("FoldAlternation() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if !reflect.DeepEqual(got, tt.alt) {
					t.Errorf("FoldAlternation() changed a rejected alternation: %v", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FoldAlternation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvert(t *testing.T) {
	class := ast.CharClass{Items: []ast.ClassItem{{Lo: 'a', Hi: 'z'}}}
	inv := Invert(class)
	if c, ok := inv.(ast.CharClass); !ok || !c.Negated {
		t.Fatalf("Invert(class) = %v, want negated class", inv)
	}
	if got := Invert(inv); !reflect.DeepEqual(got, class) {
		t.Errorf("Invert(Invert(class)) = %v, want %v", got, class)
	}
	if c := class; c.Negated {
		t.Errorf("Invert modified its argument")
	}

	got := Invert(lit("foo"))
	want := ast.Lookaround{Child: lit("foo"), Direction: ast.Ahead, Negate: true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Invert(literal) = %v, want %v", got, want)
	}
}

func TestNeedsGroupForQuantifier(t *testing.T) {
	seq2 := ast.Sequence{Children: []ast.Node{lit("a"), lit("b")}}
	tests := []struct {
		name string
		node ast.Node
		want bool
	}{
		{"single char", lit("a"), false},
		{"multi-byte char", lit("é"), false},
		{"multi char", lit("ab"), true},
		{"empty literal", lit(""), true},
		{"class", ast.CharClass{Items: []ast.ClassItem{{Lo: 'a', Hi: 'z'}}}, false},
		{"dot", ast.AnyChar{}, false},
		{"backreference", ast.Backreference{Index: 1}, false},
		{"group", ast.Group{Child: seq2, Capturing: true}, false},
		{"lookaround", ast.Lookaround{Child: seq2}, false},
		{"flag scope", ast.FlagScope{Child: seq2, Enabled: ast.IgnoreCase}, false},
		{"sequence", seq2, true},
		{"single sequence", ast.Sequence{Children: []ast.Node{lit("a")}}, false},
		{"alternation", ast.Alternation{Children: []ast.Node{lit("a"), lit("b")}}, true},
		{"raw", ast.Raw{Text: "a"}, true},
		{"quantified", ast.Quantified{Child: lit("a"), Min: 1, Max: ast.Unbounded}, true},
		{"anchor", ast.Anchor{Kind: ast.WordBoundary}, true},
		{"flagged atom", ast.Flagged{Child: lit("a"), Flags: ast.IgnoreCase}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsGroupForQuantifier(tt.node); got != tt.want {
				t.Errorf("NeedsGroupForQuantifier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeedsGroupInSequenceAndBranch(t *testing.T) {
	alt := ast.Alternation{Children: []ast.Node{lit("a"), lit("b")}}
	seq := ast.Sequence{Children: []ast.Node{lit("a"), lit("b")}}

	if !NeedsGroupInSequence(alt) {
		t.Errorf("NeedsGroupInSequence(alternation) = false")
	}
	if !NeedsGroupInSequence(ast.Raw{Text: "a|b"}) {
		t.Errorf("NeedsGroupInSequence(raw) = false")
	}
	if NeedsGroupInSequence(seq) || NeedsGroupInSequence(lit("ab")) {
		t.Errorf("NeedsGroupInSequence() = true for a concatenation")
	}

	if !NeedsGroupAsBranch(seq, true) {
		t.Errorf("NeedsGroupAsBranch(sequence, true) = false")
	}
	if NeedsGroupAsBranch(seq, false) {
		t.Errorf("NeedsGroupAsBranch(sequence, false) = true")
	}
	if NeedsGroupAsBranch(lit("abc"), true) {
		t.Errorf("NeedsGroupAsBranch(literal) = true")
	}
}

func TestOptimize(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want ast.Node
	}{
		{
			name: "flatten sequences",
			node: ast.Sequence{Children: []ast.Node{lit("a"), ast.Sequence{Children: []ast.Node{lit("b"), lit("c")}}}},
			want: ast.Sequence{Children: []ast.Node{lit("a"), lit("b"), lit("c")}},
		},
		{
			name: "flatten and fold alternations",
			node: ast.Alternation{Children: []ast.Node{lit("a"), ast.Alternation{Children: []ast.Node{lit("b"), lit("c")}}}},
			want: ast.CharClass{Items: []ast.ClassItem{{Lo: 'a', Hi: 'c'}}},
		},
		{
			name: "unwrap single child",
			node: ast.Sequence{Children: []ast.Node{ast.Alternation{Children: []ast.Node{lit("ab")}}}},
			want: lit("ab"),
		},
		{
			name: "drop exactly once",
			node: ast.Quantified{Child: lit("ab"), Min: 1, Max: 1},
			want: lit("ab"),
		},
		{
			name: "drop redundant non-capturing group",
			node: ast.Group{Child: ast.Group{Child: lit("a"), Capturing: true}},
			want: ast.Group{Child: lit("a"), Capturing: true},
		},
		{
			name: "keep capturing groups",
			node: ast.Group{Child: ast.Group{Child: lit("a"), Capturing: true}, Capturing: true},
			want: ast.Group{Child: ast.Group{Child: lit("a"), Capturing: true}, Capturing: true},
		},
		{
			name: "refold classes",
			node: ast.CharClass{Items: singles('c', 'b', 'a')},
			want: ast.CharClass{Items: []ast.ClassItem{{Lo: 'a', Hi: 'c'}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Optimize(tt.node, DefaultFoldThreshold); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Optimize() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestOptimizeDoesNotMutate(t *testing.T) {
	inner := ast.Sequence{Children: []ast.Node{lit("b"), lit("c")}}
	children := []ast.Node{lit("a"), inner}
	tree := ast.Sequence{Children: children}
	_ = Optimize(tree, DefaultFoldThreshold)
	if !reflect.DeepEqual(children[1], inner) || len(tree.Children) != 2 {
		t.Errorf("Optimize modified its input")
	}
}
