package scrive

import (
	"unicode"

	"github.com/coregx/scrive/ast"
)

func perl(p ast.PerlClass, negated bool) Node {
	return ast.CharClass{Items: []ast.ClassItem{{Perl: p}}, Negated: negated}
}

func ranges(pairs ...rune) Node {
	items := make([]ast.ClassItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, ast.ClassItem{Lo: pairs[i], Hi: pairs[i+1]})
	}
	return ast.CharClass{Items: items}
}

// Digit matches a decimal digit (\d).
func Digit() Node { return perl(ast.PerlDigit, false) }

// NonDigit matches any character except a decimal digit (\D).
func NonDigit() Node { return perl(ast.PerlDigit, true) }

// Word matches a word character (\w).
func Word() Node { return perl(ast.PerlWord, false) }

// NonWord matches any character except a word character (\W).
func NonWord() Node { return perl(ast.PerlWord, true) }

// Whitespace matches a whitespace character (\s).
func Whitespace() Node { return perl(ast.PerlSpace, false) }

// NonWhitespace matches any character except whitespace (\S).
func NonWhitespace() Node { return perl(ast.PerlSpace, true) }

// Letter matches an ASCII letter.
func Letter() Node { return ranges('A', 'Z', 'a', 'z') }

// Lowercase matches an ASCII lowercase letter.
func Lowercase() Node { return ranges('a', 'z') }

// Uppercase matches an ASCII uppercase letter.
func Uppercase() Node { return ranges('A', 'Z') }

// Alphanumeric matches an ASCII letter or digit.
func Alphanumeric() Node { return ranges('0', '9', 'A', 'Z', 'a', 'z') }

// Hexadecimal matches a hexadecimal digit in either case.
func Hexadecimal() Node { return ranges('0', '9', 'A', 'F', 'a', 'f') }

// ASCII matches a printable ASCII character, space through tilde.
func ASCII() Node { return ranges(' ', '~') }

// NonASCII matches any character outside printable ASCII.
func NonASCII() Node { return Invert(ASCII()) }

// Tab matches a horizontal tab.
func Tab() Node { return ast.Literal{Text: "\t"} }

// Newline matches a line feed.
func Newline() Node { return ast.Literal{Text: "\n"} }

// CarriageReturn matches a carriage return.
func CarriageReturn() Node { return ast.Literal{Text: "\r"} }

// Space matches a single space.
func Space() Node { return ast.Literal{Text: " "} }

// Unicode matches a character in the Unicode general category named by
// category, e.g. "L" or "Lu".
func Unicode(category string) (Node, error) {
	if _, ok := unicode.Categories[category]; !ok {
		return nil, constructionError("Unicode", ast.ErrInvalidArgument, "unknown category %q", category)
	}
	return ast.CharClass{Items: []ast.ClassItem{{Property: category}}}, nil
}

// StartOfText matches at the beginning of the input.
func StartOfText() Node { return ast.Anchor{Kind: ast.StartOfText} }

// EndOfText matches at the end of the input.
func EndOfText() Node { return ast.Anchor{Kind: ast.EndOfText} }

// StartOfLine matches at the beginning of the input or after a newline.
// Using it turns on multiline mode for the whole pattern.
func StartOfLine() Node { return ast.Anchor{Kind: ast.StartOfLine} }

// EndOfLine matches at the end of the input or before a newline.
// Using it turns on multiline mode for the whole pattern.
func EndOfLine() Node { return ast.Anchor{Kind: ast.EndOfLine} }

// WordBoundary matches between a word character and a non-word character.
func WordBoundary() Node { return ast.Anchor{Kind: ast.WordBoundary} }

// NonWordBoundary matches where WordBoundary does not.
func NonWordBoundary() Node { return ast.Anchor{Kind: ast.NonWordBoundary} }

func flagged(child Node, f ast.Flags) Node {
	if fl, ok := child.(ast.Flagged); ok {
		fl.Flags |= f
		return fl
	}
	return ast.Flagged{Child: child, Flags: f}
}

// IgnoreCase requests case-insensitive matching for the whole pattern
// containing child.
func IgnoreCase(child Node) Node { return flagged(child, ast.IgnoreCase) }

// Multiline requests that ^ and $ match at line breaks for the whole pattern
// containing child. Text anchors keep matching only at the ends of the input.
func Multiline(child Node) Node { return flagged(child, ast.Multiline) }

// DotAll requests that AnyChar match newlines for the whole pattern
// containing child.
func DotAll(child Node) Node { return flagged(child, ast.DotAll) }

// Verbose requests verbose syntax for the whole pattern containing child.
// Literal spaces and # are escaped. Go's regexp does not accept verbose
// patterns, so Matcher uses the backtracking engine.
func Verbose(child Node) Node { return flagged(child, ast.Verbose) }

// CaseInsensitive matches child ignoring case, without affecting the rest of
// the pattern.
func CaseInsensitive(child Node) Node {
	return ast.FlagScope{Child: child, Enabled: ast.IgnoreCase}
}

// CaseSensitive matches child respecting case, even inside IgnoreCase.
func CaseSensitive(child Node) Node {
	return ast.FlagScope{Child: child, Disabled: ast.IgnoreCase}
}

// Scope matches child with the flags in enable turned on and those in
// disable turned off, without affecting the rest of the pattern.
//
// Returns an error wrapping ErrInvalidArgument if a flag is in both sets or
// a set holds unknown bits.
func Scope(child Node, enable, disable Flags) (Node, error) {
	if !enable.Valid() || !disable.Valid() {
		return nil, constructionError("Scope", ast.ErrInvalidArgument, "unknown flag bits")
	}
	if enable&disable != 0 {
		return nil, constructionError("Scope", ast.ErrInvalidArgument, "flags %q both enabled and disabled", (enable & disable).String())
	}
	return ast.FlagScope{Child: child, Enabled: enable, Disabled: disable}, nil
}
