package ast

import "strings"

// Flags is a set of matching flags.
type Flags uint8

// Matching flags. The inline letter of each flag is given in its comment.
const (
	IgnoreCase Flags = 1 << iota // i
	Multiline                    // m
	DotAll                       // s
	Verbose                      // x

	flagsMask = IgnoreCase | Multiline | DotAll | Verbose
)

var flagLetters = [...]struct {
	flag   Flags
	letter byte
}{
	{IgnoreCase, 'i'},
	{Multiline, 'm'},
	{DotAll, 's'},
	{Verbose, 'x'},
}

// Has reports whether every flag in other is set in f.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}

// Valid reports whether f only contains known flags.
func (f Flags) Valid() bool {
	return f&^flagsMask == 0
}

// String returns the inline letters of the set flags in "imsx" order.
// The empty set renders as the empty string.
func (f Flags) String() string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			b.WriteByte(fl.letter)
		}
	}
	return b.String()
}
