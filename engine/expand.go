package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// replaceAll returns src with each match replaced by the expansion of
// template. matches holds submatch index pairs as returned by
// regexp.Regexp.FindAllStringSubmatchIndex.
func replaceAll(src, template string, matches [][]int, names []string) string {
	if len(matches) == 0 {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, match := range matches {
		b.WriteString(src[last:match[0]])
		expand(&b, template, src, match, names)
		last = match[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// expand writes template to b with $name and ${name} references resolved
// against match, following regexp.Regexp.Expand: a numeric name is a group
// index, an unknown or unmatched group expands to nothing, $$ is a dollar,
// and a $ that starts no valid reference is kept as is.
func expand(b *strings.Builder, template, src string, match []int, names []string) {
	for {
		i := strings.IndexByte(template, '$')
		if i < 0 {
			b.WriteString(template)
			return
		}
		b.WriteString(template[:i])
		template = template[i+1:]

		if strings.HasPrefix(template, "$") {
			b.WriteByte('$')
			template = template[1:]
			continue
		}
		name, rest, ok := refName(template)
		if !ok {
			b.WriteByte('$')
			continue
		}
		template = rest

		group := groupIndex(name, names)
		if group >= 0 && 2*group+1 < len(match) && match[2*group] >= 0 {
			b.WriteString(src[match[2*group]:match[2*group+1]])
		}
	}
}

// refName parses the name of a reference from s, the text after a $.
func refName(s string) (name, rest string, ok bool) {
	braced := strings.HasPrefix(s, "{")
	if braced {
		s = s[1:]
	}
	end := 0
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		end += size
	}
	if end == 0 {
		return "", "", false
	}
	name, rest = s[:end], s[end:]
	if braced {
		if !strings.HasPrefix(rest, "}") {
			return "", "", false
		}
		rest = rest[1:]
	}
	return name, rest, true
}

// groupIndex resolves a reference name to a group index, or -1.
func groupIndex(name string, names []string) int {
	if n, ok := decimal(name); ok {
		return n
	}
	for i, other := range names {
		if i > 0 && other == name {
			return i
		}
	}
	return -1
}

// decimal parses name as a group number without leading zeros.
func decimal(name string) (int, bool) {
	if len(name) > 1 && name[0] == '0' {
		return 0, false
	}
	n := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < '0' || c > '9' || n >= 1e8 {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
