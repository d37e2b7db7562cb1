package glob

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

// maxNegatedMembers bounds how many runes a negated class may expand to.
const maxNegatedMembers = 4096

var (
	errUnterminated = errors.New("glob: unterminated character class")
	errBadClassName = errors.New("glob: unknown character class name")
	errEmptyClass   = errors.New("glob: character class matches nothing")
	errClassTooWide = errors.New("glob: negated character class too wide")
)

type runeRange struct{ lo, hi rune }

var posixClasses = map[string][]runeRange{
	"alnum":  {{'0', '9'}, {'A', 'Z'}, {'a', 'z'}},
	"alpha":  {{'A', 'Z'}, {'a', 'z'}},
	"blank":  {{' ', ' '}, {'\t', '\t'}},
	"cntrl":  {{0x00, 0x1f}, {0x7f, 0x7f}},
	"digit":  {{'0', '9'}},
	"graph":  {{'!', '~'}},
	"lower":  {{'a', 'z'}},
	"print":  {{' ', '~'}},
	"punct":  {{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}},
	"space":  {{'\t', '\r'}, {' ', ' '}},
	"upper":  {{'A', 'Z'}},
	"xdigit": {{'0', '9'}, {'A', 'F'}, {'a', 'f'}},
}

// class is one parsed '[...]' expression.
type class struct {
	negated bool
	chars   []rune
	ranges  []runeRange
}

// parseClass reads the class body that follows a '[' and returns the number
// of bytes it spans, closing ']' included. A ']' right after the opening
// bracket (or its '!' / '^') is a member, and so is a '-' that cannot start a
// range.
func parseClass(s string) (class, int, error) {
	var c class
	i := 0
	if i < len(s) && (s[i] == '!' || s[i] == '^') {
		c.negated = true
		i++
	}

	for first := true; ; first = false {
		if i >= len(s) {
			return class{}, 0, errUnterminated
		}
		r, w := utf8.DecodeRuneInString(s[i:])
		if r == ']' && !first {
			return c, i + 1, nil
		}

		if r == '[' && strings.HasPrefix(s[i+1:], ":") {
			if end := strings.Index(s[i+2:], ":]"); end >= 0 {
				members, ok := posixClasses[s[i+2:i+2+end]]
				if !ok {
					return class{}, 0, errBadClassName
				}
				c.ranges = append(c.ranges, members...)
				i += 2 + end + 2
				continue
			}
		}

		r, w = unescape(s[i:], r, w)
		i += w

		if i+1 < len(s) && s[i] == '-' && s[i+1] != ']' {
			hi, hw := utf8.DecodeRuneInString(s[i+1:])
			hi, hw = unescape(s[i+1:], hi, hw)
			i += 1 + hw
			// A reversed range matches nothing.
			if hi >= r {
				c.ranges = append(c.ranges, runeRange{r, hi})
			}
			continue
		}
		c.chars = append(c.chars, r)
	}
}

// unescape resolves a backslash in front of the rune at the start of s.
func unescape(s string, r rune, w int) (rune, int) {
	if r != '\\' || w >= len(s) {
		return r, w
	}
	next, nw := utf8.DecodeRuneInString(s[w:])
	return next, w + nw
}

// gobwas renders the class in the subset of gobwas syntax it understands: a
// single range, a plain list, or an alternation of those. A negated class
// that mixes members is expanded into one negated list.
func (c class) gobwas() (string, error) {
	chars, ranges := c.chars, make([]runeRange, 0, len(c.ranges))
	for _, rr := range c.ranges {
		switch {
		case rr.lo == rr.hi:
			chars = append(chars, rr.lo)
		case rr.lo == '!' && !c.negated:
			// "[!-x]" would read as negation.
			chars = append(chars, '!')
			ranges = append(ranges, runeRange{'!' + 1, rr.hi})
		default:
			ranges = append(ranges, rr)
		}
	}

	if c.negated {
		return negatedList(chars, ranges)
	}

	terms := make([]string, 0, len(ranges)+1)
	for _, rr := range ranges {
		terms = append(terms, "["+string(rr.lo)+"-"+string(rr.hi)+"]")
	}
	if members := dedupe(chars); len(members) == 1 {
		terms = append(terms, escapeRune(members[0]))
	} else if len(members) > 1 {
		terms = append(terms, "["+escapedList(members)+"]")
	}

	switch len(terms) {
	case 0:
		return "", errEmptyClass
	case 1:
		return terms[0], nil
	default:
		return "{" + strings.Join(terms, ",") + "}", nil
	}
}

func negatedList(chars []rune, ranges []runeRange) (string, error) {
	if len(chars) == 0 && len(ranges) == 1 {
		return "[!" + string(ranges[0].lo) + "-" + string(ranges[0].hi) + "]", nil
	}

	members := chars
	for _, rr := range ranges {
		if len(members)+int(rr.hi-rr.lo)+1 > maxNegatedMembers {
			return "", errClassTooWide
		}
		for r := rr.lo; r <= rr.hi; r++ {
			members = append(members, r)
		}
	}
	members = dedupe(members)

	switch len(members) {
	case 0:
		// "[!]" with nothing inside cannot occur: the first ']' is a member.
		return "", errEmptyClass
	case 1:
		r := string(members[0])
		return "[!" + r + "-" + r + "]", nil
	default:
		return "[!" + escapedList(members) + "]", nil
	}
}

// escapedList writes members as escaped runes. A leading "\-" would be lexed
// as the start of a range, so '-' goes last.
func escapedList(members []rune) string {
	var b strings.Builder
	dash := false
	for _, r := range members {
		if r == '-' {
			dash = true
			continue
		}
		b.WriteString(escapeRune(r))
	}
	if dash {
		b.WriteString(`\-`)
	}
	return b.String()
}

func escapeRune(r rune) string {
	return `\` + string(r)
}

func dedupe(rs []rune) []rune {
	if len(rs) < 2 {
		return rs
	}
	out := append([]rune(nil), rs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	n := 1
	for _, r := range out[1:] {
		if r != out[n-1] {
			out[n] = r
			n++
		}
	}
	return out[:n]
}
