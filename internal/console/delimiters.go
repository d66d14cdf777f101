// Package console implements the interactive source console: a REPL line
// editor that auto-closes delimiters, highlights the matching delimiter
// under the cursor and keeps a command history. It edits through the
// Surface interface so any UI can host it.
package console

// pairs maps every opening delimiter to its closer. Quotes pair with
// themselves.
var pairs = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'\'': '\'',
	'"':  '"',
}

// openers maps bracket closers back to their openers.
var openers = map[rune]rune{
	')': '(',
	']': '[',
	'}': '{',
}

// Closer returns the closing delimiter for an opener.
func Closer(open rune) (rune, bool) {
	c, ok := pairs[open]
	return c, ok
}

// IsQuote reports whether r is a self-pairing delimiter.
func IsQuote(r rune) bool {
	return r == '\'' || r == '"'
}

// IsOpener reports whether r opens a delimiter pair.
func IsOpener(r rune) bool {
	_, ok := pairs[r]
	return ok
}

// IsCloser reports whether r closes a delimiter pair.
func IsCloser(r rune) bool {
	_, ok := openers[r]
	return ok || IsQuote(r)
}

// MatchDelimiter finds the partner of the delimiter at text[pos].
// Forward searches text after pos for the closer, backward searches text
// before pos for the opener. Nested pairs of the same kind are skipped.
// Quotes pair with the nearest same quote in the search direction.
func MatchDelimiter(text []rune, pos int, forward bool) (int, bool) {
	if pos < 0 || pos >= len(text) {
		return -1, false
	}
	delim := text[pos]

	if IsQuote(delim) {
		if forward {
			for i := pos + 1; i < len(text); i++ {
				if text[i] == delim {
					return i, true
				}
			}
		} else {
			for i := pos - 1; i >= 0; i-- {
				if text[i] == delim {
					return i, true
				}
			}
		}
		return -1, false
	}

	var partner rune
	if forward {
		c, ok := pairs[delim]
		if !ok {
			return -1, false
		}
		partner = c
	} else {
		o, ok := openers[delim]
		if !ok {
			return -1, false
		}
		partner = o
	}

	depth := 1
	step := 1
	if !forward {
		step = -1
	}
	for i := pos + step; i >= 0 && i < len(text); i += step {
		switch text[i] {
		case delim:
			depth++
		case partner:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// Match is the delimiter highlight for a cursor position.
type Match struct {
	Active  bool // a bracket sits left of the cursor
	Pos     int  // index of that bracket
	Partner int  // index of its partner, -1 when unmatched
}

// Matched reports whether both ends of the pair were found.
func (m Match) Matched() bool {
	return m.Active && m.Partner >= 0
}

// Shift moves both positions by offset, leaving -1 partners alone.
func (m Match) Shift(offset int) Match {
	if !m.Active {
		return m
	}
	m.Pos += offset
	if m.Partner >= 0 {
		m.Partner += offset
	}
	return m
}

// MatchAt computes the highlight for a cursor sitting at index cursor of
// text. Only the rune immediately left of the cursor is considered: a
// closing bracket searches back towards the start, an opening bracket
// searches forward to the end. An unpartnered bracket is still reported
// so it can be marked. Quotes are ambiguous under the cursor and are not
// highlighted.
func MatchAt(text []rune, cursor int) Match {
	if cursor <= 0 || cursor > len(text) {
		return Match{}
	}
	pos := cursor - 1
	r := text[pos]

	var forward bool
	switch {
	case r == '(' || r == '[' || r == '{':
		forward = true
	case openers[r] != 0:
		forward = false
	default:
		return Match{}
	}

	partner, ok := MatchDelimiter(text, pos, forward)
	if !ok {
		partner = -1
	}
	return Match{Active: true, Pos: pos, Partner: partner}
}
