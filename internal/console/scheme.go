package console

import (
	"strings"
	"unicode"
)

// Scheme maps symbolic highlight names to colours. Colours are strings the
// host understands (ANSI codes or #rrggbb in the terminal binding).
type Scheme map[string]string

// Highlight names understood by the console hosts.
const (
	ColorCurrentLine     = "current-line"
	ColorBraceForeground = "brace-foreground"
	ColorBraceBackground = "brace-background"
	ColorBraceUnmatched  = "brace-unmatched"
	ColorPrompt          = "prompt"
	ColorKeyword         = "keyword"
	ColorString          = "string"
	ColorNumber          = "number"
	ColorComment         = "comment"
	ColorSelection       = "selection"
)

// DefaultScheme returns the built-in colours.
func DefaultScheme() Scheme {
	return Scheme{
		ColorCurrentLine:     "#2a2a3a",
		ColorBraceForeground: "#ff0000",
		ColorBraceBackground: "#ffff00",
		ColorBraceUnmatched:  "#ff5f5f",
		ColorPrompt:          "#5f87d7",
		ColorKeyword:         "#00afaf",
		ColorString:          "#87af00",
		ColorNumber:          "#d78700",
		ColorComment:         "#808080",
		ColorSelection:       "#437dcd",
	}
}

// Get returns the colour for name, falling back to the default scheme.
func (s Scheme) Get(name string) string {
	if c, ok := s[name]; ok && c != "" {
		return c
	}
	return DefaultScheme()[name]
}

// Merge returns a copy of s with every entry of other applied on top.
func (s Scheme) Merge(other map[string]string) Scheme {
	out := make(Scheme, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// TokenKind classifies a run of console text for syntax colouring.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenKeyword
	TokenString
	TokenNumber
	TokenComment
	TokenDelimiter
)

// Token is a run of text of one kind.
type Token struct {
	Kind TokenKind
	Text string
}

// Highlighter splits lines into tokens for a fixed keyword set.
type Highlighter struct {
	keywords map[string]bool
}

// NewHighlighter creates a highlighter for the given keywords.
func NewHighlighter(keywords []string) *Highlighter {
	h := &Highlighter{keywords: make(map[string]bool, len(keywords))}
	for _, k := range keywords {
		h.keywords[k] = true
	}
	return h
}

// Tokens splits line into tokens. Concatenating their text yields line.
// An unterminated string runs to the end of the line.
func (h *Highlighter) Tokens(line string) []Token {
	runes := []rune(line)
	var out []Token
	emit := func(kind TokenKind, from, to int) {
		if from < to {
			out = append(out, Token{Kind: kind, Text: string(runes[from:to])})
		}
	}

	plain := 0
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '#':
			emit(TokenPlain, plain, i)
			emit(TokenComment, i, len(runes))
			return out
		case IsQuote(r):
			emit(TokenPlain, plain, i)
			j := i + 1
			for j < len(runes) && runes[j] != r {
				j++
			}
			if j < len(runes) {
				j++
			}
			emit(TokenString, i, j)
			i, plain = j, j
		case IsOpener(r) || IsCloser(r):
			emit(TokenPlain, plain, i)
			emit(TokenDelimiter, i, i+1)
			i++
			plain = i
		case isWordRune(r) && (i == 0 || !isWordRune(runes[i-1])):
			j := i
			for j < len(runes) && (isWordRune(runes[j]) || runes[j] == '.') {
				j++
			}
			word := string(runes[i:j])
			switch {
			case h.keywords[word]:
				emit(TokenPlain, plain, i)
				emit(TokenKeyword, i, j)
				plain = j
			case isNumber(word):
				emit(TokenPlain, plain, i)
				emit(TokenNumber, i, j)
				plain = j
			}
			i = j
		default:
			i++
		}
	}
	emit(TokenPlain, plain, len(runes))
	return out
}

func isNumber(word string) bool {
	dot := false
	for i, r := range word {
		switch {
		case r == '.' && !dot && i > 0:
			dot = true
		case !unicode.IsDigit(r):
			return false
		}
	}
	return !strings.HasSuffix(word, ".")
}
