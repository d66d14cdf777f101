package script

import (
	"fmt"
	"strings"

	"github.com/anmitsu/go-shlex"

	"github.com/vovakirdan/tui-pilas/internal/console"
)

// statement is one command line plus the indented block it opens.
type statement struct {
	line  int // 1-based
	words []string
	block bool // header ended in ':'
	body  []statement
}

// Incomplete reports whether src needs more lines: a delimiter or quote is
// still open, or a block was opened and no blank line has closed it.
func Incomplete(src string) bool {
	if openDelimiters(src) {
		return true
	}

	lines := strings.Split(src, "\n")
	opened := false
	for _, l := range lines {
		if opensBlock(strings.TrimSpace(stripComment(l))) {
			opened = true
			break
		}
	}
	return opened && strings.TrimSpace(lines[len(lines)-1]) != ""
}

// blockKeywords are the commands whose header line takes an indented body.
var blockKeywords = map[string]bool{"repeat": true, "if": true}

// opensBlock reports whether a comment-free line is a block header.
func opensBlock(text string) bool {
	if !strings.HasSuffix(text, ":") {
		return false
	}
	fields := strings.Fields(strings.TrimSuffix(text, ":"))
	return len(fields) > 0 && blockKeywords[fields[0]]
}

// openDelimiters reports whether brackets or quotes are left open.
// Stray closers do not count; they are reported when the line runs.
func openDelimiters(src string) bool {
	var stack []rune
	var quote rune
	comment := false
	for _, r := range src {
		switch {
		case r == '\n' && quote == 0:
			comment = false
		case comment:
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case console.IsQuote(r):
			quote = r
		case r == '#':
			comment = true
		case console.IsOpener(r):
			closer, _ := console.Closer(r)
			stack = append(stack, closer)
		case console.IsCloser(r):
			if len(stack) > 0 && stack[len(stack)-1] == r {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return quote != 0 || len(stack) > 0
}

// stripComment removes '#' comments that are not inside quotes. A comment
// ends at the end of its line.
func stripComment(src string) string {
	var sb strings.Builder
	var quote rune
	comment := false
	for _, r := range src {
		switch {
		case r == '\n' && quote == 0:
			comment = false
		case comment:
			continue
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			comment = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// indentOf counts leading spaces, tabs counting as four.
func indentOf(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

type sourceLine struct {
	num    int
	indent int
	text   string
}

// parse splits src into statements, nesting indented lines under the
// block header before them. Lines inside open delimiters are joined into
// one logical line.
func parse(src string) ([]statement, error) {
	var lines []sourceLine
	var logical string
	start := 0
	for i, raw := range strings.Split(src, "\n") {
		if logical == "" {
			start = i
			logical = raw
		} else {
			logical += "\n" + raw
		}
		if openDelimiters(logical) {
			continue
		}

		text := strings.TrimSpace(stripComment(logical))
		indent := indentOf(logical)
		logical = ""
		if text == "" {
			continue
		}
		lines = append(lines, sourceLine{num: start + 1, indent: indent, text: text})
	}
	if logical != "" {
		return nil, fmt.Errorf("line %d: unclosed delimiter", start+1)
	}

	stmts, rest, err := parseBlock(lines, 0)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("line %d: unexpected indent", rest[0].num)
	}
	return stmts, nil
}

func parseBlock(lines []sourceLine, indent int) ([]statement, []sourceLine, error) {
	var stmts []statement
	for len(lines) > 0 {
		l := lines[0]
		if l.indent < indent {
			break
		}
		if l.indent > indent {
			return nil, nil, fmt.Errorf("line %d: unexpected indent", l.num)
		}
		lines = lines[1:]

		text := l.text
		block := strings.HasSuffix(text, ":")
		if block {
			text = strings.TrimSpace(strings.TrimSuffix(text, ":"))
		}

		words, err := shlex.Split(text, true)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", l.num, err)
		}
		st := statement{line: l.num, words: words, block: block}

		// Other commands ending in ':' reach execBlock, which rejects them.
		hasBody := len(lines) > 0 && lines[0].indent > indent
		if block && !hasBody && opensBlock(l.text) {
			return nil, nil, fmt.Errorf("line %d: expected an indented block", l.num)
		}
		if block && hasBody {
			body, rest, err := parseBlock(lines, lines[0].indent)
			if err != nil {
				return nil, nil, err
			}
			st.body = body
			lines = rest
		}
		stmts = append(stmts, st)
	}
	return stmts, lines, nil
}
