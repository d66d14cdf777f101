package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pilas/internal/console"
	"github.com/vovakirdan/tui-pilas/internal/core"
	"github.com/vovakirdan/tui-pilas/internal/shell"
)

// ansiColors maps core.Color to terminal colours. ColorDefault is absent:
// it leaves the terminal's own colour.
var ansiColors = map[core.Color]lipgloss.Color{
	core.ColorBlack:     lipgloss.Color("0"),
	core.ColorRed:       lipgloss.Color("1"),
	core.ColorGreen:     lipgloss.Color("2"),
	core.ColorYellow:    lipgloss.Color("3"),
	core.ColorBlue:      lipgloss.Color("4"),
	core.ColorMagenta:   lipgloss.Color("5"),
	core.ColorCyan:      lipgloss.Color("6"),
	core.ColorWhite:     lipgloss.Color("15"),
	core.ColorOrange:    lipgloss.Color("208"),
	core.ColorGray:      lipgloss.Color("245"),
	core.ColorLightGray: lipgloss.Color("252"),
}

// cellStyle is a comparable description of a lipgloss style, used to group
// runs of equally styled runes.
type cellStyle struct {
	fg, bg  string
	reverse bool
	bold    bool
}

func (c cellStyle) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.fg != "" {
		s = s.Foreground(lipgloss.Color(c.fg))
	}
	if c.bg != "" {
		s = s.Background(lipgloss.Color(c.bg))
	}
	if c.reverse {
		s = s.Reverse(true)
	}
	if c.bold {
		s = s.Bold(true)
	}
	return s
}

func colorCode(c core.Color) string {
	if lc, ok := ansiColors[c]; ok {
		return string(lc)
	}
	return ""
}

// renderRuns writes runes, grouping adjacent runes with the same style to
// minimize ANSI escape sequences.
func renderRuns(sb *strings.Builder, runes []rune, styles []cellStyle) {
	x := 0
	for x < len(runes) {
		start := styles[x]
		var run strings.Builder
		for x < len(runes) && styles[x] == start {
			run.WriteRune(runes[x])
			x++
		}
		if start == (cellStyle{}) {
			sb.WriteString(run.String())
			continue
		}
		sb.WriteString(start.style().Render(run.String()))
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// The screen background colours every cell.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	bg := colorCode(s.Background())
	runes := make([]rune, s.Width())
	styles := make([]cellStyle, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			runes[x] = cell.Rune
			styles[x] = cellStyle{fg: colorCode(cell.Color), bg: bg}
		}
		renderRuns(&sb, runes, styles)
	}
	return sb.String()
}

// tokenColors maps highlighter tokens to scheme names.
var tokenColors = map[console.TokenKind]string{
	console.TokenKeyword: console.ColorKeyword,
	console.TokenString:  console.ColorString,
	console.TokenNumber:  console.ColorNumber,
	console.TokenComment: console.ColorComment,
}

// styleLine colours one console line: the prompt, then the tokens of the
// text after it.
func styleLine(line []rune, prompt int, h *console.Highlighter, scheme console.Scheme) []cellStyle {
	styles := make([]cellStyle, len(line))
	for i := range prompt {
		styles[i] = cellStyle{fg: scheme.Get(console.ColorPrompt), bold: true}
	}

	i := prompt
	for _, tok := range h.Tokens(string(line[prompt:])) {
		fg := ""
		if name, ok := tokenColors[tok.Kind]; ok {
			fg = scheme.Get(name)
		}
		for range len([]rune(tok.Text)) {
			styles[i] = cellStyle{fg: fg}
			i++
		}
	}
	return styles
}

// promptLen returns the length of the prompt line starts with, or 0.
func promptLen(line string, prompts ...string) int {
	for _, p := range prompts {
		if p != "" && strings.HasPrefix(line, p) {
			return len([]rune(p))
		}
	}
	return 0
}

// RenderConsole draws the last height lines of the shell transcript,
// width cells wide. The current line gets the current-line background,
// the cursor, and the delimiter highlight.
func RenderConsole(sh *shell.Shell, width, height int, prompts ...string) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	lines := sh.Lines()
	curLine, curCol := sh.CursorLine()
	first := max(0, len(lines)-height)
	scheme := sh.Scheme()
	ed := sh.Editor()

	// absolute offset of the last line, for the delimiter match
	lastStart := len(sh.Surface().Runes()) - len([]rune(lines[len(lines)-1]))

	var sb strings.Builder
	for n := first; n < len(lines); n++ {
		if n > first {
			sb.WriteRune('\n')
		}
		line := []rune(lines[n])
		styles := styleLine(line, promptLen(lines[n], prompts...), sh.Highlighter(), scheme)

		if n == curLine {
			// pad so the cursor and the line background are visible
			for len(line) < width || len(line) <= curCol {
				line = append(line, ' ')
				styles = append(styles, cellStyle{})
			}
			bg := scheme.Get(console.ColorCurrentLine)
			for i := range styles {
				styles[i].bg = bg
			}
			if surf := sh.Surface(); surf.HasSelection() && n == len(lines)-1 {
				sel := scheme.Get(console.ColorSelection)
				for abs := min(surf.Anchor(), surf.Position()); abs < max(surf.Anchor(), surf.Position()); abs++ {
					if i := abs - lastStart; i >= 0 && i < len(styles) {
						styles[i].bg = sel
					}
				}
			}
			if m := ed.Match(); m.Active && n == len(lines)-1 {
				highlightBrace(styles, m, lastStart, scheme)
			}
			styles[curCol].reverse = true
		}

		// scroll long lines so the cursor stays visible
		offset := 0
		if n == curLine && curCol >= width {
			offset = curCol - width + 1
		}
		end := min(len(line), offset+width)
		renderRuns(&sb, line[offset:end], styles[offset:end])
	}

	// fill short transcripts from the top so the panel keeps its height
	if missing := height - (len(lines) - first); missing > 0 {
		return strings.Repeat("\n", missing) + sb.String()
	}
	return sb.String()
}

func highlightBrace(styles []cellStyle, m console.Match, lineStart int, scheme console.Scheme) {
	mark := func(abs int, s cellStyle) {
		if i := abs - lineStart; i >= 0 && i < len(styles) {
			styles[i] = s
		}
	}
	if !m.Matched() {
		mark(m.Pos, cellStyle{fg: scheme.Get(console.ColorBraceUnmatched), bg: styles[0].bg, bold: true})
		return
	}
	brace := cellStyle{
		fg:   scheme.Get(console.ColorBraceForeground),
		bg:   scheme.Get(console.ColorBraceBackground),
		bold: true,
	}
	mark(m.Pos, brace)
	mark(m.Partner, brace)
}
