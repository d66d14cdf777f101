package console

import (
	"strings"

	"github.com/vovakirdan/tui-pilas/internal/core"
)

// Default prompts and indent.
const (
	DefaultPrompt       = ">>> "
	DefaultContinuation = "... "
	DefaultIndentWidth  = 4
)

// State is the submission state of the console.
type State int

const (
	// Ready waits for a new statement.
	Ready State = iota
	// Accumulating collects the lines of an unfinished statement.
	Accumulating
)

func (s State) String() string {
	if s == Accumulating {
		return "accumulating"
	}
	return "ready"
}

// Options configures an Editor.
type Options struct {
	Prompt       string
	Continuation string
	IndentWidth  int
	HistoryLimit int
	// Banner is written above the first prompt.
	Banner string
	// OnRecord is called for every command added to the history.
	OnRecord func(cmd string)
}

func (o Options) withDefaults() Options {
	if o.Prompt == "" {
		o.Prompt = DefaultPrompt
	}
	if o.Continuation == "" {
		o.Continuation = DefaultContinuation
	}
	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	return o
}

// Editor is the console's line editor. The editable text is always the
// last line of the surface, after the prompt; everything above it is
// earlier input and output.
type Editor struct {
	surface Surface
	eval    Evaluator
	history *History
	opts    Options
	prompt  string
	state   State
	match   Match
}

// NewEditor writes the banner and first prompt to surface and returns an
// editor submitting lines to eval.
func NewEditor(surface Surface, eval Evaluator, opts Options) *Editor {
	opts = opts.withDefaults()
	e := &Editor{
		surface: surface,
		eval:    eval,
		history: NewHistory(opts.HistoryLimit),
		opts:    opts,
		prompt:  opts.Prompt,
	}
	surface.Move(End, false)
	if opts.Banner != "" {
		surface.Insert(strings.TrimRight(opts.Banner, "\n"))
	}
	if surface.Text() != "" {
		surface.Insert("\n")
	}
	surface.Insert(e.prompt)
	return e
}

// HandleKey applies one key press.
func (e *Editor) HandleKey(ev core.KeyEvent) {
	defer e.refreshMatch()

	if ev.Code == core.KeyEnter {
		e.submit()
		return
	}
	if e.Column() < 0 {
		e.SetColumn(0)
	}

	switch ev.Code {
	case core.KeyTab:
		e.surface.Insert(strings.Repeat(" ", e.opts.IndentWidth))
	case core.KeyHome:
		e.SetColumn(0)
	case core.KeyEnd:
		e.surface.Move(EndOfLine, ev.Shift)
	case core.KeyPageUp, core.KeyPageDown:
	case core.KeyLeft:
		if e.Column() > 0 {
			e.surface.Move(Left, ev.Shift)
		}
	case core.KeyRight:
		if e.rightRune() != 0 {
			e.surface.Move(Right, ev.Shift)
		}
	case core.KeyBackspace:
		e.backspace()
	case core.KeyDelete:
		if !e.surface.HasSelection() && e.rightRune() != 0 {
			e.surface.Move(Right, true)
		}
		e.surface.DeleteSelection()
	case core.KeyUp:
		e.setCommand(e.history.Previous())
	case core.KeyDown:
		e.setCommand(e.history.Next())
	default:
		if ev.Printable() {
			e.typeRune(ev.Rune)
		}
	}
}

// Cancel drops an unfinished statement and starts over on a fresh prompt.
func (e *Editor) Cancel() {
	if r, ok := e.eval.(Resetter); ok {
		r.Reset()
	}
	e.newPrompt(false)
	e.refreshMatch()
}

// CurrentCommand returns the text typed after the prompt on the last line.
func (e *Editor) CurrentCommand() string {
	text := e.surface.Text()
	line := []rune(text[strings.LastIndexByte(text, '\n')+1:])
	n := len([]rune(e.prompt))
	if len(line) <= n {
		return ""
	}
	return string(line[n:])
}

// Column returns the cursor column relative to the end of the prompt.
func (e *Editor) Column() int {
	return e.surface.Column() - len([]rune(e.prompt))
}

// SetColumn moves the cursor to col runes after the prompt.
func (e *Editor) SetColumn(col int) {
	e.surface.Move(StartOfLine, false)
	for range len([]rune(e.prompt)) + col {
		e.surface.Move(Right, false)
	}
}

// State returns the submission state.
func (e *Editor) State() State {
	return e.state
}

// Prompt returns the prompt of the line being edited.
func (e *Editor) Prompt() string {
	return e.prompt
}

// Match returns the delimiter highlight for the current cursor.
func (e *Editor) Match() Match {
	return e.match
}

// History returns the command history.
func (e *Editor) History() *History {
	return e.history
}

// Surface returns the surface being edited.
func (e *Editor) Surface() Surface {
	return e.surface
}

func (e *Editor) submit() {
	cmd := e.CurrentCommand()
	if e.history.Record(cmd) && e.opts.OnRecord != nil {
		e.opts.OnRecord(cmd)
	}

	res := e.eval.Push(cmd)
	if !res.Incomplete && res.HasOutput {
		e.appendLine(strings.TrimRight(res.Output, "\n"))
	}
	e.newPrompt(res.Incomplete)
}

func (e *Editor) newPrompt(incomplete bool) {
	if incomplete {
		e.state = Accumulating
		e.prompt = e.opts.Continuation
	} else {
		e.state = Ready
		e.prompt = e.opts.Prompt
	}
	e.appendLine(e.prompt)
}

func (e *Editor) appendLine(text string) {
	e.surface.Move(End, false)
	e.surface.Insert("\n" + text)
}

// setCommand replaces everything after the prompt with cmd.
func (e *Editor) setCommand(cmd string) {
	e.surface.Move(End, false)
	e.surface.Move(StartOfLine, true)
	for range len([]rune(e.prompt)) {
		e.surface.Move(Right, true)
	}
	e.surface.DeleteSelection()
	e.surface.Insert(cmd)
	e.surface.Move(End, false)
}

func (e *Editor) backspace() {
	if e.surface.HasSelection() {
		e.surface.DeleteSelection()
		return
	}
	col := e.Column()
	if col <= 0 {
		return
	}

	// A full indent of spaces goes in one keystroke.
	if w := e.opts.IndentWidth; col >= w {
		for range w {
			e.surface.Move(Left, true)
		}
		if e.surface.SelectedText() == strings.Repeat(" ", w) {
			e.surface.DeleteSelection()
			return
		}
		for range w {
			e.surface.Move(Right, false)
		}
	}
	e.surface.Move(Left, true)
	e.surface.DeleteSelection()
}

func (e *Editor) typeRune(r rune) {
	if IsCloser(r) {
		if c, ok := pairs[e.leftRune()]; ok && c == r && e.rightRune() == r {
			e.surface.Move(Right, false)
			return
		}
	}

	selection := e.surface.SelectedText()
	e.surface.Insert(string(r))
	if closer, ok := pairs[r]; ok {
		e.surface.Insert(string(closer))
		e.surface.Move(Left, false)
		if selection != "" {
			e.surface.Insert(selection)
		}
	}
}

// leftRune returns the rune before the cursor, or 0 at the prompt.
func (e *Editor) leftRune() rune {
	if e.Column() <= 0 {
		return 0
	}
	text := []rune(e.surface.Text())
	return text[e.surface.Position()-1]
}

// rightRune returns the rune under the cursor, or 0 at the end of the line.
func (e *Editor) rightRune() rune {
	text := []rune(e.surface.Text())
	pos := e.surface.Position()
	if pos >= len(text) || text[pos] == '\n' {
		return 0
	}
	return text[pos]
}

// refreshMatch recomputes the highlight over the editable part of the
// current line.
func (e *Editor) refreshMatch() {
	text := []rune(e.surface.Text())
	pos := e.surface.Position()
	start := pos - e.surface.Column() + len([]rune(e.prompt))
	if pos < start || start > len(text) {
		e.match = Match{}
		return
	}
	end := start
	for end < len(text) && text[end] != '\n' {
		end++
	}
	e.match = MatchAt(text[start:end], pos-start).Shift(start)
}
