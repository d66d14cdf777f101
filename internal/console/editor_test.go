package console

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pilas/internal/core"
)

// blockEvaluator treats a line ending in ':' as opening a block that a
// blank line closes, and echoes the collected lines back.
type blockEvaluator struct {
	lines []string
	reset int
}

func (b *blockEvaluator) Push(line string) Result {
	b.lines = append(b.lines, line)
	if strings.HasSuffix(b.lines[0], ":") && line != "" {
		return Result{Incomplete: true}
	}
	out := strings.Join(strings.Fields(strings.Join(b.lines, " ")), " ")
	b.lines = nil
	if out == "" {
		return Result{}
	}
	return Output("ran " + out)
}

func (b *blockEvaluator) Reset() {
	b.lines = nil
	b.reset++
}

func newTestEditor(t *testing.T) (*Editor, *TextSurface, *blockEvaluator) {
	t.Helper()
	s := NewTextSurface("")
	ev := &blockEvaluator{}
	return NewEditor(s, ev, Options{}), s, ev
}

func typeText(e *Editor, text string) {
	for _, r := range text {
		e.HandleKey(core.RuneKey(r))
	}
}

func press(e *Editor, code core.KeyCode) {
	e.HandleKey(core.KeyEvent{Code: code})
}

func TestEditorStartsWithPrompt(t *testing.T) {
	e, s, _ := newTestEditor(t)
	if s.Text() != ">>> " {
		t.Errorf("Text() = %q, expected prompt", s.Text())
	}
	if e.Column() != 0 || e.State() != Ready {
		t.Errorf("Column() = %d, State() = %v", e.Column(), e.State())
	}
}

func TestEditorBanner(t *testing.T) {
	s := NewTextSurface("")
	NewEditor(s, &blockEvaluator{}, Options{Banner: "pilas 0.3\n"})
	if s.Text() != "pilas 0.3\n>>> " {
		t.Errorf("Text() = %q", s.Text())
	}
}

func TestEditorAutoClose(t *testing.T) {
	e, s, _ := newTestEditor(t)

	typeText(e, "(")
	if s.Text() != ">>> ()" || e.Column() != 1 {
		t.Fatalf("after '(': text %q column %d", s.Text(), e.Column())
	}

	typeText(e, ")")
	if s.Text() != ">>> ()" {
		t.Errorf("typing ')' should step over the closer, text %q", s.Text())
	}
	if e.Column() != 2 {
		t.Errorf("Column() = %d, expected 2", e.Column())
	}
}

func TestEditorAutoCloseEveryPair(t *testing.T) {
	for open, close := range pairs {
		e, s, _ := newTestEditor(t)
		typeText(e, string(open)+string(close))
		want := ">>> " + string(open) + string(close)
		if s.Text() != want {
			t.Errorf("typing %q%q gave %q, expected %q", open, close, s.Text(), want)
		}
	}
}

func TestEditorNoTypeThroughAfterContent(t *testing.T) {
	e, s, _ := newTestEditor(t)
	typeText(e, "(a)")
	if s.Text() != ">>> (a))" {
		t.Errorf("Text() = %q, expected a second closer", s.Text())
	}
}

func TestEditorWrapsSelection(t *testing.T) {
	e, s, _ := newTestEditor(t)
	typeText(e, "abc")
	press(e, core.KeyHome)
	e.HandleKey(core.KeyEvent{Code: core.KeyEnd, Shift: true})

	typeText(e, "[")
	if s.Text() != ">>> [abc]" {
		t.Errorf("Text() = %q, expected selection wrapped", s.Text())
	}
}

func TestEditorMatchFollowsCursor(t *testing.T) {
	e, _, _ := newTestEditor(t)
	typeText(e, "(")
	if m := e.Match(); !m.Matched() || m.Pos != 4 || m.Partner != 5 {
		t.Errorf("Match() = %+v, expected 4 -> 5", m)
	}

	typeText(e, ")")
	if m := e.Match(); !m.Matched() || m.Pos != 5 || m.Partner != 4 {
		t.Errorf("Match() = %+v, expected 5 -> 4", m)
	}

	press(e, core.KeyBackspace)
	press(e, core.KeyBackspace)
	typeText(e, "x")
	if e.Match().Active {
		t.Errorf("Match() = %+v, expected no highlight", e.Match())
	}
}

func TestEditorMatchUnmatched(t *testing.T) {
	e, s, _ := newTestEditor(t)
	typeText(e, "a)")
	if s.Text() != ">>> a)" {
		t.Fatalf("Text() = %q", s.Text())
	}
	m := e.Match()
	if !m.Active || m.Matched() || m.Pos != 5 {
		t.Errorf("Match() = %+v, expected unmatched closer at 5", m)
	}
}

func TestEditorMatchIgnoresEarlierLines(t *testing.T) {
	e, _, _ := newTestEditor(t)
	typeText(e, "(")
	press(e, core.KeyDelete)
	press(e, core.KeyEnter)

	typeText(e, ")")
	m := e.Match()
	if !m.Active || m.Matched() {
		t.Errorf("Match() = %+v, closer should not pair with a previous line", m)
	}
}

func TestEditorLeftAndBackspaceStopAtPrompt(t *testing.T) {
	e, s, _ := newTestEditor(t)
	typeText(e, "ab")
	for range 5 {
		press(e, core.KeyLeft)
	}
	if e.Column() != 0 {
		t.Errorf("Column() = %d, expected 0", e.Column())
	}
	press(e, core.KeyBackspace)
	if s.Text() != ">>> ab" {
		t.Errorf("Backspace at column 0 changed text to %q", s.Text())
	}

	press(e, core.KeyEnd)
	for range 5 {
		press(e, core.KeyBackspace)
	}
	if s.Text() != ">>> " {
		t.Errorf("Text() = %q, expected bare prompt", s.Text())
	}
}

func TestEditorTabAndBackspaceIndent(t *testing.T) {
	e, s, _ := newTestEditor(t)
	press(e, core.KeyTab)
	if s.Text() != ">>>     " {
		t.Fatalf("Tab gave %q", s.Text())
	}
	press(e, core.KeyBackspace)
	if s.Text() != ">>> " {
		t.Errorf("Backspace after Tab gave %q, expected the indent removed", s.Text())
	}

	typeText(e, "ab  ")
	press(e, core.KeyBackspace)
	if s.Text() != ">>> ab " {
		t.Errorf("Backspace over mixed text gave %q, expected one rune removed", s.Text())
	}
}

func TestEditorHomeAndRight(t *testing.T) {
	e, s, _ := newTestEditor(t)
	typeText(e, "ct")
	press(e, core.KeyHome)
	if e.Column() != 0 {
		t.Fatalf("Column() after Home = %d", e.Column())
	}
	press(e, core.KeyRight)
	typeText(e, "a")
	if s.Text() != ">>> cat" {
		t.Errorf("Text() = %q, expected cat", s.Text())
	}
	press(e, core.KeyRight)
	press(e, core.KeyRight)
	if e.Column() != 3 {
		t.Errorf("Right should stop at end of line, Column() = %d", e.Column())
	}
}

func TestEditorPageKeysAreIgnored(t *testing.T) {
	e, s, _ := newTestEditor(t)
	typeText(e, "x")
	press(e, core.KeyEnter)
	typeText(e, "ab")
	press(e, core.KeyLeft)

	text, col, idx := s.Text(), e.Column(), e.History().Index()
	for _, code := range []core.KeyCode{core.KeyPageUp, core.KeyPageDown} {
		press(e, code)
		if s.Text() != text || e.Column() != col || e.History().Index() != idx {
			t.Errorf("%v changed state: Text() = %q, Column() = %d, Index() = %d, expected %q, %d, %d",
				code, s.Text(), e.Column(), e.History().Index(), text, col, idx)
		}
	}
	if col != 1 {
		t.Errorf("Column() = %d, expected 1", col)
	}
}

func TestEditorDelete(t *testing.T) {
	e, s, _ := newTestEditor(t)
	typeText(e, "abc")
	press(e, core.KeyHome)
	press(e, core.KeyDelete)
	if s.Text() != ">>> bc" {
		t.Errorf("Delete gave %q", s.Text())
	}
	press(e, core.KeyEnd)
	press(e, core.KeyDelete)
	if s.Text() != ">>> bc" {
		t.Errorf("Delete at end gave %q", s.Text())
	}
}

func TestEditorSubmitShowsOutput(t *testing.T) {
	e, s, _ := newTestEditor(t)
	typeText(e, "hello")
	press(e, core.KeyEnter)

	if s.Text() != ">>> hello\nran hello\n>>> " {
		t.Errorf("Text() = %q", s.Text())
	}
	if e.State() != Ready || e.CurrentCommand() != "" {
		t.Errorf("State() = %v, CurrentCommand() = %q", e.State(), e.CurrentCommand())
	}
}

func TestEditorBlockAccumulates(t *testing.T) {
	e, s, _ := newTestEditor(t)

	typeText(e, "repeat 2:")
	press(e, core.KeyEnter)
	if e.State() != Accumulating || e.Prompt() != "... " {
		t.Fatalf("State() = %v, Prompt() = %q", e.State(), e.Prompt())
	}

	typeText(e, "  say hi")
	press(e, core.KeyEnter)
	if e.State() != Accumulating {
		t.Fatalf("body line should keep accumulating, State() = %v", e.State())
	}

	press(e, core.KeyEnter)
	if e.State() != Ready || e.Prompt() != ">>> " {
		t.Errorf("State() = %v, Prompt() = %q", e.State(), e.Prompt())
	}
	want := ">>> repeat 2:\n...   say hi\n... \nran repeat 2: say hi\n>>> "
	if s.Text() != want {
		t.Errorf("Text() = %q, expected %q", s.Text(), want)
	}
}

func TestEditorCancel(t *testing.T) {
	e, s, ev := newTestEditor(t)
	typeText(e, "repeat 2:")
	press(e, core.KeyEnter)

	e.Cancel()
	if e.State() != Ready || ev.reset != 1 || len(ev.lines) != 0 {
		t.Errorf("State() = %v, resets = %d, buffered = %v", e.State(), ev.reset, ev.lines)
	}
	if !strings.HasSuffix(s.Text(), "\n>>> ") {
		t.Errorf("Text() = %q, expected a fresh prompt", s.Text())
	}
}

func TestEditorHistoryKeys(t *testing.T) {
	var recorded []string
	s := NewTextSurface("")
	e := NewEditor(s, &blockEvaluator{}, Options{OnRecord: func(c string) { recorded = append(recorded, c) }})

	for _, cmd := range []string{"a", "a", "b"} {
		typeText(e, cmd)
		press(e, core.KeyEnter)
	}
	if got := e.History().Entries(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("History = %v, expected [a b]", got)
	}
	if !reflect.DeepEqual(recorded, []string{"a", "b"}) {
		t.Errorf("OnRecord saw %v", recorded)
	}

	typeText(e, "draft")
	press(e, core.KeyUp)
	if e.CurrentCommand() != "b" {
		t.Errorf("Up gave %q, expected b", e.CurrentCommand())
	}
	press(e, core.KeyUp)
	if e.CurrentCommand() != "a" {
		t.Errorf("Up gave %q, expected a", e.CurrentCommand())
	}
	press(e, core.KeyDown)
	if e.CurrentCommand() != "b" {
		t.Errorf("Down gave %q, expected b", e.CurrentCommand())
	}
	press(e, core.KeyDown)
	if e.CurrentCommand() != "" {
		t.Errorf("Down past the end gave %q, expected empty", e.CurrentCommand())
	}
	if !strings.HasSuffix(s.Text(), "\n>>> ") {
		t.Errorf("prompt was not preserved: %q", s.Text())
	}
}
