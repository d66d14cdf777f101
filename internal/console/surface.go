package console

import "unicode"

// Direction is a cursor movement understood by a Surface.
type Direction int

const (
	Left Direction = iota
	Right
	StartOfLine
	EndOfLine
	Start
	End
	WordRight
)

// Surface is the text area the editor drives. Positions are rune offsets
// into the whole text. Moving with keepSelection extends the selection
// from its anchor, otherwise the selection collapses onto the cursor.
type Surface interface {
	Move(dir Direction, keepSelection bool)
	// Insert replaces the selection, if any, with text and leaves the
	// cursor after it.
	Insert(text string)
	DeleteSelection()
	Position() int
	SelectedText() string
	HasSelection() bool
	// Column is the cursor's offset from the start of its line.
	Column() int
	Text() string
}

// TextSurface is an in-memory Surface.
type TextSurface struct {
	text   []rune
	cursor int
	anchor int
}

// NewTextSurface creates a surface holding initial, cursor at the end.
func NewTextSurface(initial string) *TextSurface {
	s := &TextSurface{text: []rune(initial)}
	s.cursor = len(s.text)
	s.anchor = s.cursor
	return s
}

func (s *TextSurface) Move(dir Direction, keepSelection bool) {
	switch dir {
	case Left:
		if s.cursor > 0 {
			s.cursor--
		}
	case Right:
		if s.cursor < len(s.text) {
			s.cursor++
		}
	case StartOfLine:
		s.cursor = s.lineStart(s.cursor)
	case EndOfLine:
		s.cursor = s.lineEnd(s.cursor)
	case Start:
		s.cursor = 0
	case End:
		s.cursor = len(s.text)
	case WordRight:
		end := s.lineEnd(s.cursor)
		for s.cursor < end && isWordRune(s.text[s.cursor]) {
			s.cursor++
		}
		for s.cursor < end && !isWordRune(s.text[s.cursor]) {
			s.cursor++
		}
	}
	if !keepSelection {
		s.anchor = s.cursor
	}
}

func (s *TextSurface) Insert(text string) {
	s.DeleteSelection()
	ins := []rune(text)
	out := make([]rune, 0, len(s.text)+len(ins))
	out = append(out, s.text[:s.cursor]...)
	out = append(out, ins...)
	out = append(out, s.text[s.cursor:]...)
	s.text = out
	s.cursor += len(ins)
	s.anchor = s.cursor
}

func (s *TextSurface) DeleteSelection() {
	lo, hi := s.selection()
	if lo == hi {
		return
	}
	s.text = append(s.text[:lo:lo], s.text[hi:]...)
	s.cursor = lo
	s.anchor = lo
}

func (s *TextSurface) Position() int {
	return s.cursor
}

// Anchor returns the fixed end of the selection.
func (s *TextSurface) Anchor() int {
	return s.anchor
}

func (s *TextSurface) SelectedText() string {
	lo, hi := s.selection()
	return string(s.text[lo:hi])
}

func (s *TextSurface) HasSelection() bool {
	return s.cursor != s.anchor
}

func (s *TextSurface) Column() int {
	return s.cursor - s.lineStart(s.cursor)
}

func (s *TextSurface) Text() string {
	return string(s.text)
}

// Runes returns the text as runes. The slice must not be modified.
func (s *TextSurface) Runes() []rune {
	return s.text
}

func (s *TextSurface) selection() (int, int) {
	if s.anchor < s.cursor {
		return s.anchor, s.cursor
	}
	return s.cursor, s.anchor
}

func (s *TextSurface) lineStart(pos int) int {
	for pos > 0 && s.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (s *TextSurface) lineEnd(pos int) int {
	for pos < len(s.text) && s.text[pos] != '\n' {
		pos++
	}
	return pos
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
