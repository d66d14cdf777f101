package console

import "testing"

func TestTextSurfaceSelection(t *testing.T) {
	s := NewTextSurface("hello world")
	s.Move(StartOfLine, false)
	for range 5 {
		s.Move(Right, true)
	}
	if s.SelectedText() != "hello" || !s.HasSelection() {
		t.Fatalf("SelectedText() = %q", s.SelectedText())
	}

	s.Insert("bye")
	if s.Text() != "bye world" || s.Position() != 3 || s.HasSelection() {
		t.Errorf("Text() = %q, Position() = %d", s.Text(), s.Position())
	}
}

func TestTextSurfaceLines(t *testing.T) {
	s := NewTextSurface("one\ntwo")
	if s.Column() != 3 {
		t.Errorf("Column() = %d, expected 3", s.Column())
	}

	s.Move(StartOfLine, false)
	if s.Position() != 4 || s.Column() != 0 {
		t.Errorf("StartOfLine: Position() = %d, Column() = %d", s.Position(), s.Column())
	}
	s.Move(Left, false)
	s.Move(StartOfLine, false)
	if s.Position() != 0 {
		t.Errorf("StartOfLine on first line = %d", s.Position())
	}
	s.Move(EndOfLine, false)
	if s.Position() != 3 {
		t.Errorf("EndOfLine = %d, expected 3", s.Position())
	}
}

func TestTextSurfaceWordRight(t *testing.T) {
	s := NewTextSurface("add ship 3")
	s.Move(Start, false)
	s.Move(WordRight, false)
	if s.Position() != 4 {
		t.Errorf("WordRight = %d, expected 4", s.Position())
	}
}

func TestTextSurfaceDeleteBackwardSelection(t *testing.T) {
	s := NewTextSurface("abcdef")
	s.Move(Left, true)
	s.Move(Left, true)
	s.DeleteSelection()
	if s.Text() != "abcd" || s.Position() != 4 {
		t.Errorf("Text() = %q, Position() = %d", s.Text(), s.Position())
	}
}
