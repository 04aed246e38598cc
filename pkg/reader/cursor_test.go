package reader

import (
	"errors"
	"testing"
)

func TestCursor_PeekNext(t *testing.T) {
	c := NewCursor("ab\nc", "test")

	want := []struct {
		ch  rune
		pos Position
	}{
		{'a', Position{1, 0}},
		{'b', Position{1, 1}},
		{'\n', Position{1, 2}},
		{'c', Position{2, 0}},
		{'\n', Position{2, 1}},
		{EOF, Position{3, 0}},
		{EOF, Position{3, 0}},
	}

	for i, w := range want {
		if got := c.Here(); got != w.pos {
			t.Errorf("step %d: Here() = %v, want %v", i, got, w.pos)
		}
		if got := c.Peek(); got != w.ch {
			t.Errorf("step %d: Peek() = %q, want %q", i, got, w.ch)
		}
		if got := c.Next(); got != w.ch {
			t.Errorf("step %d: Next() = %q, want %q", i, got, w.ch)
		}
	}
}

func TestCursor_EmptyLinesYieldNewlines(t *testing.T) {
	c := NewCursor("\n\nx", "test")
	var got []rune
	for ch := c.Next(); ch != EOF; ch = c.Next() {
		got = append(got, ch)
	}
	if string(got) != "\n\nx\n" {
		t.Errorf("got %q, want %q", string(got), "\n\nx\n")
	}
}

func TestCursor_NextN(t *testing.T) {
	c := NewCursor("abcd", "test")
	s, err := c.NextN(3)
	if err != nil {
		t.Fatalf("NextN(3) failed: %v", err)
	}
	if s != "abc" {
		t.Errorf("NextN(3) = %q, want %q", s, "abc")
	}

	// "d" and the synthetic newline remain
	_, err = c.NextN(5)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("NextN past end: got %v, want UnexpectedEOF", err)
	}
	var rerr *ReadError
	if !errors.As(err, &rerr) || rerr.Source != "test" {
		t.Errorf("error should carry the source id, got %#v", err)
	}
}

func TestCursor_MultibyteRunes(t *testing.T) {
	c := NewCursor("λx", "test")
	if ch := c.Next(); ch != 'λ' {
		t.Fatalf("Next() = %q, want 'λ'", ch)
	}
	if got := c.Here(); got != (Position{1, 1}) {
		t.Errorf("columns count runes: Here() = %v, want 1:1", got)
	}
}
