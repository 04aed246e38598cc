package reader

import (
	"fmt"
	"strings"
)

// EOF is returned by Peek and Next once every line has been consumed.
const EOF rune = -1

// Position is a location in source text.
// Line is 1-based and Column is 0-based, as in ESTree locations.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Cursor holds the source text split into lines and the position of the last
// consumed rune. Every line, the last one included, ends in a synthetic '\n'.
// A Cursor is owned by a single read pass and must not be shared.
type Cursor struct {
	lines  [][]rune
	line   int // index into lines
	column int // index of the last consumed rune on the current line, -1 before the first
	source string
}

// NewCursor materialises text into lines. source names the text in diagnostics.
func NewCursor(text, source string) *Cursor {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return &Cursor{lines: lines, column: -1, source: source}
}

// Source returns the identifier the cursor was created with.
func (c *Cursor) Source() string { return c.source }

// Peek returns the next rune without consuming it: '\n' at the end of a line,
// EOF past the last line.
func (c *Cursor) Peek() rune {
	if c.line >= len(c.lines) {
		return EOF
	}
	l := c.lines[c.line]
	if c.column+1 < len(l) {
		return l[c.column+1]
	}
	return '\n'
}

// Next consumes and returns the rune Peek would return.
// Consuming a newline moves the cursor to the start of the following line.
func (c *Cursor) Next() rune {
	ch := c.Peek()
	switch ch {
	case EOF:
	case '\n':
		c.line++
		c.column = -1
	default:
		c.column++
	}
	return ch
}

// NextN consumes exactly n runes. It fails with UnexpectedEOF when fewer
// than n remain; the runes read so far stay consumed.
func (c *Cursor) NextN(n int) (string, error) {
	var b strings.Builder
	for i := range n {
		ch := c.Next()
		if ch == EOF {
			return b.String(), c.errorf(UnexpectedEOF, "unexpected end of input: wanted %d characters, got %d", n, i)
		}
		b.WriteRune(ch)
	}
	return b.String(), nil
}

// Here returns the position of the rune Peek would return.
func (c *Cursor) Here() Position {
	return Position{Line: c.line + 1, Column: c.column + 1}
}

func (c *Cursor) errorf(kind ReadErrorKind, format string, args ...any) *ReadError {
	return &ReadError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     c.Here(),
		Source:  c.source,
	}
}
