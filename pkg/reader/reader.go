// Package reader turns source text into a sequence of located forms.
//
// Reading is recursive descent over a Cursor: nesting depth in the input is
// bounded only by the goroutine stack.
package reader

import (
	"strconv"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

type reader struct {
	cur *Cursor
}

// Read returns every top-level form of text in source order. source names the
// text in spans and errors (a file path, or a marker such as "(lisp)").
// The first error aborts the read and is returned as a *ReadError.
func Read(text, source string) ([]Form, error) {
	r := &reader{cur: NewCursor(text, source)}
	var forms []Form
	for {
		r.skipWhitespace()
		if r.cur.Peek() == EOF {
			return forms, nil
		}
		f, closer, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if closer != 0 {
			// nothing is open at top level
			return nil, r.cur.unmatched(closer, "")
		}
		forms = append(forms, f)
	}
}

// readForm reads the form starting at the next significant rune. When that
// rune is a closing delimiter it is left unconsumed and returned as closer,
// so that the collection expecting it can terminate.
func (r *reader) readForm() (Form, rune, error) {
	start := r.cur.Here()
	ch := r.cur.Peek()
	switch ch {
	case '"', '\'':
		f, err := r.readString(start)
		return f, 0, err
	case ';':
		f, err := r.readComment(start)
		return f, 0, err
	case '(':
		items, err := r.readCollection(ListKind, start)
		if err != nil {
			return nil, 0, err
		}
		return &List{Items: items, Loc: r.span(start)}, 0, nil
	case '[':
		items, err := r.readCollection(ArrayKind, start)
		if err != nil {
			return nil, 0, err
		}
		return &Array{Items: items, Loc: r.span(start)}, 0, nil
	case '{':
		items, err := r.readCollection(ObjectKind, start)
		if err != nil {
			return nil, 0, err
		}
		return &Object{Items: items, Loc: r.span(start)}, 0, nil
	case ')', ']', '}':
		return nil, ch, nil
	}
	return r.readAtom(start), 0, nil
}

func (r *reader) span(start Position) Span {
	return Span{Start: start, End: r.cur.Here(), Source: r.cur.Source()}
}

func (r *reader) skipWhitespace() {
	for isWhitespace(r.cur.Peek()) {
		r.cur.Next()
	}
}

// readCollection consumes the opener of kind and reads children until the
// matching closer. A closer of another kind cannot be absorbed here and is
// fatal.
func (r *reader) readCollection(kind CollectionKind, start Position) ([]Form, error) {
	r.cur.Next()
	items := []Form{}
	for {
		r.skipWhitespace()
		if r.cur.Peek() == EOF {
			err := r.cur.errorf(UnterminatedCollection, "end of input reading %s opened at %s, missing %q", kind, start, kind.Close())
			err.Collection = kind
			return nil, err
		}
		f, closer, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if closer != 0 {
			if closer != kind.Close() {
				return nil, r.cur.unmatched(closer, " in "+kind.String()+" opened at "+start.String())
			}
			r.cur.Next()
			return items, nil
		}
		items = append(items, f)
	}
}

func (r *reader) readString(start Position) (Form, error) {
	delim := r.cur.Next()
	var buf []rune
	for {
		ch := r.cur.Next()
		switch ch {
		case EOF:
			return nil, r.cur.errorf(UnterminatedString, "end of input reading string opened at %s", start)
		case delim:
			return &String{Value: string(buf), Loc: r.span(start)}, nil
		case '\\':
			esc, err := r.readEscape()
			if err != nil {
				return nil, err
			}
			buf = append(buf, esc)
		default:
			buf = append(buf, ch)
		}
	}
}

// readComment reads from ';' up to, not including, the end of the line.
func (r *reader) readComment(start Position) (Form, error) {
	for r.cur.Peek() == ';' {
		r.cur.Next()
	}
	var buf []rune
	for {
		ch := r.cur.Peek()
		if ch == '\n' || ch == EOF {
			return &Comment{Text: string(buf), Loc: r.span(start)}, nil
		}
		r.cur.Next()
		if ch == '\r' && r.cur.Peek() == '\n' {
			// CRLF line ending
			continue
		}
		if ch == '\\' {
			esc, err := r.readEscape()
			if err != nil {
				return nil, err
			}
			buf = append(buf, esc)
			continue
		}
		buf = append(buf, ch)
	}
}

// readEscape decodes the escape whose backslash was just consumed.
func (r *reader) readEscape() (rune, error) {
	pos := r.cur.Here()
	ch := r.cur.Next()
	switch ch {
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case 'n':
		return '\n', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'x':
		return r.readHexEscape(ch, 2, pos)
	case 'u':
		return r.readUnicodeEscape(pos)
	case EOF:
		return 0, r.cur.errorf(UnexpectedEOF, "unexpected end of input in escape sequence")
	}
	err := r.cur.errorf(InvalidEscape, "invalid escape \\%s", printable(ch))
	err.Pos = pos
	return 0, err
}

// readUnicodeEscape decodes \uHHHH. A UTF-16 surrogate pair written as two
// consecutive escapes decodes to one rune; an unpaired surrogate is invalid.
func (r *reader) readUnicodeEscape(pos Position) (rune, error) {
	hi, err := r.readHexEscape('u', 4, pos)
	if err != nil || !utf16.IsSurrogate(hi) {
		return hi, err
	}
	if hi >= 0xDC00 || r.cur.Peek() != '\\' {
		return 0, r.unpaired(hi, pos)
	}
	r.cur.Next()
	lowPos := r.cur.Here()
	if r.cur.Next() != 'u' {
		return 0, r.unpaired(hi, pos)
	}
	lo, err := r.readHexEscape('u', 4, lowPos)
	if err != nil {
		return 0, err
	}
	ch := utf16.DecodeRune(hi, lo)
	if ch == unicode.ReplacementChar {
		return 0, r.unpaired(hi, pos)
	}
	return ch, nil
}

func (r *reader) unpaired(surrogate rune, pos Position) *ReadError {
	err := r.cur.errorf(InvalidEscape, "invalid escape \\u%04X: unpaired UTF-16 surrogate", surrogate)
	err.Pos = pos
	return err
}

func (r *reader) readHexEscape(kind rune, digits int, pos Position) (rune, error) {
	code, err := r.cur.NextN(digits)
	if err != nil {
		return 0, err
	}
	for _, d := range code {
		if !isHexDigit(d) {
			e := r.cur.errorf(InvalidEscape, "invalid escape \\%c%s: want %d hex digits", kind, printable([]rune(code)...), digits)
			e.Pos = pos
			return 0, e
		}
	}
	n, perr := strconv.ParseUint(code, 16, 32)
	if perr != nil {
		e := r.cur.errorf(InvalidEscape, "invalid escape \\%c%s: %v", kind, code, perr)
		e.Pos = pos
		return 0, e
	}
	return rune(n), nil
}

// readAtom scans a number or symbol token up to whitespace or a closer.
func (r *reader) readAtom(start Position) Form {
	var buf []rune
	for {
		ch := r.cur.Peek()
		if ch == EOF || isWhitespace(ch) || isCloser(ch) {
			break
		}
		buf = append(buf, r.cur.Next())
	}
	if isNumberStart(buf) {
		return &Number{Raw: string(buf), Loc: r.span(start)}
	}
	return &Symbol{Name: norm.NFC.String(string(buf)), Loc: r.span(start)}
}

func (c *Cursor) unmatched(ch rune, context string) *ReadError {
	err := c.errorf(UnmatchedDelimiter, "unmatched delimiter %q%s", ch, context)
	err.Char = ch
	return err
}

func isWhitespace(ch rune) bool {
	return ch != EOF && unicode.IsSpace(ch)
}

func isCloser(ch rune) bool {
	return ch == ')' || ch == ']' || ch == '}'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isNumberStart: a digit, or a sign immediately followed by a digit.
func isNumberStart(tok []rune) bool {
	if len(tok) == 0 {
		return false
	}
	if isDigit(tok[0]) {
		return true
	}
	return (tok[0] == '+' || tok[0] == '-') && len(tok) > 1 && isDigit(tok[1])
}

func printable(rs ...rune) string {
	q := strconv.QuoteToASCII(string(rs))
	return q[1 : len(q)-1]
}
