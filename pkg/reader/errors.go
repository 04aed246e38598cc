package reader

import "fmt"

// ReadErrorKind classifies a fatal read failure.
type ReadErrorKind int

const (
	UnterminatedString ReadErrorKind = iota + 1
	InvalidEscape
	UnterminatedCollection
	UnmatchedDelimiter
	UnexpectedEOF
)

func (k ReadErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "unterminated string"
	case InvalidEscape:
		return "invalid escape"
	case UnterminatedCollection:
		return "unterminated collection"
	case UnmatchedDelimiter:
		return "unmatched delimiter"
	case UnexpectedEOF:
		return "unexpected end of input"
	}
	return fmt.Sprintf("ReadErrorKind(%d)", int(k))
}

// ReadError is the single error type returned by Read. Any ReadError aborts
// the read; no partial program is returned alongside it.
type ReadError struct {
	Kind    ReadErrorKind
	Message string

	// Char is the offending closer for UnmatchedDelimiter.
	Char rune
	// Collection is the unclosed collection for UnterminatedCollection.
	Collection CollectionKind

	Pos    Position
	Source string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Pos.Line, e.Pos.Column, e.Message)
}

// Is reports whether target is the sentinel for e's kind, so callers can
// write errors.Is(err, reader.ErrUnmatchedDelimiter).
func (e *ReadError) Is(target error) bool {
	t, ok := target.(*ReadError)
	if !ok || t.Message != "" {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUnterminatedString     = &ReadError{Kind: UnterminatedString}
	ErrInvalidEscape          = &ReadError{Kind: InvalidEscape}
	ErrUnterminatedCollection = &ReadError{Kind: UnterminatedCollection}
	ErrUnmatchedDelimiter     = &ReadError{Kind: UnmatchedDelimiter}
	ErrUnexpectedEOF          = &ReadError{Kind: UnexpectedEOF}
)
