package compiler

import (
	"fmt"

	"solo/pkg/reader"
)

// CompileErrorKind classifies a compile failure.
type CompileErrorKind int

const (
	ArityError CompileErrorKind = iota + 1
	ShapeError
	NotImplemented
)

func (k CompileErrorKind) String() string {
	switch k {
	case ArityError:
		return "arity error"
	case ShapeError:
		return "shape error"
	case NotImplemented:
		return "not implemented"
	}
	return fmt.Sprintf("CompileErrorKind(%d)", int(k))
}

// CompileError reports the first form that could not be lowered. The whole
// compile is abandoned when one occurs.
type CompileError struct {
	Kind CompileErrorKind
	// Form is the special form (or construct, such as "object") at fault.
	Form    string
	Message string

	// Expected and Got are set for ArityError.
	Expected string
	Got      int

	Span reader.Span
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Span.Source, e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

// Is matches the kind sentinels, e.g. errors.Is(err, compiler.ErrArity).
func (e *CompileError) Is(target error) bool {
	t, ok := target.(*CompileError)
	if !ok || t.Message != "" {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrArity          = &CompileError{Kind: ArityError}
	ErrShape          = &CompileError{Kind: ShapeError}
	ErrNotImplemented = &CompileError{Kind: NotImplemented}
)

func arityError(f reader.Form, name, expected string, got int) *CompileError {
	return &CompileError{
		Kind:     ArityError,
		Form:     name,
		Message:  fmt.Sprintf("%s: %s, got %d", name, expected, got),
		Expected: expected,
		Got:      got,
		Span:     f.Span(),
	}
}

func shapeError(f reader.Form, name, format string, args ...any) *CompileError {
	return &CompileError{
		Kind:    ShapeError,
		Form:    name,
		Message: name + ": " + fmt.Sprintf(format, args...),
		Span:    f.Span(),
	}
}
