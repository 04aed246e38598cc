package reader

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Reserved symbol spellings the compiler lowers to literals.
const (
	NullName  = "null"
	TrueName  = "true"
	FalseName = "false"
)

// Span is the source range of a form. End is the position just past its
// last rune.
type Span struct {
	Start  Position `json:"start"`
	End    Position `json:"end"`
	Source string   `json:"source"`
}

// Form is implemented by every node the reader produces.
type Form interface {
	Span() Span
	String() string
	formNode()
}

// CollectionKind selects the bracket pair of a collection form.
type CollectionKind int

const (
	ListKind CollectionKind = iota + 1
	ArrayKind
	ObjectKind
)

func (k CollectionKind) String() string {
	switch k {
	case ListKind:
		return "list"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	}
	return "collection"
}

// Open returns the opening delimiter of k.
func (k CollectionKind) Open() rune {
	switch k {
	case ArrayKind:
		return '['
	case ObjectKind:
		return '{'
	}
	return '('
}

// Close returns the closing delimiter of k.
func (k CollectionKind) Close() rune {
	switch k {
	case ArrayKind:
		return ']'
	case ObjectKind:
		return '}'
	}
	return ')'
}

// Comment is a `;` line comment, without the leading semicolons.
//
//	; hello
//	 ^^^^^^  Comment{Text: " hello"}
type Comment struct {
	Text string
	Loc  Span
}

func (*Comment) formNode()        {}
func (c *Comment) Span() Span     { return c.Loc }
func (c *Comment) String() string { return ";" + c.Text }

func (c *Comment) MarshalJSON() ([]byte, error) {
	return marshalForm("comment", c.Loc, "value", c.Text)
}

// String is a string literal with every escape already resolved.
type String struct {
	Value string
	Loc   Span
}

func (*String) formNode()        {}
func (s *String) Span() Span     { return s.Loc }
func (s *String) String() string { return strconv.Quote(s.Value) }

func (s *String) MarshalJSON() ([]byte, error) {
	return marshalForm("string", s.Loc, "value", s.Value)
}

// Symbol is an identifier or operator name, NFC-normalised.
type Symbol struct {
	Name string
	Loc  Span
}

func (*Symbol) formNode()        {}
func (s *Symbol) Span() Span     { return s.Loc }
func (s *Symbol) String() string { return s.Name }

func (s *Symbol) MarshalJSON() ([]byte, error) {
	return marshalForm("identifier", s.Loc, "value", s.Name)
}

// Number keeps the raw token text; interpretation happens in the compiler.
type Number struct {
	Raw string
	Loc Span
}

func (*Number) formNode()        {}
func (n *Number) Span() Span     { return n.Loc }
func (n *Number) String() string { return n.Raw }

func (n *Number) MarshalJSON() ([]byte, error) {
	return marshalForm("number", n.Loc, "value", n.Raw)
}

// List is a parenthesised form: (a b c)
type List struct {
	Items []Form
	Loc   Span
}

func (*List) formNode()        {}
func (l *List) Span() Span     { return l.Loc }
func (l *List) String() string { return writeItems(ListKind, l.Items) }

func (l *List) MarshalJSON() ([]byte, error) {
	return marshalForm("list", l.Loc, "items", l.Items)
}

// Array is a bracketed form: [a b c]
type Array struct {
	Items []Form
	Loc   Span
}

func (*Array) formNode()        {}
func (a *Array) Span() Span     { return a.Loc }
func (a *Array) String() string { return writeItems(ArrayKind, a.Items) }

func (a *Array) MarshalJSON() ([]byte, error) {
	return marshalForm("array", a.Loc, "items", a.Items)
}

// Object is a braced form of alternating keys and values: {a 1 b 2}
type Object struct {
	Items []Form
	Loc   Span
}

func (*Object) formNode()        {}
func (o *Object) Span() Span     { return o.Loc }
func (o *Object) String() string { return writeItems(ObjectKind, o.Items) }

func (o *Object) MarshalJSON() ([]byte, error) {
	return marshalForm("object", o.Loc, "items", o.Items)
}

// IsSymbol reports whether f is the symbol name.
func IsSymbol(f Form, name string) bool {
	s, ok := f.(*Symbol)
	return ok && s.Name == name
}

func writeItems(kind CollectionKind, items []Form) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return string(kind.Open()) + strings.Join(parts, " ") + string(kind.Close())
}

func marshalForm(typ string, loc Span, key string, value any) ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":     typ,
		key:        value,
		"location": loc,
	})
}
