// Package estree defines the target-language syntax tree handed to an
// external code emitter. Node shapes and JSON field names follow ESTree, so
// the encoded tree can be rendered by any ESTree code generator.
package estree

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is implemented by every tree node.
type Node interface {
	Type() string
	String() string
	Location() *SourceLocation
	SetLocation(loc *SourceLocation)
}

// Expression is implemented by every node that produces a value.
type Expression interface {
	Node
	exprNode()
}

// Statement is implemented by every node that stands on its own in a body.
type Statement interface {
	Node
	stmtNode()
	AddLeadingComments(cs ...Comment)
	AddTrailingComments(cs ...Comment)
}

// Position is 1-based in Line and 0-based in Column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type SourceLocation struct {
	Source string   `json:"source,omitempty"`
	Start  Position `json:"start"`
	End    Position `json:"end"`
}

// Comment is an ESTree line comment attached to a statement.
type Comment struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// LineComment returns a "// text" comment.
func LineComment(text string) Comment { return Comment{Type: "Line", Value: text} }

// base carries the fields shared by every node.
type base struct {
	Loc              *SourceLocation `json:"loc,omitempty"`
	LeadingComments  []Comment       `json:"leadingComments,omitempty"`
	TrailingComments []Comment       `json:"trailingComments,omitempty"`
}

func (b *base) Location() *SourceLocation        { return b.Loc }
func (b *base) SetLocation(loc *SourceLocation)  { b.Loc = loc }
func (b *base) AddLeadingComments(cs ...Comment)  { b.LeadingComments = append(b.LeadingComments, cs...) }
func (b *base) AddTrailingComments(cs ...Comment) { b.TrailingComments = append(b.TrailingComments, cs...) }

//  Program and statements

// Program is the root of a compiled source file.
type Program struct {
	base
	Body       []Statement `json:"body"`
	SourceType string      `json:"sourceType"`
}

func (*Program) Type() string { return "Program" }
func (p *Program) String() string {
	lines := make([]string, len(p.Body))
	for i, s := range p.Body {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// ExpressionStatement evaluates Expression and discards the value.
// Directive is set for prologue directives such as "use strict".
type ExpressionStatement struct {
	base
	Expression Expression `json:"expression"`
	Directive  string     `json:"directive,omitempty"`
}

func (*ExpressionStatement) stmtNode()        {}
func (*ExpressionStatement) Type() string     { return "ExpressionStatement" }
func (s *ExpressionStatement) String() string { return s.Expression.String() + ";" }

// BlockStatement is a braced statement list, used for function bodies.
type BlockStatement struct {
	base
	Body []Statement `json:"body"`
}

func (*BlockStatement) stmtNode()    {}
func (*BlockStatement) Type() string { return "BlockStatement" }
func (b *BlockStatement) String() string {
	if len(b.Body) == 0 {
		return "{}"
	}
	parts := make([]string, len(b.Body))
	for i, s := range b.Body {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

type ReturnStatement struct {
	base
	Argument Expression `json:"argument"`
}

func (*ReturnStatement) stmtNode()    {}
func (*ReturnStatement) Type() string { return "ReturnStatement" }
func (r *ReturnStatement) String() string {
	if r.Argument == nil {
		return "return;"
	}
	return "return " + r.Argument.String() + ";"
}

type ThrowStatement struct {
	base
	Argument Expression `json:"argument"`
}

func (*ThrowStatement) stmtNode()        {}
func (*ThrowStatement) Type() string     { return "ThrowStatement" }
func (t *ThrowStatement) String() string { return "throw " + t.Argument.String() + ";" }

// VariableDeclaration binds one or more names.
//
//	(def x 1 y 2)  =>  var x = 1, y = 2;
type VariableDeclaration struct {
	base
	Declarations []*VariableDeclarator `json:"declarations"`
	Kind         string                `json:"kind"` // var, let or const
}

func (*VariableDeclaration) stmtNode()    {}
func (*VariableDeclaration) Type() string { return "VariableDeclaration" }
func (d *VariableDeclaration) String() string {
	parts := make([]string, len(d.Declarations))
	for i, decl := range d.Declarations {
		parts[i] = decl.String()
	}
	return d.Kind + " " + strings.Join(parts, ", ") + ";"
}

type VariableDeclarator struct {
	base
	ID   *Identifier `json:"id"`
	Init Expression  `json:"init"`
}

func (*VariableDeclarator) Type() string { return "VariableDeclarator" }
func (d *VariableDeclarator) String() string {
	if d.Init == nil {
		return d.ID.String()
	}
	return d.ID.String() + " = " + d.Init.String()
}

//  Expressions

type AssignmentExpression struct {
	base
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func (*AssignmentExpression) exprNode()    {}
func (*AssignmentExpression) Type() string { return "AssignmentExpression" }
func (a *AssignmentExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, a.Operator, a.Right)
}

// ConditionalExpression is Test ? Consequent : Alternate.
type ConditionalExpression struct {
	base
	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

func (*ConditionalExpression) exprNode()    {}
func (*ConditionalExpression) Type() string { return "ConditionalExpression" }
func (c *ConditionalExpression) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", c.Test, c.Consequent, c.Alternate)
}

// RestBinding records that the parameter Name collects every argument from
// position Index on. The binding statement itself is the first statement of
// the function body.
type RestBinding struct {
	Name  string
	Index int
}

// FunctionExpression is a possibly named function value.
type FunctionExpression struct {
	base
	ID        *Identifier     `json:"id"`
	Params    []*Identifier   `json:"params"`
	Body      *BlockStatement `json:"body"`
	Generator bool            `json:"generator"`
	Async     bool            `json:"async"`

	Rest *RestBinding `json:"-"`
}

func (*FunctionExpression) exprNode()    {}
func (*FunctionExpression) Type() string { return "FunctionExpression" }
func (f *FunctionExpression) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name
	}
	name := ""
	if f.ID != nil {
		name = " " + f.ID.Name
	}
	return fmt.Sprintf("function%s(%s) %s", name, strings.Join(params, ", "), f.Body)
}

// BinaryExpression is Left Operator Right. The logical operators || and &&
// encode as LogicalExpression.
type BinaryExpression struct {
	base
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func (*BinaryExpression) exprNode() {}
func (b *BinaryExpression) Type() string {
	if IsLogical(b.Operator) {
		return "LogicalExpression"
	}
	return "BinaryExpression"
}
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Operator, b.Right)
}

// IsLogical reports whether op short-circuits.
func IsLogical(op string) bool { return op == "||" || op == "&&" }

type UnaryExpression struct {
	base
	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

func (*UnaryExpression) exprNode()    {}
func (*UnaryExpression) Type() string { return "UnaryExpression" }
func (u *UnaryExpression) String() string {
	return fmt.Sprintf("(%s %s)", u.Operator, u.Argument)
}

type NewExpression struct {
	base
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func (*NewExpression) exprNode()    {}
func (*NewExpression) Type() string { return "NewExpression" }
func (n *NewExpression) String() string {
	return "new " + n.Callee.String() + "(" + joinExprs(n.Arguments) + ")"
}

type CallExpression struct {
	base
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func (*CallExpression) exprNode()    {}
func (*CallExpression) Type() string { return "CallExpression" }
func (c *CallExpression) String() string {
	return c.Callee.String() + "(" + joinExprs(c.Arguments) + ")"
}

// MemberExpression is Object.Property, or Object[Property] when Computed.
type MemberExpression struct {
	base
	Object   Expression `json:"object"`
	Property Expression `json:"property"`
	Computed bool       `json:"computed"`
}

func (*MemberExpression) exprNode()    {}
func (*MemberExpression) Type() string { return "MemberExpression" }
func (m *MemberExpression) String() string {
	if m.Computed {
		return m.Object.String() + "[" + m.Property.String() + "]"
	}
	return m.Object.String() + "." + m.Property.String()
}

type ArrayExpression struct {
	base
	Elements []Expression `json:"elements"`
}

func (*ArrayExpression) exprNode()        {}
func (*ArrayExpression) Type() string     { return "ArrayExpression" }
func (a *ArrayExpression) String() string { return "[" + joinExprs(a.Elements) + "]" }

type ObjectExpression struct {
	base
	Properties []*Property `json:"properties"`
}

func (*ObjectExpression) exprNode()    {}
func (*ObjectExpression) Type() string { return "ObjectExpression" }
func (o *ObjectExpression) String() string {
	parts := make([]string, len(o.Properties))
	for i, p := range o.Properties {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Property is one key: value entry of an ObjectExpression.
type Property struct {
	base
	Key       Expression `json:"key"`
	Value     Expression `json:"value"`
	Kind      string     `json:"kind"`
	Computed  bool       `json:"computed"`
	Method    bool       `json:"method"`
	Shorthand bool       `json:"shorthand"`
}

func (*Property) Type() string     { return "Property" }
func (p *Property) String() string { return p.Key.String() + ": " + p.Value.String() }

type Identifier struct {
	base
	Name string `json:"name"`
}

func (*Identifier) exprNode()        {}
func (*Identifier) Type() string     { return "Identifier" }
func (i *Identifier) String() string { return i.Name }

// Literal holds nil, a bool, a float64 or a string. Raw is the source
// spelling when one exists.
type Literal struct {
	base
	Value any    `json:"value"`
	Raw   string `json:"raw,omitempty"`
}

func (*Literal) exprNode()    {}
func (*Literal) Type() string { return "Literal" }
func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		if l.Raw != "" {
			return l.Raw
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprint(l.Value)
}

func joinExprs(es []Expression) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
