package compiler

import (
	"regexp"
	"strconv"

	"solo/pkg/estree"
	"solo/pkg/reader"
)

// Options tune code generation. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// ModuleLoader is the host function import calls to load a module.
	ModuleLoader string
	// DeclarationKind is the keyword used for def and synthetic bindings:
	// var, let or const.
	DeclarationKind string
	// Comments attaches top-level comment forms to neighbouring statements.
	Comments bool
	// Locations sets loc on every node.
	Locations bool
	// UseStrict prepends a "use strict" directive.
	UseStrict bool
}

// DefaultOptions emits var bindings loaded through require, with locations.
// The strict directive is left off so a program holds exactly the statements
// its forms lower to.
func DefaultOptions() Options {
	return Options{
		ModuleLoader:    "require",
		DeclarationKind: "var",
		Locations:       true,
	}
}

// Compiler lowers forms to ESTree. It holds no state between calls, so
// compiling the same forms twice yields equal trees.
type Compiler struct {
	opts Options
}

func New(opts Options) *Compiler {
	return &Compiler{opts: opts}
}

// result is what lowering one form yields: Single or Many.
type result interface {
	result()
}

// Single is one node, either an expression or a statement.
type Single struct {
	Node estree.Node
}

// Many is a sequence of statements spliced in place of one form.
type Many struct {
	Stmts []estree.Statement
}

func (Single) result() {}
func (Many) result()   {}

// Compile lowers every top-level form into the body of a Program.
func (c *Compiler) Compile(forms []reader.Form) (*estree.Program, error) {
	prog := &estree.Program{Body: []estree.Statement{}, SourceType: "script"}
	if c.opts.UseStrict {
		prog.Body = append(prog.Body, &estree.ExpressionStatement{
			Expression: &estree.Literal{Value: "use strict"},
			Directive:  "use strict",
		})
	}

	var pending []estree.Comment
	for _, f := range forms {
		if cm, ok := f.(*reader.Comment); ok {
			if c.opts.Comments {
				pending = append(pending, estree.LineComment(cm.Text))
			}
			continue
		}

		res, err := c.writeForm(f)
		if err != nil {
			return nil, err
		}
		stmts := c.statements(res, f)
		if len(pending) > 0 && len(stmts) > 0 {
			stmts[0].AddLeadingComments(pending...)
			pending = nil
		}
		prog.Body = append(prog.Body, stmts...)
	}
	if len(pending) > 0 && len(prog.Body) > 0 {
		prog.Body[len(prog.Body)-1].AddTrailingComments(pending...)
	}
	return prog, nil
}

// statements flattens a result into statements, wrapping a bare expression
// in an ExpressionStatement.
func (c *Compiler) statements(res result, f reader.Form) []estree.Statement {
	switch r := res.(type) {
	case Many:
		return r.Stmts
	case Single:
		if s, ok := r.Node.(estree.Statement); ok {
			return []estree.Statement{s}
		}
		if e, ok := r.Node.(estree.Expression); ok {
			return []estree.Statement{at(c, &estree.ExpressionStatement{Expression: e}, f.Span())}
		}
	}
	return nil
}

// writeForm lowers one form.
func (c *Compiler) writeForm(form reader.Form) (result, error) {
	switch f := form.(type) {
	case *reader.Symbol:
		return Single{c.writeSymbol(f)}, nil
	case *reader.Number:
		lit, err := c.writeNumber(f)
		if err != nil {
			return nil, err
		}
		return Single{lit}, nil
	case *reader.String:
		return Single{at(c, &estree.Literal{Value: f.Value}, f.Loc)}, nil
	case *reader.Array:
		elems, err := c.exprs(significant(f.Items))
		if err != nil {
			return nil, err
		}
		return Single{at(c, &estree.ArrayExpression{Elements: elems}, f.Loc)}, nil
	case *reader.Object:
		obj, err := c.writeObject(f)
		if err != nil {
			return nil, err
		}
		return Single{obj}, nil
	case *reader.List:
		return c.writeList(f)
	case *reader.Comment:
		return nil, shapeError(f, "comment", "a comment cannot be compiled")
	}
	return nil, shapeError(form, "form", "unsupported form %T", form)
}

// expr lowers a form that must produce a value.
func (c *Compiler) expr(form reader.Form) (estree.Expression, error) {
	res, err := c.writeForm(form)
	if err != nil {
		return nil, err
	}
	if s, ok := res.(Single); ok {
		if e, ok := s.Node.(estree.Expression); ok {
			return e, nil
		}
	}
	return nil, shapeError(form, headName(form), "cannot be used as a value")
}

func (c *Compiler) exprs(forms []reader.Form) ([]estree.Expression, error) {
	out := make([]estree.Expression, 0, len(forms))
	for _, f := range forms {
		e, err := c.expr(f)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (c *Compiler) writeSymbol(s *reader.Symbol) estree.Expression {
	switch s.Name {
	case reader.NullName:
		return at(c, &estree.Literal{Value: nil, Raw: "null"}, s.Loc)
	case reader.TrueName:
		return at(c, &estree.Literal{Value: true, Raw: "true"}, s.Loc)
	case reader.FalseName:
		return at(c, &estree.Literal{Value: false, Raw: "false"}, s.Loc)
	}
	return c.ident(s)
}

func (c *Compiler) ident(s *reader.Symbol) *estree.Identifier {
	return at(c, &estree.Identifier{Name: s.Name}, s.Loc)
}

var numberPattern = regexp.MustCompile(`^[-+]?[0-9]+(\.[0-9]*)?([eE][-+]?[0-9]+)?$`)

func (c *Compiler) writeNumber(n *reader.Number) (*estree.Literal, error) {
	if !numberPattern.MatchString(n.Raw) {
		return nil, shapeError(n, "number", "malformed number %q", n.Raw)
	}
	v, err := strconv.ParseFloat(n.Raw, 64)
	if err != nil {
		return nil, shapeError(n, "number", "malformed number %q: %v", n.Raw, err)
	}
	return at(c, &estree.Literal{Value: v, Raw: n.Raw}, n.Loc), nil
}

// writeObject lowers {k1 v1 k2 v2 ...}; every key must be a symbol.
func (c *Compiler) writeObject(o *reader.Object) (*estree.ObjectExpression, error) {
	return c.writeProperties("object", o, significant(o.Items))
}

// writeProperties builds an object literal from alternating keys and values.
// f is the form the literal is located at.
func (c *Compiler) writeProperties(name string, f reader.Form, items []reader.Form) (*estree.ObjectExpression, error) {
	if len(items)%2 != 0 {
		return nil, shapeError(f, name, "odd object arity: %d items", len(items))
	}
	props := make([]*estree.Property, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		key, ok := items[i].(*reader.Symbol)
		if !ok {
			return nil, shapeError(items[i], name, "non-symbol key %s", items[i])
		}
		val, err := c.expr(items[i+1])
		if err != nil {
			return nil, err
		}
		prop := &estree.Property{Key: c.ident(key), Value: val, Kind: "init"}
		props = append(props, at(c, prop, join(key.Loc, items[i+1].Span())))
	}
	return at(c, &estree.ObjectExpression{Properties: props}, f.Span()), nil
}

// writeList dispatches a list to its special form, or lowers it as a call.
func (c *Compiler) writeList(l *reader.List) (result, error) {
	items := significant(l.Items)
	if len(items) == 0 {
		return nil, shapeError(l, "list", "cannot compile an empty list")
	}
	if head, ok := items[0].(*reader.Symbol); ok {
		if sp, ok := LookupSpecial(head.Name); ok {
			return c.writeSpecial(sp, head.Name, l, items[1:])
		}
	}

	callee, err := c.expr(items[0])
	if err != nil {
		return nil, err
	}
	args, err := c.exprs(items[1:])
	if err != nil {
		return nil, err
	}
	return Single{at(c, &estree.CallExpression{Callee: callee, Arguments: args}, l.Loc)}, nil
}

// at sets the location of n from span when locations are enabled.
func at[N estree.Node](c *Compiler, n N, span reader.Span) N {
	if c.opts.Locations {
		n.SetLocation(&estree.SourceLocation{
			Source: span.Source,
			Start:  estree.Position{Line: span.Start.Line, Column: span.Start.Column},
			End:    estree.Position{Line: span.End.Line, Column: span.End.Column},
		})
	}
	return n
}

// join spans from the start of a to the end of b.
func join(a, b reader.Span) reader.Span {
	return reader.Span{Start: a.Start, End: b.End, Source: a.Source}
}

// significant drops comment forms. The input slice is not modified.
func significant(items []reader.Form) []reader.Form {
	out := make([]reader.Form, 0, len(items))
	for _, it := range items {
		if _, ok := it.(*reader.Comment); ok {
			continue
		}
		out = append(out, it)
	}
	return out
}

// headName names a form in diagnostics: the head symbol of a list, or the
// form's own spelling.
func headName(f reader.Form) string {
	if l, ok := f.(*reader.List); ok {
		if items := significant(l.Items); len(items) > 0 {
			if s, ok := items[0].(*reader.Symbol); ok {
				return s.Name
			}
		}
		return "list"
	}
	return f.String()
}
