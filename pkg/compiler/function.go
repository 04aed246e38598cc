package compiler

import (
	"strconv"

	"solo/pkg/estree"
	"solo/pkg/reader"
)

// variadicMarker separates fixed parameters from the rest parameter:
//
//	(function (a b . more) ...)
const variadicMarker = "."

// writeFunction lowers
//
//	(function name? (params...) body...)
//
// Every body form but the last is a statement; the last is returned, unless
// it is itself a statement.
func (c *Compiler) writeFunction(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) == 0 {
		return nil, arityError(l, name, "expected a parameter list and a body", 0)
	}

	fn := &estree.FunctionExpression{}
	rest := args
	if _, ok := rest[0].(*reader.Symbol); ok {
		id, err := c.bindingName(rest[0], name)
		if err != nil {
			return nil, err
		}
		fn.ID = id
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil, shapeError(l, name, "missing parameter list")
	}
	params, ok := rest[0].(*reader.List)
	if !ok {
		return nil, shapeError(rest[0], name, "parameter list must be a list, got %s", rest[0])
	}
	body := rest[1:]
	if len(body) == 0 {
		return nil, arityError(l, name, "expected at least 1 body form", 0)
	}

	if err := c.writeParams(fn, name, params); err != nil {
		return nil, err
	}

	stmts := []estree.Statement{}
	if fn.Rest != nil {
		stmts = append(stmts, c.restBinding(fn.Rest, params))
	}
	for i, f := range body {
		res, err := c.writeForm(f)
		if err != nil {
			return nil, err
		}
		if i == len(body)-1 {
			if s, ok := res.(Single); ok {
				if e, ok := s.Node.(estree.Expression); ok {
					stmts = append(stmts, at(c, &estree.ReturnStatement{Argument: e}, f.Span()))
					continue
				}
			}
		}
		stmts = append(stmts, c.statements(res, f)...)
	}

	fn.Body = at(c, &estree.BlockStatement{Body: stmts}, join(body[0].Span(), body[len(body)-1].Span()))
	return Single{at(c, fn, l.Loc)}, nil
}

// writeParams fills fn.Params, and fn.Rest when the list ends in ". name".
func (c *Compiler) writeParams(fn *estree.FunctionExpression, name string, params *reader.List) error {
	items := significant(params.Items)
	fn.Params = make([]*estree.Identifier, 0, len(items))
	for i, p := range items {
		if reader.IsSymbol(p, variadicMarker) {
			if i != len(items)-2 {
				return shapeError(p, name, "%q must be followed by exactly one parameter name", variadicMarker)
			}
			restName, err := c.bindingName(items[i+1], name)
			if err != nil {
				return err
			}
			fn.Rest = &estree.RestBinding{Name: restName.Name, Index: i}
			return nil
		}
		if _, ok := p.(*reader.Symbol); !ok {
			return shapeError(p, name, "parameter %d must be a symbol, got %s", i+1, p)
		}
		id, err := c.bindingName(p, name)
		if err != nil {
			return err
		}
		fn.Params = append(fn.Params, id)
	}
	return nil
}

// restBinding builds the statement that gathers trailing arguments:
//
//	var rest = Array.prototype.slice.call(arguments, index);
func (c *Compiler) restBinding(rest *estree.RestBinding, params *reader.List) estree.Statement {
	slice := member(member(member(ident("Array"), "prototype"), "slice"), "call")
	init := &estree.CallExpression{
		Callee: slice,
		Arguments: []estree.Expression{
			ident("arguments"),
			&estree.Literal{Value: float64(rest.Index), Raw: strconv.Itoa(rest.Index)},
		},
	}
	decl := &estree.VariableDeclaration{
		Declarations: []*estree.VariableDeclarator{{ID: ident(rest.Name), Init: init}},
		Kind:         c.opts.DeclarationKind,
	}
	return at(c, decl, params.Loc)
}
