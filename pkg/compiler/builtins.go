package compiler

import (
	"fmt"
	"strings"

	"solo/pkg/estree"
	"solo/pkg/reader"
)

// writeSpecial lowers the special form l, whose head is name and whose
// remaining significant items are args.
func (c *Compiler) writeSpecial(sp Special, name string, l *reader.List, args []reader.Form) (result, error) {
	switch sp {
	case SpecialDef:
		return c.writeDef(name, l, args)
	case SpecialSet:
		return c.writeSet(name, l, args)
	case SpecialIf:
		return c.writeIf(name, l, args)
	case SpecialFunction:
		return c.writeFunction(name, l, args)
	case SpecialNew:
		return c.writeNew(name, l, args)
	case SpecialOperator:
		if len(args) < 2 {
			return nil, arityError(l, name, "needs at least 2 operands", len(args))
		}
		e, err := c.fold(name, args)
		if err != nil {
			return nil, err
		}
		return Single{at(c, e, l.Loc)}, nil
	case SpecialUnary:
		return c.writeUnary(name, l, args)
	case SpecialThrow:
		return c.writeThrow(name, l, args)
	case SpecialTry:
		return nil, &CompileError{
			Kind:    NotImplemented,
			Form:    name,
			Message: name + ": not implemented",
			Span:    l.Loc,
		}
	case SpecialLiteralCheck:
		return c.writeLiteralCheck(name, l, args)
	case SpecialTypeCheck:
		return c.writeTypeCheck(name, l, args)
	case SpecialImport:
		return c.writeImport(name, l, args)
	case SpecialGet:
		return c.writeGet(name, l, args)
	case SpecialObject:
		obj, err := c.writeProperties(name, l, args)
		if err != nil {
			return nil, err
		}
		return Single{obj}, nil
	}
	panic(fmt.Sprintf("compiler: unhandled special form %v", sp))
}

// writeDef lowers (def n1 v1 n2 v2 ...) to one declaration.
func (c *Compiler) writeDef(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, arityError(l, name, "expected name/value pairs", len(args))
	}
	decls := make([]*estree.VariableDeclarator, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		id, err := c.bindingName(args[i], name)
		if err != nil {
			return nil, err
		}
		init, err := c.expr(args[i+1])
		if err != nil {
			return nil, err
		}
		decl := &estree.VariableDeclarator{ID: id, Init: init}
		decls = append(decls, at(c, decl, join(args[i].Span(), args[i+1].Span())))
	}
	return Single{at(c, &estree.VariableDeclaration{Declarations: decls, Kind: c.opts.DeclarationKind}, l.Loc)}, nil
}

// writeSet lowers (set! name value). Only plain identifiers are assignable.
func (c *Compiler) writeSet(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) != 2 {
		return nil, arityError(l, name, "expected exactly 2 arguments", len(args))
	}
	target, err := c.bindingName(args[0], name)
	if err != nil {
		return nil, err
	}
	value, err := c.expr(args[1])
	if err != nil {
		return nil, err
	}
	return Single{at(c, &estree.AssignmentExpression{Operator: "=", Left: target, Right: value}, l.Loc)}, nil
}

// writeIf lowers (if test then else). The alternate is mandatory.
func (c *Compiler) writeIf(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) != 3 {
		return nil, arityError(l, name, "expected exactly 3 arguments", len(args))
	}
	parts, err := c.exprs(args)
	if err != nil {
		return nil, err
	}
	cond := &estree.ConditionalExpression{Test: parts[0], Consequent: parts[1], Alternate: parts[2]}
	return Single{at(c, cond, l.Loc)}, nil
}

func (c *Compiler) writeNew(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) == 0 {
		return nil, arityError(l, name, "expected a constructor", 0)
	}
	callee, err := c.expr(args[0])
	if err != nil {
		return nil, err
	}
	rest, err := c.exprs(args[1:])
	if err != nil {
		return nil, err
	}
	return Single{at(c, &estree.NewExpression{Callee: callee, Arguments: rest}, l.Loc)}, nil
}

// fold chains operands to the right:
//
//	(+ a b c)  =>  a + (b + c)
//
// Operands are still evaluated left to right at the leaves.
func (c *Compiler) fold(op string, operands []reader.Form) (*estree.BinaryExpression, error) {
	left, err := c.expr(operands[0])
	if err != nil {
		return nil, err
	}
	var right estree.Expression
	if len(operands) == 2 {
		right, err = c.expr(operands[1])
	} else {
		var inner *estree.BinaryExpression
		inner, err = c.fold(op, operands[1:])
		if err == nil {
			right = at(c, inner, join(operands[1].Span(), operands[len(operands)-1].Span()))
		}
	}
	if err != nil {
		return nil, err
	}
	return &estree.BinaryExpression{Operator: op, Left: left, Right: right}, nil
}

func (c *Compiler) writeUnary(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) != 1 {
		return nil, arityError(l, name, "expected exactly 1 operand", len(args))
	}
	arg, err := c.expr(args[0])
	if err != nil {
		return nil, err
	}
	return Single{at(c, &estree.UnaryExpression{Operator: name, Prefix: true, Argument: arg}, l.Loc)}, nil
}

func (c *Compiler) writeThrow(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) != 1 {
		return nil, arityError(l, name, "expected exactly 1 operand", len(args))
	}
	arg, err := c.expr(args[0])
	if err != nil {
		return nil, err
	}
	return Single{at(c, &estree.ThrowStatement{Argument: arg}, l.Loc)}, nil
}

// writeLiteralCheck lowers (null? x) to x === null, and likewise for true?
// and false?.
func (c *Compiler) writeLiteralCheck(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) != 1 {
		return nil, arityError(l, name, "expected exactly 1 operand", len(args))
	}
	arg, err := c.expr(args[0])
	if err != nil {
		return nil, err
	}
	var lit *estree.Literal
	switch name {
	case "null?":
		lit = &estree.Literal{Value: nil, Raw: "null"}
	case "true?":
		lit = &estree.Literal{Value: true, Raw: "true"}
	default:
		lit = &estree.Literal{Value: false, Raw: "false"}
	}
	return Single{at(c, &estree.BinaryExpression{Operator: "===", Left: arg, Right: lit}, l.Loc)}, nil
}

// writeTypeCheck lowers (number? x) to typeof x === "number". Arrays are
// told apart through their internal class tag:
//
//	(array? x)  =>  Object.prototype.toString.call(x) === "[object Array]"
func (c *Compiler) writeTypeCheck(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) != 1 {
		return nil, arityError(l, name, "expected exactly 1 operand", len(args))
	}
	arg, err := c.expr(args[0])
	if err != nil {
		return nil, err
	}
	tag := strings.TrimSuffix(name, "?")

	var query estree.Expression
	var want string
	if tag == "array" {
		toString := member(member(member(ident("Object"), "prototype"), "toString"), "call")
		query = &estree.CallExpression{Callee: toString, Arguments: []estree.Expression{arg}}
		want = "[object Array]"
	} else {
		query = &estree.UnaryExpression{Operator: "typeof", Prefix: true, Argument: arg}
		want = tag
	}
	check := &estree.BinaryExpression{Operator: "===", Left: query, Right: &estree.Literal{Value: want}}
	return Single{at(c, check, l.Loc)}, nil
}

// writeGet lowers (get object property). A bare symbol property is a dotted
// access; anything else is computed.
func (c *Compiler) writeGet(name string, l *reader.List, args []reader.Form) (result, error) {
	if len(args) != 2 {
		return nil, arityError(l, name, "expected exactly 2 arguments", len(args))
	}
	object, err := c.expr(args[0])
	if err != nil {
		return nil, err
	}

	m := &estree.MemberExpression{Object: object}
	if sym, ok := args[1].(*reader.Symbol); ok && !reserved(sym.Name) {
		m.Property = c.ident(sym)
	} else {
		m.Property, err = c.expr(args[1])
		if err != nil {
			return nil, err
		}
		m.Computed = true
	}
	return Single{at(c, m, l.Loc)}, nil
}

// bindingName checks that f is a symbol usable as a variable name.
func (c *Compiler) bindingName(f reader.Form, form string) (*estree.Identifier, error) {
	sym, ok := f.(*reader.Symbol)
	if !ok {
		return nil, shapeError(f, form, "expected a symbol, got %s", f)
	}
	if reserved(sym.Name) || sym.Name == "." {
		return nil, shapeError(f, form, "%s cannot be used as a name", sym.Name)
	}
	return c.ident(sym), nil
}

func reserved(name string) bool {
	return name == reader.NullName || name == reader.TrueName || name == reader.FalseName
}

func ident(name string) *estree.Identifier {
	return &estree.Identifier{Name: name}
}

func member(object estree.Expression, property string) *estree.MemberExpression {
	return &estree.MemberExpression{Object: object, Property: ident(property)}
}
