package compiler

import (
	"errors"
	"reflect"
	"testing"

	"solo/pkg/estree"
)

func TestFunction(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Anonymous", "(function (a b) (+ a b))", "function(a, b) { return (a + b); };"},
		{"Named", "(function fact (n) (if (<= n 1) 1 (* n (fact (- n 1)))))",
			"function fact(n) { return ((n <= 1) ? 1 : (n * fact((n - 1)))); };"},
		{"No parameters", "(function () 1)", "function() { return 1; };"},
		{"Several body forms", "(function (a) (f a) (g a) a)", "function(a) { f(a); g(a); return a; };"},
		{"Statement last", "(function () (def x 1))", "function() { var x = 1; };"},
		{"Throw last", "(function (e) (throw e))", "function(e) { throw e; };"},
		{"Rest", "(function (a . rest) a)",
			"function(a) { var rest = Array.prototype.slice.call(arguments, 1); return a; };"},
		{"Rest only", "(function (. args) args)",
			"function() { var args = Array.prototype.slice.call(arguments, 0); return args; };"},
		{"Import in body", `(function () (import ("fs")) fs)`, `function() { var fs = require("fs"); return fs; };`},
		{"Nested", "(function (a) (function (b) (+ a b)))", "function(a) { return function(b) { return (a + b); }; };"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog := compileString(t, tc.input, plain())
			if got := prog.String(); got != tc.want {
				t.Errorf("Compile(%q) =\n  %q\nwant\n  %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFunction_Shape(t *testing.T) {
	prog := compileString(t, "(function (a b) (+ a b))", plain())
	fn := prog.Body[0].(*estree.ExpressionStatement).Expression.(*estree.FunctionExpression)

	if fn.ID != nil {
		t.Errorf("Expected an anonymous function, got id %v", fn.ID)
	}
	wantParams := []*estree.Identifier{{Name: "a"}, {Name: "b"}}
	if !reflect.DeepEqual(fn.Params, wantParams) {
		t.Errorf("Params = %v, want %v", fn.Params, wantParams)
	}
	if len(fn.Body.Body) != 1 {
		t.Fatalf("Expected 1 body statement, got %d", len(fn.Body.Body))
	}
	ret, ok := fn.Body.Body[0].(*estree.ReturnStatement)
	if !ok {
		t.Fatalf("Expected *ReturnStatement, got %T", fn.Body.Body[0])
	}
	want := &estree.BinaryExpression{Operator: "+", Left: &estree.Identifier{Name: "a"}, Right: &estree.Identifier{Name: "b"}}
	if !reflect.DeepEqual(ret.Argument, want) {
		t.Errorf("Return argument = %v, want %v", ret.Argument, want)
	}
}

func TestFunction_RestBinding(t *testing.T) {
	opts := plain()
	opts.DeclarationKind = "let"
	prog := compileString(t, "(function (a b . more) more)", opts)
	fn := prog.Body[0].(*estree.ExpressionStatement).Expression.(*estree.FunctionExpression)

	if want := (&estree.RestBinding{Name: "more", Index: 2}); !reflect.DeepEqual(fn.Rest, want) {
		t.Errorf("Rest = %+v, want %+v", fn.Rest, want)
	}
	if len(fn.Params) != 2 {
		t.Errorf("Expected 2 fixed params, got %v", fn.Params)
	}
	first := fn.Body.Body[0].String()
	if want := "let more = Array.prototype.slice.call(arguments, 2);"; first != want {
		t.Errorf("First body statement = %q, want %q", first, want)
	}
}

func TestFunction_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"Nothing", "(function)", ErrArity},
		{"Name only", "(function f)", ErrShape},
		{"No body", "(function (a))", ErrArity},
		{"Named without body", "(function f (a))", ErrArity},
		{"Params not a list", "(function [a] a)", ErrShape},
		{"Number param", "(function (1) 1)", ErrShape},
		{"Reserved param", "(function (true) 1)", ErrShape},
		{"Reserved name", "(function null () 1)", ErrShape},
		{"Marker without name", "(function (a .) a)", ErrShape},
		{"Marker too early", "(function (. a b) a)", ErrShape},
		{"Two markers", "(function (a . . b) a)", ErrShape},
		{"Rest name not a symbol", "(function (a . 1) a)", ErrShape},
		{"Bad body", "(function () (if 1))", ErrArity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := compileErr(t, tc.input)
			if !errors.Is(err, tc.kind) {
				t.Errorf("Compile(%q) error = %v, want kind %v", tc.input, err, tc.kind.(*CompileError).Kind)
			}
		})
	}
}
