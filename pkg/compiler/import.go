package compiler

import (
	"path"
	"strings"
	"unicode"

	"solo/pkg/reader"
)

// writeImport expands every sub-form into synthetic def forms:
//
//	("fs")                   =>  (def fs (require "fs"))
//	("fs" as files)          =>  (def files (require "fs"))
//	("fs" refer (a b))       =>  (def a (get (require "fs") a))
//	                             (def b (get (require "fs") b))
//
// The loader name comes from Options.ModuleLoader.
func (c *Compiler) writeImport(name string, l *reader.List, args []reader.Form) (result, error) {
	stmts := Many{}
	for i, arg := range args {
		pos := i + 1
		sub, ok := arg.(*reader.List)
		if !ok {
			return nil, shapeError(arg, name, "argument %d: expected a list, got %s", pos, arg)
		}
		items := significant(sub.Items)
		if len(items) == 0 {
			return nil, shapeError(sub, name, "argument %d: missing module specifier", pos)
		}
		spec, ok := items[0].(*reader.String)
		if !ok {
			return nil, shapeError(items[0], name, "argument %d: module specifier must be a string, got %s", pos, items[0])
		}

		defs, err := c.importDefs(name, pos, sub, spec, items[1:])
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			res, err := c.writeForm(def)
			if err != nil {
				return nil, err
			}
			stmts.Stmts = append(stmts.Stmts, c.statements(res, def)...)
		}
	}
	return stmts, nil
}

// importDefs builds the def forms for one import sub-form. Synthetic forms
// carry the span of the sub-form they came from.
func (c *Compiler) importDefs(name string, pos int, sub *reader.List, spec *reader.String, tail []reader.Form) ([]reader.Form, error) {
	loc := sub.Loc
	sym := func(s string) *reader.Symbol { return &reader.Symbol{Name: s, Loc: loc} }
	load := func() reader.Form {
		return &reader.List{Items: []reader.Form{sym(c.opts.ModuleLoader), &reader.String{Value: spec.Value, Loc: spec.Loc}}, Loc: loc}
	}
	def := func(binding *reader.Symbol, init reader.Form) reader.Form {
		return &reader.List{Items: []reader.Form{sym("def"), binding, init}, Loc: loc}
	}
	binding := func(f reader.Form, what string) (*reader.Symbol, error) {
		s, ok := f.(*reader.Symbol)
		if !ok {
			return nil, shapeError(f, name, "argument %d: %s must be a symbol, got %s", pos, what, f)
		}
		if reserved(s.Name) || s.Name == variadicMarker {
			return nil, shapeError(f, name, "argument %d: %s cannot be used as a name", pos, s.Name)
		}
		return s, nil
	}

	switch {
	case len(tail) == 0:
		id := moduleIdent(spec.Value)
		if id == "" || reserved(id) {
			return nil, shapeError(spec, name, "argument %d: cannot derive a name from module %q", pos, spec.Value)
		}
		return []reader.Form{def(sym(id), load())}, nil

	case reader.IsSymbol(tail[0], "as"):
		if len(tail) != 2 {
			return nil, shapeError(sub, name, "argument %d: as takes exactly one alias", pos)
		}
		alias, err := binding(tail[1], "alias")
		if err != nil {
			return nil, err
		}
		return []reader.Form{def(alias, load())}, nil

	case reader.IsSymbol(tail[0], "refer"):
		if len(tail) != 2 {
			return nil, shapeError(sub, name, "argument %d: refer takes exactly one list of names", pos)
		}
		names, ok := tail[1].(*reader.List)
		if !ok {
			return nil, shapeError(tail[1], name, "argument %d: refer must be followed by a list, got %s", pos, tail[1])
		}
		var defs []reader.Form
		for _, n := range significant(names.Items) {
			ref, err := binding(n, "referred name")
			if err != nil {
				return nil, err
			}
			get := &reader.List{Items: []reader.Form{sym("get"), load(), ref}, Loc: loc}
			defs = append(defs, def(ref, get))
		}
		return defs, nil
	}
	return nil, shapeError(tail[0], name, "argument %d: unrecognised import shape %s", pos, sub)
}

var moduleExtensions = []string{".js", ".mjs", ".cjs", ".json", ".sl"}

// moduleIdent derives a binding name from a module specifier:
// "fs" => fs, "./lib/string-utils.js" => stringUtils, "@scope/2d" => _2d.
func moduleIdent(spec string) string {
	base := path.Base(spec)
	for _, ext := range moduleExtensions {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}

	var b strings.Builder
	upper := false
	for _, r := range base {
		switch {
		case r == '-':
			upper = b.Len() > 0
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$':
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		default:
			upper = false
			b.WriteRune('_')
		}
	}
	id := b.String()
	if strings.Trim(id, "_") == "" {
		return ""
	}
	if first := []rune(id)[0]; unicode.IsDigit(first) {
		id = "_" + id
	}
	return id
}
