package compiler

import (
	"errors"
	"strings"
	"testing"

	"solo/pkg/estree"
)

func TestImport(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Bare", `(import ("fs"))`, []string{`var fs = require("fs");`}},
		{"Alias", `(import ("fs" as files))`, []string{`var files = require("fs");`}},
		{"Refer one", `(import ("fs" refer (readFileSync)))`,
			[]string{`var readFileSync = require("fs").readFileSync;`}},
		{"Refer several", `(import ("path" refer (join dirname)))`, []string{
			`var join = require("path").join;`,
			`var dirname = require("path").dirname;`,
		}},
		{"Refer nothing", `(import ("fs" refer ()))`, nil},
		{"Several sub-forms", `(import ("fs") ("./lib/string-utils.js" as su) ("os" refer (EOL)))`, []string{
			`var fs = require("fs");`,
			`var su = require("./lib/string-utils.js");`,
			`var EOL = require("os").EOL;`,
		}},
		{"Derived name", `(import ("./lib/string-utils.js"))`, []string{`var stringUtils = require("./lib/string-utils.js");`}},
		{"No sub-forms", `(import)`, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog := compileString(t, tc.input, plain())
			var got []string
			for _, s := range prog.Body {
				if _, ok := s.(*estree.VariableDeclaration); !ok {
					t.Errorf("Import produced %T, want *VariableDeclaration", s)
				}
				got = append(got, s.String())
			}
			if strings.Join(got, "\n") != strings.Join(tc.want, "\n") {
				t.Errorf("Compile(%q) =\n%s\nwant\n%s", tc.input, strings.Join(got, "\n"), strings.Join(tc.want, "\n"))
			}
		})
	}
}

func TestImport_SplicedInOrder(t *testing.T) {
	prog := compileString(t, `(def a 1) (import ("x") ("y")) (def b 2)`, plain())
	want := "var a = 1;\nvar x = require(\"x\");\nvar y = require(\"y\");\nvar b = 2;"
	if got := prog.String(); got != want {
		t.Errorf("Compile =\n%s\nwant\n%s", got, want)
	}
}

func TestImport_Locations(t *testing.T) {
	opts := plain()
	opts.Locations = true
	prog := compileString(t, `(import ("fs"))`, opts)
	loc := prog.Body[0].Location()
	if loc == nil {
		t.Fatal("Expected a loc on the synthetic declaration")
	}
	// The synthetic def is located at its sub-form.
	if loc.Start != (estree.Position{Line: 1, Column: 8}) || loc.End != (estree.Position{Line: 1, Column: 14}) {
		t.Errorf("loc = %+v, want 1:8-1:14", loc)
	}
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"Not a list", `(import "fs")`, "import: argument 1: expected a list"},
		{"Empty sub-form", `(import ())`, "import: argument 1: missing module specifier"},
		{"Symbol specifier", `(import (fs))`, "import: argument 1: module specifier must be a string"},
		{"Unknown tail", `(import ("fs") ("os" with x))`, "import: argument 2: unrecognised import shape"},
		{"Alias missing", `(import ("fs" as))`, "import: argument 1: as takes exactly one alias"},
		{"Alias not a symbol", `(import ("fs" as "f"))`, "import: argument 1: alias must be a symbol"},
		{"Refer without list", `(import ("fs" refer readFileSync))`, "import: argument 1: refer must be followed by a list"},
		{"Refer of a string", `(import ("fs" refer ("x")))`, "import: argument 1: referred name must be a symbol"},
		{"Underivable name", `(import ("..."))`, "import: argument 1: cannot derive a name"},
		{"Reserved derived name", `(import ("./null.js"))`, "import: argument 1: cannot derive a name"},
		{"Reserved alias", `(import ("fs" as null))`, "import: argument 1: null cannot be used as a name"},
		{"Marker alias", `(import ("fs" as .))`, "import: argument 1: . cannot be used as a name"},
		{"Reserved referred name", `(import ("fs") ("os" refer (EOL true)))`, "import: argument 2: true cannot be used as a name"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := compileErr(t, tc.input)
			if !errors.Is(err, ErrShape) {
				t.Errorf("Compile(%q) error = %v, want a shape error", tc.input, err)
			}
			if !strings.Contains(err.Message, tc.message) {
				t.Errorf("Message = %q, want it to contain %q", err.Message, tc.message)
			}
		})
	}
}

func TestModuleIdent(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"fs", "fs"},
		{"node:fs", "node_fs"},
		{"lodash/fp", "fp"},
		{"@scope/pkg", "pkg"},
		{"./lib/string-utils.js", "stringUtils"},
		{"./data.json", "data"},
		{"./main.sl", "main"},
		{"lodash.debounce", "lodash_debounce"},
		{"2d-context", "_2dContext"},
		{"-leading", "leading"},
		{"$", "$"},
		{"...", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			if got := moduleIdent(tc.spec); got != tc.want {
				t.Errorf("moduleIdent(%q) = %q, want %q", tc.spec, got, tc.want)
			}
		})
	}
}
