package main

import (
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"solo/pkg/compiler"
	"solo/pkg/config"
	"solo/pkg/estree"
	"solo/pkg/reader"
)

func TestGolden(t *testing.T) {
	sources, err := filepath.Glob("testdata/*.sl")
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) == 0 {
		t.Fatal("no testdata sources found")
	}

	// Project defaults, so every golden program starts with "use strict".
	opts := config.Default().Options()
	opts.Locations = false

	for _, srcPath := range sources {
		name := strings.TrimSuffix(filepath.Base(srcPath), ".sl")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(srcPath)
			if err != nil {
				t.Fatalf("Failed to read source: %v", err)
			}
			golden, err := os.ReadFile(strings.TrimSuffix(srcPath, ".sl") + ".golden")
			if err != nil {
				t.Fatalf("Failed to read golden file: %v", err)
			}

			prog, err := compiler.Compile(string(src), srcPath, opts)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if got, want := prog.String(), strings.TrimSpace(string(golden)); got != want {
				t.Errorf("Output mismatch.\nExpected:\n%s\nGot:\n%s", want, got)
			}

			// The encoded program must be valid JSON with a Program root.
			data, err := estree.Encode(prog, "  ")
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			var root struct {
				Type string            `json:"type"`
				Body []json.RawMessage `json:"body"`
			}
			if err := json.Unmarshal(data, &root); err != nil {
				t.Fatalf("Encoded program is not JSON: %v", err)
			}
			if root.Type != "Program" || len(root.Body) != len(prog.Body) {
				t.Errorf("Encoded root = %s with %d statements, want Program with %d", root.Type, len(root.Body), len(prog.Body))
			}
		})
	}
}

func TestPipelineErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		pos   string
	}{
		{"Stray closer", ")", reader.ErrUnmatchedDelimiter, "x.sl:1:0:"},
		{"Wrong closer", "(a ]", reader.ErrUnmatchedDelimiter, "x.sl:1:3:"},
		{"Open list", "(def x", reader.ErrUnterminatedCollection, "x.sl:"},
		{"Open string", `"abc`, reader.ErrUnterminatedString, "x.sl:"},
		{"Bad escape", `"\xZZ"`, reader.ErrInvalidEscape, "x.sl:"},
		{"If arity", "\n(if true 1)", compiler.ErrArity, "x.sl:2:0:"},
		{"Odd object", "(object a 1 b)", compiler.ErrShape, "x.sl:1:0:"},
		{"Try", "(try 1)", compiler.ErrNotImplemented, "x.sl:1:0:"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := compiler.Compile(tc.input, "x.sl", compiler.DefaultOptions())
			if err == nil {
				t.Fatalf("Compile(%q) = %v, want an error", tc.input, prog)
			}
			if !errors.Is(err, tc.kind) {
				t.Errorf("Compile(%q) error = %v, want %v", tc.input, err, tc.kind)
			}
			if !strings.Contains(err.Error(), tc.pos) {
				t.Errorf("Compile(%q) error = %q, want position %q", tc.input, err, tc.pos)
			}
		})
	}
}

func TestCompileFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "main.sl")
	if err := os.WriteFile(in, []byte("; hi\n(def x 1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(`{"comments": true, "declarationKind": "let",}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("", in)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if !cfg.Comments || cfg.DeclarationKind != "let" {
		t.Fatalf("Project file not picked up: %+v", cfg)
	}

	// Flags given on the command line win over solo.json; the rest keep the
	// file's values.
	fs := flag.NewFlagSet("solo", flag.ContinueOnError)
	fs.String("in", "", "")
	defineConfigFlags(fs)
	if err := fs.Parse([]string{"-in", in, "-kind", "const", "-locations=false"}); err != nil {
		t.Fatalf("flag parse failed: %v", err)
	}
	cfg, err = overrideConfig(cfg, fs)
	if err != nil {
		t.Fatalf("overrideConfig failed: %v", err)
	}
	if cfg.DeclarationKind != "const" || cfg.Locations || !cfg.Comments || !cfg.UseStrict {
		t.Fatalf("Flags not applied over the project file: %+v", cfg)
	}

	if err := compileFile(in, "", cfg, false); err != nil {
		t.Fatalf("compileFile failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "main.json"))
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"type": "VariableDeclaration"`, `"kind": "const"`, `"leadingComments"`, `"value": " hi"`, `"directive": "use strict"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"loc"`) {
		t.Errorf("-locations=false did not drop loc:\n%s", out)
	}

	formsOut := filepath.Join(dir, "forms.json")
	if err := compileFile(in, formsOut, cfg, true); err != nil {
		t.Fatalf("compileFile -forms failed: %v", err)
	}
	data, err = os.ReadFile(formsOut)
	if err != nil {
		t.Fatalf("Forms output not written: %v", err)
	}
	var forms []map[string]any
	if err := json.Unmarshal(data, &forms); err != nil {
		t.Fatalf("Forms output is not JSON: %v", err)
	}
	if len(forms) != 2 || forms[0]["type"] != "comment" || forms[1]["type"] != "list" {
		t.Errorf("Unexpected forms: %v", forms)
	}

	bad := filepath.Join(dir, "bad.sl")
	if err := os.WriteFile(bad, []byte("(if 1)"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := compileFile(bad, "", cfg, false); !errors.Is(err, compiler.ErrArity) {
		t.Errorf("compileFile(bad.sl) error = %v, want an arity error", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.json")); err == nil {
		t.Error("bad.json should not be written")
	}
}

func TestOverrideConfig(t *testing.T) {
	base := config.Default()
	base.DeclarationKind = "let"

	tests := []struct {
		name  string
		args  []string
		check func(config.Config) bool
		fails bool
	}{
		{"No flags keep the file", nil, func(c config.Config) bool { return c == base }, false},
		{"Loader", []string{"-loader", "load"}, func(c config.Config) bool { return c.ModuleLoader == "load" && c.DeclarationKind == "let" }, false},
		{"Strict off", []string{"-strict=false"}, func(c config.Config) bool { return !c.UseStrict }, false},
		{"Comments and indent", []string{"-comments", "-indent", "\t"}, func(c config.Config) bool { return c.Comments && c.Indent == "\t" }, false},
		{"Extension", []string{"-ext", ".lisp"}, func(c config.Config) bool { return c.Extension == ".lisp" }, false},
		{"Bad kind", []string{"-kind", "auto"}, nil, true},
		{"Bad loader", []string{"-loader", "my-require"}, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("solo", flag.ContinueOnError)
			defineConfigFlags(fs)
			if err := fs.Parse(tc.args); err != nil {
				t.Fatalf("flag parse failed: %v", err)
			}
			cfg, err := overrideConfig(base, fs)
			if tc.fails {
				if err == nil {
					t.Errorf("overrideConfig(%v) succeeded with %+v, want an error", tc.args, cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("overrideConfig(%v) failed: %v", tc.args, err)
			}
			if !tc.check(cfg) {
				t.Errorf("overrideConfig(%v) = %+v", tc.args, cfg)
			}
		})
	}
}
