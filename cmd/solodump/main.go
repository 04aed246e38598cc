package main

import (
	"fmt"
	"os"

	"solo/pkg/compiler"
	"solo/pkg/estree"
	"solo/pkg/reader"
)

const testSource = `; sample
(import ("fs" refer (readFileSync)))
(def add (function (a b . more) (+ a b (get more 0))))
(add 1 2 3)
`

func main() {
	src := testSource
	uri := "<sample>"
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
		uri = os.Args[1]
	}

	fmt.Printf("Source:\n%s\n", src)

	// Read
	forms, err := reader.Read(src, uri)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(1)
	}

	fmt.Printf("Forms (%d)\n", len(forms))
	for _, f := range forms {
		fmt.Printf("  %-12s %s\n", f.Span().Start, f)
	}
	fmt.Println()

	// Compile
	opts := compiler.DefaultOptions()
	opts.Comments = true
	opts.UseStrict = true
	prog, err := compiler.New(opts).Compile(forms)
	if err != nil {
		fmt.Fprintln(os.Stderr, "compile error:", err)
		os.Exit(1)
	}

	fmt.Println("AST")
	for _, s := range prog.Body {
		fmt.Println(" ", s)
	}
	fmt.Println()

	out, err := estree.Encode(prog, "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode error:", err)
		os.Exit(1)
	}
	fmt.Println("ESTree")
	fmt.Print(string(out))
}
