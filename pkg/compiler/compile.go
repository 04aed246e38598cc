package compiler

import (
	"fmt"

	"solo/pkg/estree"
	"solo/pkg/reader"
)

// Compile reads src and lowers it to an ESTree program. uri identifies the
// source in locations and diagnostics.
func Compile(src string, uri string, opts Options) (*estree.Program, error) {
	forms, err := reader.Read(src, uri)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	prog, err := New(opts).Compile(forms)
	if err != nil {
		return nil, fmt.Errorf("compile error: %w", err)
	}
	return prog, nil
}
