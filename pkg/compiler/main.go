// Package compiler lowers reader forms into an ESTree program.
//
// Pipeline: source text → reader.Read → forms → Compiler.Compile → estree.Program
//
// A list whose head symbol names a special form is desugared by the rule for
// that form; any other list is an ordinary call. Lowering is recursive over
// the form tree, so stack depth follows the nesting depth of the input.
package compiler
