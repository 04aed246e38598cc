package compiler

import "fmt"

// Special identifies a special form. The set is closed: LookupSpecial is the
// only way to obtain one and writeSpecial handles every value.
type Special int

const (
	SpecialDef Special = iota + 1
	SpecialSet
	SpecialIf
	SpecialFunction
	SpecialNew
	SpecialOperator     // n-ary binary operators and instanceof
	SpecialUnary        // typeof, void
	SpecialThrow
	SpecialTry
	SpecialLiteralCheck // null? true? false?
	SpecialTypeCheck    // undefined? boolean? number? string? object? array? function?
	SpecialImport
	SpecialGet
	SpecialObject // (object k v ...), the list spelling of {k v ...}
)

// LookupSpecial reports which special form name denotes, if any.
// A name that is not special makes its list an ordinary call.
func LookupSpecial(name string) (Special, bool) {
	switch name {
	case "def":
		return SpecialDef, true
	case "set!":
		return SpecialSet, true
	case "if":
		return SpecialIf, true
	case "function":
		return SpecialFunction, true
	case "new":
		return SpecialNew, true
	case "+", "-", "*", "/", "%",
		"<", "<=", ">", ">=",
		"==", "===", "!=", "!==",
		"||", "&&",
		"instanceof":
		return SpecialOperator, true
	case "typeof", "void":
		return SpecialUnary, true
	case "throw":
		return SpecialThrow, true
	case "try":
		return SpecialTry, true
	case "null?", "true?", "false?":
		return SpecialLiteralCheck, true
	case "undefined?", "boolean?", "number?", "string?", "object?", "array?", "function?":
		return SpecialTypeCheck, true
	case "import":
		return SpecialImport, true
	case "get":
		return SpecialGet, true
	case "object":
		return SpecialObject, true
	}
	return 0, false
}

func (s Special) String() string {
	switch s {
	case SpecialDef:
		return "def"
	case SpecialSet:
		return "set!"
	case SpecialIf:
		return "if"
	case SpecialFunction:
		return "function"
	case SpecialNew:
		return "new"
	case SpecialOperator:
		return "operator"
	case SpecialUnary:
		return "unary operator"
	case SpecialThrow:
		return "throw"
	case SpecialTry:
		return "try"
	case SpecialLiteralCheck:
		return "literal check"
	case SpecialTypeCheck:
		return "type check"
	case SpecialImport:
		return "import"
	case SpecialGet:
		return "get"
	case SpecialObject:
		return "object"
	}
	return fmt.Sprintf("Special(%d)", int(s))
}
