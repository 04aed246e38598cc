package estree

import (
	"encoding/json"
	"strconv"
)

// Encode renders prog as indented JSON ending in a newline, ready to be
// written to a file.
func Encode(prog *Program, indent string) ([]byte, error) {
	out, err := json.MarshalIndent(prog, "", indent)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// marshalNode encodes v and prepends the ESTree "type" discriminator.
func marshalNode(typ string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	head := `{"type":` + strconv.Quote(typ)
	if len(body) <= 2 {
		return []byte(head + "}"), nil
	}
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head...)
	out = append(out, ',')
	return append(out, body[1:]...), nil
}

func (n *Program) MarshalJSON() ([]byte, error) {
	type plain Program
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *ExpressionStatement) MarshalJSON() ([]byte, error) {
	type plain ExpressionStatement
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *BlockStatement) MarshalJSON() ([]byte, error) {
	type plain BlockStatement
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *ReturnStatement) MarshalJSON() ([]byte, error) {
	type plain ReturnStatement
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *ThrowStatement) MarshalJSON() ([]byte, error) {
	type plain ThrowStatement
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *VariableDeclaration) MarshalJSON() ([]byte, error) {
	type plain VariableDeclaration
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *VariableDeclarator) MarshalJSON() ([]byte, error) {
	type plain VariableDeclarator
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *AssignmentExpression) MarshalJSON() ([]byte, error) {
	type plain AssignmentExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *ConditionalExpression) MarshalJSON() ([]byte, error) {
	type plain ConditionalExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *FunctionExpression) MarshalJSON() ([]byte, error) {
	type plain FunctionExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *BinaryExpression) MarshalJSON() ([]byte, error) {
	type plain BinaryExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *UnaryExpression) MarshalJSON() ([]byte, error) {
	type plain UnaryExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *NewExpression) MarshalJSON() ([]byte, error) {
	type plain NewExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *CallExpression) MarshalJSON() ([]byte, error) {
	type plain CallExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *MemberExpression) MarshalJSON() ([]byte, error) {
	type plain MemberExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *ArrayExpression) MarshalJSON() ([]byte, error) {
	type plain ArrayExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *ObjectExpression) MarshalJSON() ([]byte, error) {
	type plain ObjectExpression
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *Property) MarshalJSON() ([]byte, error) {
	type plain Property
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *Identifier) MarshalJSON() ([]byte, error) {
	type plain Identifier
	return marshalNode(n.Type(), (*plain)(n))
}

func (n *Literal) MarshalJSON() ([]byte, error) {
	type plain Literal
	return marshalNode(n.Type(), (*plain)(n))
}
