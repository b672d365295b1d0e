package ast

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota

	// Declarations
	FILE
	TYPE
	VARIABLE
	FUNCTION

	// Statements
	BLOCK
	IF_STMT
	RETURN_STMT
	EXPR_STMT

	// Expressions
	IDENT_EXPR
	NUMBER_LITERAL
	STRING_LITERAL
	BOOL_LITERAL
	UNARY_EXPR
	BINARY_EXPR
	ASSIGN_EXPR
	CALL_EXPR
	FIELD_ACCESS_EXPR
	INDEX_EXPR
	PAREN_EXPR
	FUNCTION_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:           "ILLEGAL",
	FILE:              "FILE",
	TYPE:              "TYPE",
	VARIABLE:          "VARIABLE",
	FUNCTION:          "FUNCTION",
	BLOCK:             "BLOCK",
	IF_STMT:           "IF_STMT",
	RETURN_STMT:       "RETURN_STMT",
	EXPR_STMT:         "EXPR_STMT",
	IDENT_EXPR:        "IDENT_EXPR",
	NUMBER_LITERAL:    "NUMBER_LITERAL",
	STRING_LITERAL:    "STRING_LITERAL",
	BOOL_LITERAL:      "BOOL_LITERAL",
	UNARY_EXPR:        "UNARY_EXPR",
	BINARY_EXPR:       "BINARY_EXPR",
	ASSIGN_EXPR:       "ASSIGN_EXPR",
	CALL_EXPR:         "CALL_EXPR",
	FIELD_ACCESS_EXPR: "FIELD_ACCESS_EXPR",
	INDEX_EXPR:        "INDEX_EXPR",
	PAREN_EXPR:        "PAREN_EXPR",
	FUNCTION_EXPR:     "FUNCTION_EXPR",
}

func (nt NodeType) String() string {
	if nt >= 0 && int(nt) < len(nodeTypeNames) {
		return nodeTypeNames[nt]
	}
	return "ILLEGAL"
}
