package ast

type AssignType int

const (
	// Special / error
	ILLEGAL_ASSIGN AssignType = iota
	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	MULTIPLY_ASSIGN
	DIVIDE_ASSIGN
	POW_ASSIGN
)

func (a AssignType) String() string {
	switch a {
	case ASSIGN:
		return "="
	case PLUS_ASSIGN:
		return "+="
	case MINUS_ASSIGN:
		return "-="
	case MULTIPLY_ASSIGN:
		return "*="
	case DIVIDE_ASSIGN:
		return "/="
	case POW_ASSIGN:
		return "^="
	default:
		return "?="
	}
}
