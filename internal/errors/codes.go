package errors

// Error codes for the Silicon front-end. They appear in rendered diagnostics
// and in LSP diagnostics so a problem can be looked up by code.
//
// Error code ranges:
// E0100-E0109: Parser errors
// E0110-E0199: Lexer errors
// E0300-E0399: Symbol table errors
// E0900-E0999: Tooling errors (configuration, file access)

const (
	// E0100: File does not start with a namespace declaration
	ErrorMissingNamespace = "E0100"

	// E0101: Token that no rule can accept at this point
	ErrorUnexpectedToken = "E0101"

	// E0102: Name declared twice at the top level, or imported twice
	ErrorDuplicateDeclaration = "E0102"

	// E0103: Declaration that parsed but violates a structural rule
	ErrorMalformedDeclaration = "E0103"

	// E0110: String literal without a closing quote
	ErrorUnterminatedString = "E0110"

	// E0111: Character that starts no token
	ErrorUnrecognizedCharacter = "E0111"

	// E0112: Integer literal that does not fit in 64 bits
	ErrorNumberOutOfRange = "E0112"

	// E0300: Canonical name with no declaration
	ErrorSymbolNotFound = "E0300"

	// E0301: Canonical name bound to a different kind of declaration
	ErrorSymbolWrongKind = "E0301"

	// E0900: Source file could not be read
	ErrorReadFailure = "E0900"

	// E0901: Invalid or incompatible configuration
	ErrorInvalidConfig = "E0901"

	// W0001: Hand-written parser and grammar disagree on a file
	WarningGrammarMismatch = "W0001"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorMissingNamespace:
		return "File must begin with a namespace declaration"
	case ErrorUnexpectedToken:
		return "Token is not valid at this position"
	case ErrorDuplicateDeclaration:
		return "Name is already declared in this file"
	case ErrorMalformedDeclaration:
		return "Declaration is structurally invalid"
	case ErrorUnterminatedString:
		return "String literal is missing its closing quote"
	case ErrorUnrecognizedCharacter:
		return "Character is not part of the language"
	case ErrorNumberOutOfRange:
		return "Integer literal does not fit in 64 bits"
	case ErrorSymbolNotFound:
		return "No declaration with this canonical name"
	case ErrorSymbolWrongKind:
		return "Declaration exists but is of a different kind"
	case ErrorReadFailure:
		return "Source file could not be read"
	case ErrorInvalidConfig:
		return "Configuration is invalid"
	case WarningGrammarMismatch:
		return "Grammar cross-check disagrees with the parser"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case IsWarning(code):
		return "Warning"
	case code >= "E0100" && code < "E0110":
		return "Parser"
	case code >= "E0110" && code < "E0200":
		return "Lexer"
	case code >= "E0300" && code < "E0400":
		return "Symbol Table"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
