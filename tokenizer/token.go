package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrInvalidNumber       = errors.New("invalid number format")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	NEWLINE
	WORD   // category names such as seed-to-soil
	NUMBER // unsigned integer literals
	COLON  // :

	// Keywords
	SEEDS // seeds
	MAP   // map

	// Comments
	LINE_COMMENT // # ...
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case NEWLINE:
		return "NEWLINE"
	case WORD:
		return "WORD"
	case NUMBER:
		return "NUMBER"
	case COLON:
		return "COLON"
	case SEEDS:
		return "SEEDS"
	case MAP:
		return "MAP"
	case LINE_COMMENT:
		return "LINE_COMMENT"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source text
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
