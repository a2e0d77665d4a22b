package tokenizer

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// AlmanacTokenizer is a tokenizer that returns an iterator
type AlmanacTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
}

// NewAlmanacTokenizer creates a new AlmanacTokenizer
func NewAlmanacTokenizer(input string, options ...TokenizerOptions) *AlmanacTokenizer {
	opts := TokenizerOptions{
		SkipWhitespace: false,
		SkipComments:   false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	return &AlmanacTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens
func (t *AlmanacTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:  t.input,
			offset: -1,
			line:   1,
			column: 0,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}
				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			// Filtering based on options
			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}
			if t.options.SkipComments && token.Type == LINE_COMMENT {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice. The first error stops the scan.
func (t *AlmanacTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 64)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input   string
	offset  int // offset of current
	line    int
	column  int
	current rune
	eof     bool
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	if t.eof {
		return t.newToken(EOF, ""), nil
	}

	switch t.current {
	case '\n':
		token := t.newToken(NEWLINE, "\n")
		t.readChar()
		return token, nil
	case ' ', '\t', '\r':
		return t.readWhitespace(), nil
	case ':':
		token := t.newToken(COLON, ":")
		t.readChar()
		return token, nil
	case '#':
		return t.readLineComment(), nil
	default:
		if unicode.IsLetter(t.current) || t.current == '_' {
			return t.readWord(), nil
		} else if isDigit(t.current) {
			return t.readNumber()
		}

		pos := t.position()
		ch := t.current
		t.readChar()
		return Token{}, fmt.Errorf("%w: %q at line %d, column %d", ErrUnexpectedCharacter, ch, pos.Line, pos.Column)
	}
}

// readChar advances to the next character
func (t *tokenizer) readChar() {
	if t.current == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}

	t.offset++
	if t.offset >= len(t.input) {
		t.current = 0
		t.eof = true
		return
	}

	t.current = rune(t.input[t.offset])
}

func (t *tokenizer) position() Position {
	return Position{
		Line:   t.line,
		Column: t.column,
		Offset: t.offset,
	}
}

func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{
		Type:     tokenType,
		Value:    value,
		Position: t.position(),
	}
}

// readWhitespace reads spaces and tabs; newlines are separate tokens
func (t *tokenizer) readWhitespace() Token {
	var builder strings.Builder
	start := t.position()

	for t.current == ' ' || t.current == '\t' || t.current == '\r' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{
		Type:     WHITESPACE,
		Value:    builder.String(),
		Position: start,
	}
}

// readWord reads category names and keywords
func (t *tokenizer) readWord() Token {
	var builder strings.Builder
	start := t.position()

	for unicode.IsLetter(t.current) || isDigit(t.current) || t.current == '_' || t.current == '-' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	word := builder.String()

	return Token{
		Type:     keywordTokenType(word),
		Value:    word,
		Position: start,
	}
}

// readNumber reads unsigned integer literals
func (t *tokenizer) readNumber() (Token, error) {
	var builder strings.Builder
	start := t.position()

	for isDigit(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	if unicode.IsLetter(t.current) || t.current == '.' {
		return Token{}, fmt.Errorf("%w: %s%c at line %d, column %d", ErrInvalidNumber, builder.String(), t.current, start.Line, start.Column)
	}

	return Token{
		Type:     NUMBER,
		Value:    builder.String(),
		Position: start,
	}, nil
}

// readLineComment reads a comment up to the end of the line
func (t *tokenizer) readLineComment() Token {
	var builder strings.Builder
	start := t.position()

	for !t.eof && t.current != '\n' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{
		Type:     LINE_COMMENT,
		Value:    builder.String(),
		Position: start,
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func keywordTokenType(word string) TokenType {
	switch strings.ToLower(word) {
	case "seeds":
		return SEEDS
	case "map":
		return MAP
	default:
		return WORD
	}
}
