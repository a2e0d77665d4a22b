package tokenizer

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTokenIterator(t *testing.T) {
	src := "seeds: 79 14\n\nseed-to-soil map:\n50 98 2\n"
	tokenizer := NewAlmanacTokenizer(src)

	expectedTypes := []TokenType{
		SEEDS, COLON, WHITESPACE, NUMBER, WHITESPACE, NUMBER, NEWLINE,
		NEWLINE,
		WORD, WHITESPACE, MAP, COLON, NEWLINE,
		NUMBER, WHITESPACE, NUMBER, WHITESPACE, NUMBER, NEWLINE,
		EOF,
	}

	var actualTypes []TokenType
	for token, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		actualTypes = append(actualTypes, token.Type)

		if token.Type == EOF {
			break
		}
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorWithOptions(t *testing.T) {
	src := "# header\nseeds: 1 2 # trailing\n"
	tokenizer := NewAlmanacTokenizer(src, TokenizerOptions{
		SkipWhitespace: true,
		SkipComments:   true,
	})

	tokens, err := tokenizer.AllTokens()
	assert.NoError(t, err)

	var actualTypes []TokenType
	for _, token := range tokens {
		actualTypes = append(actualTypes, token.Type)
	}

	assert.Equal(t, []TokenType{NEWLINE, SEEDS, COLON, NUMBER, NUMBER, NEWLINE, EOF}, actualTypes)
}

func TestIteratorEarlyTermination(t *testing.T) {
	tokenizer := NewAlmanacTokenizer("seeds: 1 2 3 4 5 6")

	count := 0
	for _, err := range tokenizer.Tokens() {
		assert.NoError(t, err)

		count++

		if count >= 5 {
			break
		}
	}

	assert.Equal(t, 5, count)
}

func TestWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Token
	}{
		{
			name:     "category pair",
			input:    "seed-to-soil",
			expected: Token{Type: WORD, Value: "seed-to-soil", Position: Position{Line: 1, Column: 1, Offset: 0}},
		},
		{
			name:     "keyword is case-insensitive",
			input:    "Seeds",
			expected: Token{Type: SEEDS, Value: "Seeds", Position: Position{Line: 1, Column: 1, Offset: 0}},
		},
		{
			name:     "map keyword",
			input:    "map",
			expected: Token{Type: MAP, Value: "map", Position: Position{Line: 1, Column: 1, Offset: 0}},
		},
		{
			name:     "number",
			input:    "4294967296",
			expected: Token{Type: NUMBER, Value: "4294967296", Position: Position{Line: 1, Column: 1, Offset: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewAlmanacTokenizer(tt.input).AllTokens()
			assert.NoError(t, err)
			assert.Equal(t, 2, len(tokens))
			assert.Equal(t, tt.expected, tokens[0])
		})
	}
}

func TestPositions(t *testing.T) {
	tokens, err := NewAlmanacTokenizer("seeds: 1\n  23").AllTokens()
	assert.NoError(t, err)

	last := tokens[len(tokens)-2]
	assert.Equal(t, NUMBER, last.Type)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 11}, last.Position)

	newline := tokens[4]
	assert.Equal(t, NEWLINE, newline.Type)
	assert.Equal(t, Position{Line: 1, Column: 9, Offset: 8}, newline.Position)
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"negative sign", "seeds: -1", ErrUnexpectedCharacter},
		{"comma", "1,2", ErrUnexpectedCharacter},
		{"nul byte", "1 2\x00 3", ErrUnexpectedCharacter},
		{"decimal", "1.5", ErrInvalidNumber},
		{"glued letters", "12ab", ErrInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAlmanacTokenizer(tt.input).AllTokens()
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
		})
	}
}

func TestTokenString(t *testing.T) {
	token := Token{Type: NUMBER, Value: "42"}
	assert.Equal(t, "NUMBER: 42", token.String())
	assert.Equal(t, "UNKNOWN", TokenType(99).String())
}
