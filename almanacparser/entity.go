package almanacparser

import (
	pc "github.com/shibukawa/parsercombinator"
	tok "github.com/shibukawa/stagerange/tokenizer"
)

// Entity is the token type the line grammar works on.
type Entity struct {
	Original tok.Token // The original token from the tokenizer
	NewValue *lineNode // Set by the grammar once a whole line is recognized
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineSeeds
	lineHeader
	lineEntry
)

// lineNode is one classified input line
type lineNode struct {
	kind    lineKind
	name    tok.Token   // header only
	numbers []tok.Token // seeds and entry lines
}

func tokenToEntity(tokens []tok.Token) []pc.Token[Entity] {
	results := make([]pc.Token[Entity], 0, len(tokens))
	for _, token := range tokens {
		if token.Type == tok.EOF {
			continue
		}

		pcToken := pc.Token[Entity]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: Entity{Original: token},
			Raw: token.Value,
		}
		results = append(results, pcToken)
	}

	return results
}
