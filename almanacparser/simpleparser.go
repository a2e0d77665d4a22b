package almanacparser

import (
	"slices"

	pc "github.com/shibukawa/parsercombinator"
	tok "github.com/shibukawa/stagerange/tokenizer"
)

func primitive(label string, types ...tok.TokenType) pc.Parser[Entity] {
	return pc.Trace(label, func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) (int, []pc.Token[Entity], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Original.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	})
}

func number() pc.Parser[Entity] {
	return primitive("number", tok.NUMBER)
}

func colon() pc.Parser[Entity] {
	return primitive("colon", tok.COLON)
}

func seedsKeyword() pc.Parser[Entity] {
	return primitive("seeds", tok.SEEDS)
}

func mapKeyword() pc.Parser[Entity] {
	return primitive("map", tok.MAP)
}

// categoryPair matches the x-to-y name of a map block.
func categoryPair() pc.Parser[Entity] {
	return primitive("category pair", tok.WORD)
}

func numbersOf(tokens []pc.Token[Entity]) []tok.Token {
	numbers := make([]tok.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Val.Original.Type == tok.NUMBER {
			numbers = append(numbers, t.Val.Original)
		}
	}

	return numbers
}

// node wraps a recognized line into a single token carrying its lineNode.
func node(tokens []pc.Token[Entity], n *lineNode) []pc.Token[Entity] {
	var pos *pc.Pos
	if len(tokens) > 0 {
		pos = tokens[0].Pos
	}

	return []pc.Token[Entity]{
		{
			Type: "line",
			Pos:  pos,
			Val:  Entity{NewValue: n},
		},
	}
}
