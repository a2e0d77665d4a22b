// Package almanacparser reads the almanac text format:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// The input is split into lines, every line is classified by a small
// grammar, and the classified lines are then assembled into a Document.
// Comments start with '#' and run to the end of the line.
package almanacparser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	pc "github.com/shibukawa/parsercombinator"
	"github.com/shibukawa/stagerange/mapping"
	tok "github.com/shibukawa/stagerange/tokenizer"
)

// Sentinel errors
var (
	ErrInvalidSyntax = errors.New("invalid almanac syntax")
	ErrInvalidNumber = errors.New("invalid number")
	ErrMissingSeeds  = errors.New("seeds line not found")
)

const categorySeparator = "-to-"

// Document is the parsed form of an almanac.
type Document struct {
	Seeds []int64
	// SeedsLine is the 1-based line of the seeds declaration.
	SeedsLine int
	Maps      []MapBlock
}

// MapBlock is one "<from>-to-<to> map:" block.
type MapBlock struct {
	Name    string
	From    string
	To      string
	Line    int
	Entries []mapping.Triple
}

var lineParser pc.Parser[Entity]

func init() {
	seedsLine := pc.Trans(
		pc.Seq(seedsKeyword(), colon(), pc.ZeroOrMore("seed", number())),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			return node(tokens, &lineNode{kind: lineSeeds, numbers: numbersOf(tokens)}), nil
		},
	)

	headerLine := pc.Trans(
		pc.Seq(categoryPair(), mapKeyword(), colon()),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			return node(tokens, &lineNode{kind: lineHeader, name: tokens[0].Val.Original}), nil
		},
	)

	entryLine := pc.Trans(
		pc.Seq(number(), number(), number()),
		func(pctx *pc.ParseContext[Entity], tokens []pc.Token[Entity]) ([]pc.Token[Entity], error) {
			return node(tokens, &lineNode{kind: lineEntry, numbers: numbersOf(tokens)}), nil
		},
	)

	lineParser = pc.Seq(
		pc.Or(seedsLine, headerLine, entryLine),
		pc.EOS[Entity](),
	)
}

// Parse reads an almanac document from src.
func Parse(src string) (*Document, error) {
	tokens, err := tok.NewAlmanacTokenizer(src, tok.TokenizerOptions{
		SkipWhitespace: true,
		SkipComments:   true,
	}).AllTokens()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}

	lines, err := classifyLines(tokens)
	if err != nil {
		return nil, err
	}

	return assemble(lines)
}

type classifiedLine struct {
	number int
	node   *lineNode
}

// classifyLines splits the token stream at NEWLINE tokens and runs the line
// grammar on every non-empty line.
func classifyLines(tokens []tok.Token) ([]classifiedLine, error) {
	var (
		results []classifiedLine
		current []tok.Token
	)

	lineNumber := 1

	flush := func() error {
		if len(current) == 0 {
			return nil
		}

		n, err := classify(current)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}

		results = append(results, classifiedLine{number: lineNumber, node: n})

		return nil
	}

	for _, t := range tokens {
		switch t.Type {
		case tok.NEWLINE, tok.EOF:
			if err := flush(); err != nil {
				return nil, err
			}

			current = current[:0]
			lineNumber = t.Position.Line + 1
		default:
			if len(current) == 0 {
				lineNumber = t.Position.Line
			}

			current = append(current, t)
		}
	}

	return results, nil
}

func classify(tokens []tok.Token) (*lineNode, error) {
	pctx := pc.NewParseContext[Entity]()

	consumed, parsed, err := lineParser(pctx, tokenToEntity(tokens))
	if err != nil || consumed != len(tokens) || len(parsed) == 0 || parsed[0].Val.NewValue == nil {
		return nil, fmt.Errorf("%w: unexpected %s", ErrInvalidSyntax, describe(tokens))
	}

	return parsed[0].Val.NewValue, nil
}

func describe(tokens []tok.Token) string {
	values := make([]string, 0, len(tokens))
	for _, t := range tokens {
		values = append(values, t.Value)
	}

	return strconv.Quote(strings.Join(values, " "))
}

// assemble groups entry lines under their header.
func assemble(lines []classifiedLine) (*Document, error) {
	doc := &Document{}
	seedsFound := false

	for _, line := range lines {
		switch line.node.kind {
		case lineSeeds:
			if seedsFound {
				return nil, fmt.Errorf("%w: line %d: seeds declared twice", ErrInvalidSyntax, line.number)
			}

			if len(doc.Maps) > 0 {
				return nil, fmt.Errorf("%w: line %d: seeds must come before the first map", ErrInvalidSyntax, line.number)
			}

			seeds, err := parseNumbers(line.number, line.node.numbers)
			if err != nil {
				return nil, err
			}

			doc.Seeds = seeds
			doc.SeedsLine = line.number
			seedsFound = true

		case lineHeader:
			name := line.node.name.Value

			from, to, ok := strings.Cut(name, categorySeparator)
			if !ok || from == "" || to == "" {
				return nil, fmt.Errorf("%w: line %d: map name %q must look like <from>-to-<to>", ErrInvalidSyntax, line.number, name)
			}

			doc.Maps = append(doc.Maps, MapBlock{
				Name: name,
				From: from,
				To:   to,
				Line: line.number,
			})

		case lineEntry:
			if len(doc.Maps) == 0 {
				return nil, fmt.Errorf("%w: line %d: rule outside of a map block", ErrInvalidSyntax, line.number)
			}

			values, err := parseNumbers(line.number, line.node.numbers)
			if err != nil {
				return nil, err
			}

			block := &doc.Maps[len(doc.Maps)-1]
			block.Entries = append(block.Entries, mapping.Triple{
				Dest:   values[0],
				Source: values[1],
				Length: values[2],
			})
		}
	}

	if !seedsFound {
		return nil, ErrMissingSeeds
	}

	return doc, nil
}

func parseNumbers(line int, tokens []tok.Token) ([]int64, error) {
	values := make([]int64, 0, len(tokens))

	for _, t := range tokens {
		v, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d, column %d: %s", ErrInvalidNumber, line, t.Position.Column, t.Value)
		}

		values = append(values, v)
	}

	return values, nil
}
