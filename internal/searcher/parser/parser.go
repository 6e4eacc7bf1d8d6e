// Package parser lexes boolean query strings into operand and operator
// tokens.
//
// The query language is flat: whitespace and parentheses separate tokens
// outside quotes, doubled && and || are the binary AND/OR operators, and a
// single ! is the binary difference operator. Double quotes escape spaces,
// parentheses, and operator characters into one operand token; they carry
// no phrase-search meaning. Parentheses are lexed as tokens but provide no
// grouping, since the evaluator is a postfix stack machine with no
// precedence.
package parser

import (
	"unicode"
)

type Kind int

const (
	Operand Kind = iota
	And          // &&
	Or           // ||
	Diff         // !  (binary: left minus right)
	LParen
	RParen
)

// Token is one lexed query element.
type Token struct {
	Kind Kind
	Text string
}

func isOperatorRune(r rune) bool {
	return r == '&' || r == '|' || r == '!'
}

// Parse lexes a query into tokens. It never fails: unrecognised input
// simply becomes operand tokens that will miss the vocabulary.
func Parse(query string) []Token {
	runes := []rune(query)
	tokens := make([]Token, 0, 8)
	var cur []rune
	inQuotes := false

	flush := func() {
		if len(cur) == 0 {
			return
		}
		tokens = append(tokens, Token{Kind: Operand, Text: string(cur)})
		cur = cur[:0]
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
			// quoted characters are always literal, operators included
			cur = append(cur, r)
		case unicode.IsSpace(r):
			flush()
		case r == '(':
			flush()
			tokens = append(tokens, Token{Kind: LParen, Text: "("})
		case r == ')':
			flush()
			tokens = append(tokens, Token{Kind: RParen, Text: ")"})
		case isOperatorRune(r):
			flush()
			if i+1 < len(runes) && runes[i+1] == r {
				// doubled operator rune: && and || are operators, any
				// other doubling is an ordinary operand token
				tokens = append(tokens, operatorToken(string(r)+string(r)))
				i++
			} else {
				tokens = append(tokens, operatorToken(string(r)))
			}
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return tokens
}

func operatorToken(text string) Token {
	switch text {
	case "&&":
		return Token{Kind: And, Text: text}
	case "||":
		return Token{Kind: Or, Text: text}
	case "!":
		return Token{Kind: Diff, Text: text}
	default:
		// a lone & or |, or a doubled !!: not an operator in this language
		return Token{Kind: Operand, Text: text}
	}
}
