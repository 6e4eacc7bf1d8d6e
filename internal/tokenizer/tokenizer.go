// Package tokenizer provides Unicode-aware text tokenisation for the search
// engine. It case-folds input, splits on non-alphanumeric boundaries, strips
// combining marks, and classifies each token by script for corpus statistics.
package tokenizer

import (
	"unicode"
)

// Script classifies which writing system a token belongs to.
type Script int

const (
	ScriptDigit Script = iota
	ScriptLatin
	ScriptCyrillic
	ScriptMixed
)

func (s Script) String() string {
	switch s {
	case ScriptDigit:
		return "digit"
	case ScriptLatin:
		return "latin"
	case ScriptCyrillic:
		return "cyrillic"
	default:
		return "mixed"
	}
}

// Token is a single normalised term and its ordinal position within the
// source document.
type Token struct {
	Term     string
	Position int
	Script   Script
}

func isCyrillic(r rune) bool {
	return (r >= 0x0400 && r <= 0x04FF) || (r >= 0x0500 && r <= 0x052F)
}

func isLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

func isTokenRune(r rune) bool {
	return unicode.IsDigit(r) || isLatin(r) || isCyrillic(r)
}

// Tokenize breaks text into lowercased tokens. Runs of digits, Latin
// letters, and Cyrillic letters form tokens; everything else separates.
// Combining marks are dropped without breaking the current token.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0, len(text)/8)
	var cur []rune
	pos := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		term := string(cur)
		tokens = append(tokens, Token{
			Term:     term,
			Position: pos,
			Script:   classify(cur),
		})
		pos++
		cur = cur[:0]
	}

	for _, r := range text {
		switch {
		case isCombiningMark(r):
			// part of the preceding letter, not a boundary
		case isTokenRune(r):
			cur = append(cur, unicode.ToLower(r))
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func classify(term []rune) Script {
	var digits, latin, cyrillic int
	for _, r := range term {
		switch {
		case unicode.IsDigit(r):
			digits++
		case isLatin(r):
			latin++
		case isCyrillic(r):
			cyrillic++
		}
	}
	switch {
	case digits == len(term):
		return ScriptDigit
	case latin > 0 && cyrillic == 0:
		return ScriptLatin
	case cyrillic > 0 && latin == 0:
		return ScriptCyrillic
	default:
		return ScriptMixed
	}
}
