package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []Token
	}{
		{
			name:  "bare terms",
			query: "cat dog",
			want: []Token{
				{Kind: Operand, Text: "cat"},
				{Kind: Operand, Text: "dog"},
			},
		},
		{
			name:  "doubled operators",
			query: "cat dog && bird ||",
			want: []Token{
				{Kind: Operand, Text: "cat"},
				{Kind: Operand, Text: "dog"},
				{Kind: And, Text: "&&"},
				{Kind: Operand, Text: "bird"},
				{Kind: Or, Text: "||"},
			},
		},
		{
			name:  "single bang is the difference operator",
			query: "cat dog !",
			want: []Token{
				{Kind: Operand, Text: "cat"},
				{Kind: Operand, Text: "dog"},
				{Kind: Diff, Text: "!"},
			},
		},
		{
			name:  "lone ampersand and pipe are operands",
			query: "a & b |",
			want: []Token{
				{Kind: Operand, Text: "a"},
				{Kind: Operand, Text: "&"},
				{Kind: Operand, Text: "b"},
				{Kind: Operand, Text: "|"},
			},
		},
		{
			name:  "doubled bang is an operand",
			query: "!!",
			want: []Token{
				{Kind: Operand, Text: "!!"},
			},
		},
		{
			name:  "operators split adjacent operands",
			query: "cat&&dog",
			want: []Token{
				{Kind: Operand, Text: "cat"},
				{Kind: And, Text: "&&"},
				{Kind: Operand, Text: "dog"},
			},
		},
		{
			name:  "parentheses are separate tokens",
			query: "(cat dog)",
			want: []Token{
				{Kind: LParen, Text: "("},
				{Kind: Operand, Text: "cat"},
				{Kind: Operand, Text: "dog"},
				{Kind: RParen, Text: ")"},
			},
		},
		{
			name:  "quotes escape spaces into one operand",
			query: `"new york" cat &&`,
			want: []Token{
				{Kind: Operand, Text: "new york"},
				{Kind: Operand, Text: "cat"},
				{Kind: And, Text: "&&"},
			},
		},
		{
			name:  "quotes escape operator characters",
			query: `"R&D"`,
			want: []Token{
				{Kind: Operand, Text: "R&D"},
			},
		},
		{
			name:  "quotes escape parentheses",
			query: `"(cat)"`,
			want: []Token{
				{Kind: Operand, Text: "(cat)"},
			},
		},
		{
			name:  "quote adjoins unquoted text into one token",
			query: `foo"bar baz"`,
			want: []Token{
				{Kind: Operand, Text: "foobar baz"},
			},
		},
		{
			name:  "cyrillic terms",
			query: "кошка собака &&",
			want: []Token{
				{Kind: Operand, Text: "кошка"},
				{Kind: Operand, Text: "собака"},
				{Kind: And, Text: "&&"},
			},
		},
		{
			name:  "empty query",
			query: "",
			want:  []Token{},
		},
		{
			name:  "whitespace only",
			query: "   \t  ",
			want:  []Token{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.query))
		})
	}
}
