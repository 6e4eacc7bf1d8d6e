// Package executor evaluates lexed boolean queries against the inverted
// index.
//
// Evaluation is a single left-to-right pass over the token stream with a
// stack of posting lists: operands push, operators pop two and push one.
// The language has no precedence and no grouping, so the caller must order
// operands before the operator that combines them (postfix). Several
// behaviours are contract, not accident, and tests pin them down:
//
//   - an operand missing from the vocabulary pushes nothing, which shifts
//     the arity accounting of later operators;
//   - an operator with fewer than two stacked lists is a silent no-op;
//   - ! pops two lists and yields left minus right (binary "AND NOT",
//     not a unary negation);
//   - parenthesis tokens are skipped entirely.
package executor

import (
	"log/slog"

	"github.com/searchlab/wikisearch/internal/index"
	"github.com/searchlab/wikisearch/internal/searcher/parser"
	"github.com/searchlab/wikisearch/pkg/logger"
)

type Evaluator struct {
	inv    index.InvertedIndex
	logger *slog.Logger
}

func New(inv index.InvertedIndex) *Evaluator {
	return &Evaluator{
		inv:    inv,
		logger: logger.WithComponent("query-executor"),
	}
}

// Evaluate runs one query and returns the winning posting list, ascending
// and duplicate-free. An empty final stack yields the empty set.
func (e *Evaluator) Evaluate(query string) index.PostingList {
	tokens := parser.Parse(query)
	var stack []index.PostingList

	for _, tok := range tokens {
		switch tok.Kind {
		case parser.And, parser.Or, parser.Diff:
			if len(stack) < 2 {
				e.logger.Debug("operator with insufficient operands, skipping",
					"query", query,
					"operator", tok.Text,
				)
				continue
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			var result index.PostingList
			switch tok.Kind {
			case parser.And:
				result = Intersect(left, right)
			case parser.Or:
				result = Union(left, right)
			case parser.Diff:
				result = Difference(left, right)
			}
			stack = append(stack, result)
		case parser.LParen, parser.RParen:
			// grouping is not part of the language
		default:
			if postings, ok := e.inv[tok.Text]; ok {
				stack = append(stack, postings)
			} else {
				e.logger.Debug("term not in vocabulary", "term", tok.Text)
			}
		}
	}

	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}
