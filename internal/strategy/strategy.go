// Package strategy implements the text-rewrite strategies applied when a
// rendered prompt exceeds its token budget.
package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/HartBrook/promptsmith/internal/token"
)

// Strategy is one member of the fixed, closed set of rewrite operations.
type Strategy string

const (
	ContradictionCheck  Strategy = "contradiction-check"
	LLMReview           Strategy = "llm-review"
	WhitespaceNormalize Strategy = "whitespace-normalize"
	SchemaSimplify      Strategy = "schema-simplify"
	ExampleReduce       Strategy = "example-reduce"
	ContextWindow       Strategy = "context-window"
	Truncate            Strategy = "truncate"

	// All is an alias that expands to every concrete strategy.
	All Strategy = "all"
)

// CanonicalOrder lists every concrete strategy from least to most
// destructive. Callers may select a subset but never reorder it.
var CanonicalOrder = []Strategy{
	ContradictionCheck,
	LLMReview,
	WhitespaceNormalize,
	SchemaSimplify,
	ExampleReduce,
	ContextWindow,
	Truncate,
}

// Parse converts a user-supplied name into a Strategy.
func Parse(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if s == All {
		return s, nil
	}
	for _, c := range CanonicalOrder {
		if s == c {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown strategy: %s", name)
}

// Expand replaces the "all" alias with every concrete strategy and returns
// the requested set filtered to canonical order. Duplicates collapse;
// request order is ignored.
func Expand(requested []Strategy) []Strategy {
	set := make(map[Strategy]bool, len(requested))
	for _, s := range requested {
		if s == All {
			for _, c := range CanonicalOrder {
				set[c] = true
			}
			continue
		}
		set[s] = true
	}

	out := make([]Strategy, 0, len(set))
	for _, c := range CanonicalOrder {
		if set[c] {
			out = append(out, c)
		}
	}
	return out
}

// Library applies strategies to a (system, user) prompt pair. Every
// application is total: malformed input degrades to a no-op for that
// strategy, never an error.
type Library struct {
	counter   token.Counter
	maxTokens int
	rules     []SchemaRule
	reviewer  Reviewer
}

// Option configures a Library.
type Option func(*Library)

// WithRules sets the schema rules used by contradiction-check.
func WithRules(rules []SchemaRule) Option {
	return func(l *Library) {
		l.rules = rules
	}
}

// WithReviewer sets the external completion client behind llm-review.
// Without one, llm-review is a no-op.
func WithReviewer(r Reviewer) Option {
	return func(l *Library) {
		l.reviewer = r
	}
}

// NewLibrary creates a Library bound to a token counter and budget.
func NewLibrary(counter token.Counter, maxTokens int, opts ...Option) *Library {
	l := &Library{
		counter:   counter,
		maxTokens: maxTokens,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Apply runs a single strategy over the pair and returns the rewritten
// pair. Unknown strategies are a no-op.
func (l *Library) Apply(ctx context.Context, s Strategy, system, user string) (string, string) {
	switch s {
	case ContradictionCheck:
		return l.checkContradictions(system), user
	case LLMReview:
		return l.review(ctx, system), user
	case WhitespaceNormalize:
		return NormalizeWhitespace(system), NormalizeWhitespace(user)
	case SchemaSimplify:
		return l.simplifySchemas(system), user
	case ExampleReduce:
		return l.reduceExamples(system), user
	case ContextWindow:
		return l.contextWindow(system, user)
	case Truncate:
		return l.truncate(system, user)
	}
	return system, user
}
