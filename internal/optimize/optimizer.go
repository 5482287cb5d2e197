// Package optimize renders prompt templates and applies token-budget
// optimization.
package optimize

import (
	"context"
	"time"

	"github.com/HartBrook/promptsmith/internal/strategy"
	"github.com/HartBrook/promptsmith/internal/template"
	"github.com/HartBrook/promptsmith/internal/token"
	"github.com/HartBrook/promptsmith/internal/usage"
)

// Options controls a single CreatePrompt call.
type Options struct {
	// Optimize enables the strategy pipeline when the rendered pair is
	// over budget.
	Optimize bool
	// Strategies selects which strategies may run. The "all" alias
	// expands here, at the orchestrator boundary. Order is ignored;
	// strategies always run in canonical order.
	Strategies []strategy.Strategy
	// Variables fill the template's placeholders.
	Variables map[string]any
}

// Params wires an Optimizer's collaborators. The store and log are
// explicit, injectable state rather than process-wide singletons, so
// concurrency discipline stays a caller decision.
type Params struct {
	Store     *template.Store
	Counter   token.Counter
	Library   *strategy.Library
	Log       *usage.Log
	MaxTokens int
	Model     string
}

// Optimizer measures rendered prompts against the token budget, runs the
// strategy pipeline when needed, and records every outcome.
type Optimizer struct {
	store     *template.Store
	counter   token.Counter
	library   *strategy.Library
	log       *usage.Log
	maxTokens int
	model     string
}

// New creates an Optimizer.
func New(p Params) *Optimizer {
	return &Optimizer{
		store:     p.Store,
		counter:   p.Counter,
		library:   p.Library,
		log:       p.Log,
		maxTokens: p.MaxTokens,
		model:     p.Model,
	}
}

// CreatePrompt renders a template and, when the result exceeds the budget
// and optimization is enabled, applies the selected strategies in
// canonical order until the pair fits or none remain. Render failures
// propagate; strategy application never fails.
func (o *Optimizer) CreatePrompt(ctx context.Context, name string, opts Options) (template.Pair, error) {
	start := time.Now()

	pair, err := template.Render(o.store, name, opts.Variables)
	if err != nil {
		return template.Pair{}, err
	}

	rec := usage.NewRecord(name)
	rec.Model = o.model

	originalTokens := o.counter.Count(pair.Combined())
	if !opts.Optimize || originalTokens <= o.maxTokens {
		rec.Tokens = originalTokens
		rec.Chars = len(pair.Combined())
		rec.Latency = time.Since(start)
		o.log.Record(rec)
		return pair, nil
	}

	var applied []string
	for _, s := range strategy.Expand(opts.Strategies) {
		if o.counter.Count(pair.Combined()) <= o.maxTokens {
			break
		}
		pair.System, pair.User = o.library.Apply(ctx, s, pair.System, pair.User)
		applied = append(applied, string(s))
	}

	rec.Optimized = true
	rec.OriginalTokens = originalTokens
	rec.Applied = applied
	rec.Tokens = o.counter.Count(pair.Combined())
	rec.Chars = len(pair.Combined())
	rec.Latency = time.Since(start)
	o.log.Record(rec)

	return pair, nil
}

// MaxTokens returns the configured budget.
func (o *Optimizer) MaxTokens() int {
	return o.maxTokens
}
