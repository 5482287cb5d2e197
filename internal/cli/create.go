package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HartBrook/promptsmith/internal/config"
	"github.com/HartBrook/promptsmith/internal/optimize"
	"github.com/HartBrook/promptsmith/internal/strategy"
	"github.com/HartBrook/promptsmith/internal/template"
	"github.com/HartBrook/promptsmith/internal/token"
)

type createOptions struct {
	vars       []string
	optimize   bool
	strategies []string
	maxTokens  int
	output     string
	verbose    bool
}

// NewCreateCmd creates the create command.
func NewCreateCmd() *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create <template>",
		Short: "Render a template and fit it to the token budget",
		Long: `Renders a registered template with the given variables. When the result
exceeds the configured token budget and optimization is on, the reduction
strategies run in their fixed order until the prompt fits.

The llm-review strategy calls Claude and needs ANTHROPIC_API_KEY set;
without a key it is silently skipped.`,
		Example: `  promptsmith create report --var topic=weather --var rules="Be brief."
  promptsmith create report --var topic=weather --strategy whitespace-normalize --strategy truncate
  promptsmith create report --var topic=weather --max-tokens 2000 -o prompt.txt
  promptsmith create report --var topic=weather --optimize=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runCreate(cmd.Context(), configPath, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.vars, "var", nil, "Template variable as name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.optimize, "optimize", true, "Run reduction strategies when over budget")
	cmd.Flags().StringArrayVar(&opts.strategies, "strategy", nil, "Strategy to allow (repeatable, default from config)")
	cmd.Flags().IntVar(&opts.maxTokens, "max-tokens", 0, "Token budget (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the prompt to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show token accounting")

	return cmd
}

func runCreate(ctx context.Context, configPath, name string, opts *createOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	vars, err := parseVars(opts.vars)
	if err != nil {
		return err
	}

	maxTokens := cfg.Optimize.MaxTokens
	if opts.maxTokens > 0 {
		maxTokens = opts.maxTokens
	}

	strategies := cfg.Strategies()
	if len(opts.strategies) > 0 {
		strategies = strategies[:0]
		for _, raw := range opts.strategies {
			s, err := strategy.Parse(raw)
			if err != nil {
				return err
			}
			strategies = append(strategies, s)
		}
	}

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	counter := newCounter(cfg)

	libOpts := []strategy.Option{strategy.WithRules(cfg.Rules)}
	if wantsReview(strategies) {
		if client, err := optimize.NewClient(optimize.WithModel(cfg.Optimize.Model)); err == nil {
			libOpts = append(libOpts, strategy.WithReviewer(client))
		} else if opts.verbose {
			printWarning("llm-review unavailable: %v", err)
		}
	}

	paths := config.NewPaths()
	log := loadUsageLog(paths, cfg.Usage.Capacity)

	optimizer := optimize.New(optimize.Params{
		Store:     store,
		Counter:   counter,
		Library:   strategy.NewLibrary(counter, maxTokens, libOpts...),
		Log:       log,
		MaxTokens: maxTokens,
		Model:     cfg.Optimize.Model,
	})

	pair, err := optimizer.CreatePrompt(ctx, name, optimize.Options{
		Optimize:   opts.optimize,
		Strategies: strategies,
		Variables:  vars,
	})
	if err != nil {
		return err
	}

	if err := saveUsageLog(paths, log); err != nil {
		printWarning("failed to persist usage log: %v", err)
	}

	if opts.verbose {
		records := log.List()
		if len(records) > 0 {
			last := records[len(records)-1]
			printInfo("Tokens", fmt.Sprintf("%d (budget %d)", last.Tokens, maxTokens))
			if last.Optimized {
				printInfo("Before", fmt.Sprintf("%d tokens", last.OriginalTokens))
				printInfo("Applied", strings.Join(last.Applied, ", "))
			}
		}
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(pair.Combined()), config.DefaultFileMode); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printSuccess("Wrote prompt to %s", opts.output)
		return nil
	}

	fmt.Println(pair.Combined())
	return nil
}

// loadConfig loads config from an explicit path, or falls back to defaults
// when the default location has no config file.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.LoadOrDefault(config.NewPaths().ConfigFile)
}

// loadStore loads every template under the configured directory. Individual
// parse failures are reported as warnings, not errors.
func loadStore(cfg *config.Config) (*template.Store, error) {
	store := template.NewStore()
	if err := template.LoadDirectory(store, cfg.TemplatesDir); err != nil {
		var perrs *template.ParseErrors
		if !stderrors.As(err, &perrs) {
			return nil, err
		}
		for _, pe := range perrs.Errors {
			printWarning("%v", pe)
		}
	}
	return store, nil
}

// newCounter builds the configured token counter, degrading to the
// character estimator when the tiktoken encoding cannot be loaded.
func newCounter(cfg *config.Config) token.Counter {
	if cfg.Tokenizer.Estimate {
		return token.NewEstimator()
	}
	counter, err := token.NewTiktoken(cfg.Tokenizer.Encoding)
	if err != nil {
		printWarning("falling back to character estimate: %v", err)
		return token.NewEstimator()
	}
	return counter
}

// parseVars converts repeated name=value flags into a variables map.
func parseVars(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --var %q (want name=value)", pair)
		}
		vars[name] = value
	}
	return vars, nil
}

// wantsReview reports whether the selection includes llm-review.
func wantsReview(strategies []strategy.Strategy) bool {
	for _, s := range strategies {
		if s == strategy.LLMReview || s == strategy.All {
			return true
		}
	}
	return false
}
