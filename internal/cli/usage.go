package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/HartBrook/promptsmith/internal/config"
	"github.com/HartBrook/promptsmith/internal/usage"
)

// usageFileName is the on-disk snapshot of the usage log, kept under the
// config directory so the bounded log survives across CLI invocations.
const usageFileName = "usage.json"

var titleCaser = cases.Title(language.English)

type usageOptions struct {
	clear   bool
	limit   int
	verbose bool
}

// NewUsageCmd creates the usage command.
func NewUsageCmd() *cobra.Command {
	opts := &usageOptions{}

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show recorded prompt constructions",
		Long: `Shows the usage log: one record per prompt construction, oldest first,
with aggregate statistics. The log is bounded; once full, the oldest
records are dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runUsage(configPath, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.clear, "clear", false, "Empty the usage log")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 20, "Show at most this many recent records")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show applied strategies per record")

	return cmd
}

func runUsage(configPath string, opts *usageOptions) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	paths := config.NewPaths()
	log := loadUsageLog(paths, cfg.Usage.Capacity)

	if opts.clear {
		log.Clear()
		if err := saveUsageLog(paths, log); err != nil {
			return err
		}
		printSuccess("Usage log cleared")
		return nil
	}

	records := log.List()
	if len(records) == 0 {
		fmt.Println(dim("No usage recorded yet. Run `promptsmith create` first."))
		return nil
	}

	shown := records
	if opts.limit > 0 && len(shown) > opts.limit {
		shown = shown[len(shown)-opts.limit:]
	}

	for _, rec := range shown {
		marker := dim("·")
		if rec.Optimized {
			marker = success("▼")
		}
		line := fmt.Sprintf("%s %s  %s  %d tokens", marker,
			rec.CreatedAt.Format("2006-01-02 15:04:05"), info(rec.Template), rec.Tokens)
		if rec.Optimized {
			line += dim(fmt.Sprintf(" (was %d)", rec.OriginalTokens))
		}
		fmt.Println(line)
		if opts.verbose && len(rec.Applied) > 0 {
			fmt.Printf("    %s\n", dim(strings.Join(rec.Applied, ", ")))
		}
	}

	stats := log.Summarize()
	fmt.Println()
	printInfo("Records", fmt.Sprintf("%d of %d", log.Len(), log.Capacity()))
	printInfo("Optimized", fmt.Sprintf("%d", stats.OptimizedCount))
	printInfo("Avg tokens", fmt.Sprintf("%.0f", stats.AvgTokens))

	if len(stats.ByStrategy) > 0 {
		fmt.Println()
		fmt.Println(dim("  Strategy applications:"))
		names := make([]string, 0, len(stats.ByStrategy))
		for name := range stats.ByStrategy {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			label := titleCaser.String(strings.ReplaceAll(name, "-", " "))
			fmt.Printf("    %s: %d\n", label, stats.ByStrategy[name])
		}
	}

	return nil
}

// loadUsageLog reads the persisted usage snapshot into a fresh log. A
// missing or unreadable snapshot yields an empty log.
func loadUsageLog(paths *config.Paths, capacity int) *usage.Log {
	log := usage.NewLog(capacity)

	data, err := os.ReadFile(filepath.Join(paths.ConfigDir, usageFileName))
	if err != nil {
		return log
	}

	var records []usage.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return log
	}
	for _, rec := range records {
		log.Record(rec)
	}
	return log
}

// saveUsageLog persists the log snapshot to the config directory.
func saveUsageLog(paths *config.Paths, log *usage.Log) error {
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(log.List(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(paths.ConfigDir, usageFileName), data, config.DefaultFileMode)
}
