package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List registered templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runTemplatesList(configPath)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <template>",
		Short: "Show a template's prompts and placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runTemplatesShow(configPath, args[0])
		},
	})

	return cmd
}

func runTemplatesList(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	names := store.List()
	if len(names) == 0 {
		fmt.Println(dim("No templates registered."))
		fmt.Println(dim("Add YAML templates under " + cfg.TemplatesDir))
		return nil
	}

	for _, name := range names {
		tpl, err := store.Get(name)
		if err != nil {
			continue
		}
		line := info(tpl.Name)
		if tpl.Description != "" {
			line += " " + dim("- "+tpl.Description)
		}
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(dim(fmt.Sprintf("%d template(s)", store.Count())))
	return nil
}

func runTemplatesShow(configPath, name string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	tpl, err := store.Get(name)
	if err != nil {
		return err
	}

	fmt.Println(info(tpl.Name))
	if tpl.Description != "" {
		printInfo("Description", tpl.Description)
	}
	printInfo("Format", string(tpl.Format))
	if len(tpl.Tags) > 0 {
		printInfo("Tags", strings.Join(tpl.Tags, ", "))
	}
	if placeholders := tpl.Placeholders(); len(placeholders) > 0 {
		printInfo("Placeholders", strings.Join(placeholders, ", "))
	}

	fmt.Println()
	fmt.Println(dim("--- system ---"))
	fmt.Println(tpl.System)
	if tpl.User != "" {
		fmt.Println(dim("--- user ---"))
		fmt.Println(tpl.User)
	}
	return nil
}
