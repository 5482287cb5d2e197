// Package template handles prompt template parsing, registry, and rendering.
package template

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies how a template's output is meant to be consumed.
type Format string

const (
	FormatChat         Format = "chat"
	FormatCompletion   Format = "completion"
	FormatFunctionCall Format = "function-call"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatChat, FormatCompletion, FormatFunctionCall:
		return true
	}
	return false
}

// Template is a named, reusable pair of system/user text patterns with
// {{placeholder}} slots.
type Template struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Format      Format           `yaml:"format"`
	System      string           `yaml:"system"`
	User        string           `yaml:"user"`
	Tags        []string         `yaml:"tags,omitempty"`
	Schema      map[string]any   `yaml:"schema,omitempty"`
	Examples    []map[string]any `yaml:"examples,omitempty"`
}

// Parse parses a template from a YAML document.
func Parse(content string) (*Template, error) {
	var tpl Template
	if err := yaml.Unmarshal([]byte(content), &tpl); err != nil {
		return nil, fmt.Errorf("invalid template YAML: %w", err)
	}

	if strings.TrimSpace(tpl.Name) == "" {
		return nil, fmt.Errorf("template has no name")
	}
	if tpl.Format == "" {
		tpl.Format = FormatChat
	}
	if !tpl.Format.Valid() {
		return nil, fmt.Errorf("unknown template format: %s (use chat, completion, or function-call)", tpl.Format)
	}

	return &tpl, nil
}

// Placeholders returns the distinct placeholder names used in the system
// and user patterns, in first-appearance order.
func (t *Template) Placeholders() []string {
	var names []string
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(t.System+"\n"+t.User, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}
