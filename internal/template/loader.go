package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParseErrors collects multiple parse errors when loading templates from a
// directory. Individual parse failures don't prevent other templates from
// loading.
type ParseErrors struct {
	Errors []error
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d templates failed to parse", len(e.Errors))
}

// ParseFile parses a template from a YAML file.
func ParseFile(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return Parse(string(content))
}

// LoadDirectory loads all .yaml/.yml templates from a directory (recursive)
// into the store. Parse errors for individual files are collected in the
// returned ParseErrors but do not prevent other templates from loading.
// A missing directory is not an error.
func LoadDirectory(store *Store, dir string) error {
	var parseErrors []error

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".yaml") && !strings.HasSuffix(d.Name(), ".yml") {
			return nil
		}

		tpl, err := ParseFile(path)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("failed to parse %s: %w", path, err))
			return nil
		}

		store.Register(tpl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	if len(parseErrors) > 0 {
		return &ParseErrors{Errors: parseErrors}
	}
	return nil
}
