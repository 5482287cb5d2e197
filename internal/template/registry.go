package template

import (
	"sort"

	"github.com/HartBrook/promptsmith/internal/errors"
)

// Store holds registered templates by name. The last registration with a
// given name wins; no uniqueness is enforced. The store does no locking of
// its own, so concurrent hosts must serialize Register against Get/List.
type Store struct {
	templates map[string]*Template
}

// NewStore creates an empty template store.
func NewStore() *Store {
	return &Store{templates: make(map[string]*Template)}
}

// Register stores or replaces a template by name.
func (s *Store) Register(tpl *Template) {
	s.templates[tpl.Name] = tpl
}

// Get returns a template by name.
func (s *Store) Get(name string) (*Template, error) {
	tpl, ok := s.templates[name]
	if !ok {
		return nil, errors.TemplateNotFound(name)
	}
	return tpl, nil
}

// List returns all registered template names, sorted for deterministic
// ordering.
func (s *Store) List() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered templates.
func (s *Store) Count() int {
	return len(s.templates)
}
