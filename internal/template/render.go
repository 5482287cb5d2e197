package template

import (
	"fmt"
	"regexp"

	"github.com/HartBrook/promptsmith/internal/errors"
)

// placeholderPattern matches {{name}} slots. Whitespace inside the braces
// is tolerated on input but not required.
var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// Pair is a rendered (system, user) prompt. Neither side is ever nil text;
// an absent pattern renders as the empty string.
type Pair struct {
	System string
	User   string
}

// Combined returns the two sides joined the way the token budget measures
// them.
func (p Pair) Combined() string {
	return p.System + "\n\n" + p.User
}

// Render looks up a template in the store and substitutes variables into
// both patterns. A placeholder with no matching variable is a hard
// RenderFailed error; extra variables are ignored.
func Render(store *Store, name string, variables map[string]any) (Pair, error) {
	tpl, err := store.Get(name)
	if err != nil {
		return Pair{}, err
	}

	system, err := substitute(tpl, tpl.System, variables)
	if err != nil {
		return Pair{}, err
	}
	user, err := substitute(tpl, tpl.User, variables)
	if err != nil {
		return Pair{}, err
	}

	return Pair{System: system, User: user}, nil
}

// substitute replaces each {{name}} with the string form of the matching
// variable.
func substitute(tpl *Template, pattern string, variables map[string]any) (string, error) {
	var missing string
	out := placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := variables[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return fmt.Sprintf("%v", value)
	})
	if missing != "" {
		return "", errors.RenderFailed(tpl.Name, missing)
	}
	return out, nil
}
