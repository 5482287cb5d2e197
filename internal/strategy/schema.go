package strategy

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// jsonFencePattern matches a fenced block and captures its body.
var jsonFencePattern = regexp.MustCompile("(?s)```[^\n]*\n(.*?)```")

// simplifySchemas strips documentation keys from fenced JSON blocks in the
// system text: the top-level "description" key, and "description",
// "example", and "examples" from each entry under "properties". Blocks that
// don't parse as JSON are left byte-identical.
func (l *Library) simplifySchemas(system string) string {
	matches := jsonFencePattern.FindAllStringSubmatchIndex(system, -1)
	if len(matches) == 0 {
		return system
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		bodyStart, bodyEnd := m[2], m[3]
		body := system[bodyStart:bodyEnd]

		simplified, ok := simplifySchemaDoc(body)
		if !ok {
			continue
		}

		b.WriteString(system[last:bodyStart])
		b.WriteString(simplified)
		last = bodyEnd
	}
	if last == 0 {
		return system
	}
	b.WriteString(system[last:])
	return b.String()
}

func simplifySchemaDoc(body string) (string, bool) {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return "", false
	}

	doc := trimmed
	doc, _ = sjson.Delete(doc, "description")

	props := gjson.Get(doc, "properties")
	if props.IsObject() {
		props.ForEach(func(key, _ gjson.Result) bool {
			prefix := "properties." + escapePath(key.String()) + "."
			for _, field := range []string{"description", "example", "examples"} {
				doc, _ = sjson.Delete(doc, prefix+field)
			}
			return true
		})
	}

	pretty := gjson.Get(doc, "@pretty").Raw
	return strings.TrimRight(pretty, "\n") + "\n", true
}

// escapePath escapes gjson/sjson path metacharacters in a map key.
func escapePath(key string) string {
	r := strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`)
	return r.Replace(key)
}
