package strategy

import (
	"fmt"
	"log"
	"regexp"
	"strings"
)

// contradictionMarker flags a prohibition line that may contradict
// canonical usage elsewhere in the prompt.
const contradictionMarker = "DO NOT USE"

// SchemaRule maps a pattern key to an ordered term list. The first half of
// the list is canonical usage, the second half is incorrect patterns
// (including literal "DO NOT USE ..." warning strings).
type SchemaRule struct {
	Pattern string   `yaml:"pattern"`
	Terms   []string `yaml:"terms"`
}

// Canonical returns the correct-usage half of the term list.
func (r SchemaRule) Canonical() []string {
	return r.Terms[:len(r.Terms)/2]
}

// Incorrect returns the incorrect-pattern half of the term list.
func (r SchemaRule) Incorrect() []string {
	return r.Terms[len(r.Terms)/2:]
}

// negativeTemplates pairs a negative phrasing with the positive phrasing
// that contradicts it. The captured term is substituted into the positive
// form before searching.
var negativeTemplates = []struct {
	negative *regexp.Regexp
	positive string
}{
	{regexp.MustCompile(`(?i)do not use ([\w.]+)`), "use %s"},
	{regexp.MustCompile(`(?i)never use ([\w.]+)`), "%s is recommended"},
	{regexp.MustCompile(`(?i)avoid using ([\w.]+)`), "%s is preferred"},
	{regexp.MustCompile(`(?i)don't use ([\w.]+)`), "use %s"},
	{regexp.MustCompile(`(?i)must not use ([\w.]+)`), "use %s"},
}

// checkContradictions repairs self-contradictory instructions in the system
// text: configured incorrect patterns are rewritten to canonical usage or
// their warning lines deleted, natural-language prohibitions that conflict
// with positive guidance are dropped, and example blocks are rewritten to
// canonical terms. Every applied fix is logged.
func (l *Library) checkContradictions(system string) string {
	fixed, fixes := repairContradictions(system, l.rules)
	for _, fix := range fixes {
		log.Printf("debug: contradiction fix: %s", fix)
	}
	return fixed
}

func repairContradictions(text string, rules []SchemaRule) (string, []string) {
	var fixes []string

	for _, rule := range rules {
		if len(rule.Terms) < 2 {
			continue
		}
		canonical := rule.Canonical()
		for _, wrong := range rule.Incorrect() {
			if wrong == "" || !strings.Contains(text, wrong) {
				continue
			}
			if strings.Contains(wrong, contradictionMarker) {
				// The warning line is only deleted when a canonical usage
				// appears elsewhere; otherwise it is kept as-is.
				if anyPresent(text, canonical) {
					text = deleteLinesContaining(text, wrong)
					fixes = append(fixes, fmt.Sprintf("removed contradictory warning line containing %q", wrong))
				}
				continue
			}
			text = strings.ReplaceAll(text, wrong, canonical[0])
			fixes = append(fixes, fmt.Sprintf("replaced incorrect pattern %q with %q", wrong, canonical[0]))
		}
	}

	text, nlFixes := repairNegativeTemplates(text)
	fixes = append(fixes, nlFixes...)

	text, blockFixes := repairExampleBlocks(text, rules)
	fixes = append(fixes, blockFixes...)

	return text, fixes
}

// repairNegativeTemplates deletes prohibition lines whose subject is also
// endorsed elsewhere in the text. The positive phrasing must survive the
// deletion for it to commit, so a prohibition is never removed on the
// strength of its own wording.
func repairNegativeTemplates(text string) (string, []string) {
	var fixes []string
	for _, tpl := range negativeTemplates {
		for _, match := range tpl.negative.FindAllStringSubmatch(text, -1) {
			negative, term := match[0], match[1]
			positive := strings.ToLower(fmt.Sprintf(tpl.positive, term))

			candidate := deleteLinesContaining(text, negative)
			if candidate == text {
				continue
			}
			if !strings.Contains(strings.ToLower(candidate), positive) {
				continue
			}
			text = candidate
			fixes = append(fixes, fmt.Sprintf("removed prohibition %q contradicted by %q", negative, positive))
		}
	}
	return text, fixes
}

// repairExampleBlocks rewrites remaining incorrect patterns inside example
// blocks to each rule's first canonical term.
func repairExampleBlocks(text string, rules []SchemaRule) (string, []string) {
	var fixes []string
	for _, pattern := range []*regexp.Regexp{labeledBlockPattern, fencedBlockPattern} {
		text = pattern.ReplaceAllStringFunc(text, func(block string) string {
			for _, rule := range rules {
				if len(rule.Terms) < 2 {
					continue
				}
				canonical := rule.Canonical()[0]
				for _, wrong := range rule.Incorrect() {
					if wrong == "" || strings.Contains(wrong, contradictionMarker) {
						continue
					}
					if strings.Contains(block, wrong) {
						block = strings.ReplaceAll(block, wrong, canonical)
						fixes = append(fixes, fmt.Sprintf("rewrote example usage %q to %q", wrong, canonical))
					}
				}
			}
			return block
		})
	}
	return text, fixes
}

func anyPresent(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func deleteLinesContaining(text, substr string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, substr) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
