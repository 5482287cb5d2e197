package strategy

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// headingPattern matches markdown-style heading lines and ALL-CAPS label
// lines.
var headingPattern = regexp.MustCompile(`(?m)^(?:#{1,6}[ \t]+\S[^\n]*|[A-Z][A-Z0-9 _-]{2,}:?)[ \t]*$`)

// essentialKeywords mark a section as load-bearing for the prompt.
var essentialKeywords = []string{
	"instruction", "format", "output", "requirement",
	"schema", "rule", "constraint", "role",
}

type section struct {
	heading string
	content string
	score   float64
	index   int
}

// contextWindow keeps only the highest-scoring half of the system text's
// sections, concatenated in score order rather than document order. If the
// result is not at least 30% smaller by token count, the rewrite is
// discarded and truncate runs instead.
func (l *Library) contextWindow(system, user string) (string, string) {
	sections := splitSections(system)

	candidate := system
	if len(sections) > 0 {
		for i := range sections {
			sections[i].score = scoreSection(sections[i].heading, sections[i].content)
		}
		sort.SliceStable(sections, func(i, j int) bool {
			return sections[i].score > sections[j].score
		})

		keep := len(sections) / 2
		if keep < 1 {
			keep = 1
		}

		parts := make([]string, 0, keep)
		for _, sec := range sections[:keep] {
			part := sec.heading
			if sec.content != "" {
				part += "\n" + sec.content
			}
			parts = append(parts, part)
		}
		candidate = strings.Join(parts, "\n\n")
	}

	before := l.counter.Count(system)
	after := l.counter.Count(candidate)
	if float64(after) > 0.7*float64(before) {
		return l.truncate(system, user)
	}
	return candidate, user
}

// splitSections breaks text into heading/content pairs at heading lines.
// Text before the first heading is not a section.
func splitSections(text string) []section {
	headings := headingPattern.FindAllStringIndex(text, -1)
	if len(headings) == 0 {
		return nil
	}

	sections := make([]section, 0, len(headings))
	for i, span := range headings {
		contentStart := span[1]
		contentEnd := len(text)
		if i+1 < len(headings) {
			contentEnd = headings[i+1][0]
		}
		sections = append(sections, section{
			heading: text[span[0]:span[1]],
			content: strings.TrimRight(strings.TrimPrefix(text[contentStart:contentEnd], "\n"), "\n"),
			index:   i,
		})
	}
	return sections
}

// scoreSection weighs a section: +5 per essential keyword in the heading,
// +1 per occurrence in the content, scaled by a length penalty so long
// sections don't win on raw keyword volume.
func scoreSection(heading, content string) float64 {
	h := strings.ToLower(heading)
	c := strings.ToLower(content)

	score := 0.0
	for _, kw := range essentialKeywords {
		if strings.Contains(h, kw) {
			score += 5
		}
		score += float64(strings.Count(c, kw))
	}

	penalty := math.Min(1, 500/math.Max(1, float64(len(content))))
	return score * penalty
}
