package strategy

import (
	"regexp"
	"strings"
)

// Retention ratios per example-block family.
const (
	labeledBlockRatio = 0.5
	fencedBlockRatio  = 0.7
	numberedListRatio = 0.5
)

var (
	// labeledBlockPattern matches an "Example"/"Examples" label line plus
	// the contiguous non-blank lines under it.
	labeledBlockPattern = regexp.MustCompile(`(?mi)^[ \t]*(?:#+[ \t]*)?examples?\b[^\n]*\n(?:[ \t]*\S[^\n]*\n?)*`)

	// fencedBlockPattern matches a fenced code block including its fences.
	fencedBlockPattern = regexp.MustCompile("(?s)```[^\n]*\n.*?```")

	// numberedListPattern matches a run of consecutive numbered-list lines.
	numberedListPattern = regexp.MustCompile(`(?m)(?:^[ \t]*\d+\.[ \t]+[^\n]*\n?)+`)
)

// reduceExamples drops a share of example blocks from the system text.
// Three block families are reduced with their own retention ratios; block
// index 0 of each family is always retained and the remainder is sampled
// at evenly spaced indices.
func (l *Library) reduceExamples(system string) string {
	system = reduceFamily(system, labeledBlockPattern, labeledBlockRatio)
	system = reduceFamily(system, fencedBlockPattern, fencedBlockRatio)
	system = reduceFamily(system, numberedListPattern, numberedListRatio)
	return system
}

func reduceFamily(text string, pattern *regexp.Regexp, ratio float64) string {
	spans := pattern.FindAllStringIndex(text, -1)
	n := len(spans)
	if n == 0 {
		return text
	}

	keep := int(float64(n) * ratio)
	if keep < 1 {
		keep = 1
	}
	if keep >= n {
		return text
	}

	retained := map[int]bool{0: true}
	for i := 0; i < keep-1; i++ {
		retained[i*(n-1)/(keep-1)+1] = true
	}

	var b strings.Builder
	last := 0
	for i, span := range spans {
		b.WriteString(text[last:span[0]])
		if retained[i] {
			b.WriteString(text[span[0]:span[1]])
		}
		last = span[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
