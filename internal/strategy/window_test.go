package strategy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HartBrook/promptsmith/internal/token"
)

func windowSystem() string {
	filler := strings.Repeat("background reading that matters little. ", 40)
	return "# Background\n" + filler + "\n\n" +
		"# Output Format\nRespond with JSON following the schema. Output rules apply.\n\n" +
		"# History\n" + filler + "\n\n" +
		"# Requirements\nEvery rule and constraint is mandatory.\n"
}

func TestContextWindow_KeepsHighScoringSections(t *testing.T) {
	lib := NewLibrary(token.NewEstimator(), 100)

	system, user := lib.contextWindow(windowSystem(), "query")
	require.Equal(t, "query", user)

	// 4 sections, keeps floor(4/2) = 2: the keyword-dense ones.
	assert.Contains(t, system, "# Output Format")
	assert.Contains(t, system, "# Requirements")
	assert.NotContains(t, system, "# Background")
	assert.NotContains(t, system, "# History")
}

func TestContextWindow_ReordersByScore(t *testing.T) {
	// Retained sections are concatenated in score order, not document
	// order. "Output Format" carries two heading keywords to
	// "Requirements"' one, so it leads even though both orderings start
	// from different document positions.
	lib := NewLibrary(token.NewEstimator(), 100)

	system, _ := lib.contextWindow(windowSystem(), "query")

	formatIdx := strings.Index(system, "# Output Format")
	reqIdx := strings.Index(system, "# Requirements")
	require.GreaterOrEqual(t, formatIdx, 0)
	require.GreaterOrEqual(t, reqIdx, 0)
	assert.Less(t, formatIdx, reqIdx)
}

func TestContextWindow_FallsBackToTruncateWithoutHeadings(t *testing.T) {
	counter := token.NewEstimator()
	lib := NewLibrary(counter, 50)

	system := strings.Repeat("plain prose with no structure at all. ", 30)
	user := "short query"

	outSystem, outUser := lib.contextWindow(system, user)

	assert.Equal(t, "short query", outUser)
	assert.LessOrEqual(t, counter.Count(outSystem+"\n\n"+outUser), 50)
}

func TestContextWindow_FallsBackWhenSavingsTooSmall(t *testing.T) {
	counter := token.NewEstimator()
	lib := NewLibrary(counter, 40)

	// The winning section carries nearly all the text, so dropping the
	// loser is nowhere near a 30% saving and truncate runs instead.
	long := strings.Repeat("every rule in this schema output format section counts. ", 20)
	system := "# Rules\n" + long + "\n\n# Notes\nshort aside\n"
	user := "ask"

	outSystem, outUser := lib.contextWindow(system, user)

	assert.Equal(t, "ask", outUser)
	assert.LessOrEqual(t, counter.Count(outSystem+"\n\n"+outUser), 40)
}

func TestSplitSections(t *testing.T) {
	sections := splitSections("# One\nalpha\n\n# Two\nbeta\n")

	require.Len(t, sections, 2)
	assert.Equal(t, "# One", sections[0].heading)
	assert.Equal(t, "alpha", sections[0].content)
	assert.Equal(t, "# Two", sections[1].heading)
	assert.Equal(t, "beta", sections[1].content)
}

func TestSplitSections_AllCapsLabels(t *testing.T) {
	sections := splitSections("INSTRUCTIONS:\ndo the thing\n\nCONTEXT:\nsome facts\n")

	require.Len(t, sections, 2)
	assert.Equal(t, "INSTRUCTIONS:", sections[0].heading)
}

func TestSplitSections_NoHeadings(t *testing.T) {
	assert.Nil(t, splitSections("just prose, no headings"))
}

func TestScoreSection_KeywordWeights(t *testing.T) {
	withKeyword := scoreSection("# Output Format", "short")
	without := scoreSection("# Notes", "short")

	assert.Greater(t, withKeyword, without)
}

func TestScoreSection_LengthPenalty(t *testing.T) {
	short := scoreSection("# Rules", "the rule")
	long := scoreSection("# Rules", "the rule "+strings.Repeat("x", 5000))

	assert.Greater(t, short, long)
}
