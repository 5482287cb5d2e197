package strategy

import (
	"context"
	"log"
	"strings"
)

// ReviewChange describes one edit an external reviewer made.
type ReviewChange struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ReviewResult is the required response shape of an external review call.
type ReviewResult struct {
	ContradictionsFound bool           `json:"contradictions_found"`
	FixedPrompt         string         `json:"fixed_prompt"`
	Changes             []ReviewChange `json:"changes"`
}

// Reviewer asks an external completion service to find and repair
// contradictions in a candidate system text.
type Reviewer interface {
	Review(ctx context.Context, system string) (*ReviewResult, error)
}

// review replaces the system text wholesale with the reviewer's fixed
// prompt. Any failure, including a malformed response, leaves the text
// unchanged; this strategy never aborts the pipeline. The user text is
// never touched.
func (l *Library) review(ctx context.Context, system string) string {
	if l.reviewer == nil {
		return system
	}

	result, err := l.reviewer.Review(ctx, system)
	if err != nil {
		log.Printf("debug: llm review skipped: %v", err)
		return system
	}
	if result == nil || !result.ContradictionsFound {
		return system
	}
	if strings.TrimSpace(result.FixedPrompt) == "" {
		log.Printf("debug: llm review returned empty fixed prompt, ignoring")
		return system
	}

	for _, change := range result.Changes {
		log.Printf("debug: llm review change (%s): %s", change.Type, change.Description)
	}
	return result.FixedPrompt
}
