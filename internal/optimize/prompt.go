package optimize

import "fmt"

// buildReviewSystemPrompt creates the system prompt for the review call.
func buildReviewSystemPrompt() string {
	return `You are a prompt auditor. Your task is to find and repair self-contradictory instructions in a system prompt.

A contradiction is two co-occurring statements or examples that assert incompatible guidance, such as a rule that forbids a construct while an example below uses it.

RULES:
- Repair contradictions with the smallest possible edit
- Prefer deleting a stale prohibition over rewriting working examples
- Never change guidance that is internally consistent
- Never add new instructions

OUTPUT FORMAT:
Respond with only a JSON object of this exact shape, no commentary:
{"contradictions_found": <boolean>, "fixed_prompt": "<full repaired prompt>", "changes": [{"type": "<edit kind>", "description": "<what changed>"}]}`
}

// buildReviewUserPrompt creates the user prompt for the review call.
func buildReviewUserPrompt(system string) string {
	return fmt.Sprintf(`Audit the following system prompt for self-contradictory instructions and repair any you find.

PROMPT TO AUDIT:
---
%s
---

Respond with only the JSON object.`, system)
}
