package strategy

// truncateSafetyBuffer absorbs tokenizer boundary rounding when cutting the
// system text.
const truncateSafetyBuffer = 10

// truncate is the last-resort strategy and the only one with a hard bound:
// after it runs, the combined pair fits the budget (modulo tokenizer
// segmentation at the cut). When the user text alone dominates the budget,
// both sides are cut on an 80/20 user/system split; otherwise only the
// system text shrinks.
func (l *Library) truncate(system, user string) (string, string) {
	excess := l.counter.Count(system+"\n\n"+user) - l.maxTokens
	if excess <= 0 {
		return system, user
	}

	userTokens := l.counter.Count(user)
	if float64(userTokens) > 0.8*float64(l.maxTokens) {
		userBudget := l.maxTokens * 8 / 10
		systemBudget := l.maxTokens - userBudget
		return l.counter.Truncate(system, systemBudget), l.counter.Truncate(user, userBudget)
	}

	target := l.counter.Count(system) - excess - truncateSafetyBuffer
	if target < 0 {
		target = 0
	}
	return l.counter.Truncate(system, target), user
}
