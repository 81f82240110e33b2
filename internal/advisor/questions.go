package advisor

import (
	"fmt"
	"math/rand"

	"github.com/arthguru/finance-coach/internal/domain"
)

// maxSuggestions caps how many suggested questions are shown at once.
const maxSuggestions = 4

// SuggestedQuestions returns up to four questions worth asking next, in
// random order. The health and priority questions are always candidates;
// a top-category question joins when expenses exist, and the
// improve-my-rate question only while the savings rate is under 15%.
// Callers own the rng so sampling can be made deterministic in tests.
func SuggestedQuestions(m domain.Metrics, rng *rand.Rand) []string {
	candidates := []string{
		"Summarize my financial health.",
		"What is my top priority?",
	}
	if top, ok := m.TopExpenseCategory(); ok {
		candidates = append(candidates, fmt.Sprintf("How can I reduce my spending on %s?", top.Category))
	}
	if m.SavingsRate < 15 {
		candidates = append(candidates, "Give me 3 ways to improve my savings rate.")
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	return candidates
}
