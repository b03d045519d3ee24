package analyze

import "strings"

// Fixed word lists used by the sentiment and tone classifiers. These are
// data, not control flow: the classifiers only count occurrences, so the
// lists can be tuned without touching the decision rules.

// positiveWords signal warmth or approval in a message
var positiveWords = []string{"love", "happy", "great", "good", "wonderful", "thanks"}

// negativeWords signal hostility or distress
var negativeWords = []string{"hate", "angry", "bad", "terrible", "no", "never"}

// tensionWords mark disagreement or absolutist framing, which reads as
// tension even when the vocabulary is not overtly negative
var tensionWords = []string{"but", "however", "wrong", "never", "always"}

// patternCheck ties a descriptive flag to the substrings that trigger it
type patternCheck struct {
	flag     string
	triggers []string
}

// patternChecks are evaluated in order; each flag is emitted at most once
// and only when one of its triggers is present
var patternChecks = []patternCheck{
	{flag: "Questions present", triggers: []string{"?"}},
	{flag: "Emotional expressions", triggers: []string{"!"}},
	{flag: "Apologies detected", triggers: []string{"sorry", "apologize"}},
	{flag: "Contradictions present", triggers: []string{"but", "however"}},
}

// countOccurrences sums substring occurrences of every term in the list.
// Matching is substring containment, not whole-word.
func countOccurrences(lower string, terms []string) int {
	count := 0
	for _, term := range terms {
		count += strings.Count(lower, term)
	}
	return count
}
