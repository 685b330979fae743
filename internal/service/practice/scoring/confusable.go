package scoring

import "fmt"

// confusable is a reference word and the word learners commonly say in its
// place.
type confusable struct {
	expected string
	spoken   string
}

// confusables is the fixed substitution table checked for space-delimited
// scripts. Order determines issue order.
var confusables = []confusable{
	{expected: "today", spoken: "tomorrow"},
	{expected: "tomorrow", spoken: "today"},
	{expected: "no", spoken: "now"},
	{expected: "now", spoken: "no"},
	{expected: "it", spoken: "is"},
	{expected: "is", spoken: "it"},
}

// substitutionIssues reports every confusable whose expected word is in the
// turn, is absent from the transcription, and whose paired word was spoken.
// A word said alongside its partner ("it is is" for "it is") is not a
// substitution: the expected word was spoken, so nothing was said instead
// of it.
func substitutionIssues(turnTokens []string, transcript *Bag) []string {
	inTurn := make(map[string]struct{}, len(turnTokens))
	for _, t := range turnTokens {
		inTurn[t] = struct{}{}
	}

	var issues []string
	for _, c := range confusables {
		if _, ok := inTurn[c.expected]; !ok {
			continue
		}
		if transcript.Contains(c.expected) || !transcript.Contains(c.spoken) {
			continue
		}
		issues = append(issues, fmt.Sprintf("%q was spoken as %q", c.expected, c.spoken))
	}
	return issues
}
