package scoring

import (
	"fmt"

	"github.com/antzucaro/matchr"
)

// minHintSimilarity is the Jaro-Winkler floor for a phonetic candidate to
// be reported.
const minHintSimilarity = 0.80

// soundsLikeHints pairs each missing word with the transcription word that
// most plausibly replaced it: the two must share a Double Metaphone code and
// reach minHintSimilarity. Transcription words already present in the turn
// are not candidates.
func soundsLikeHints(missing, turnTokens []string, transcript *Bag) []string {
	if len(missing) == 0 {
		return nil
	}

	inTurn := make(map[string]struct{}, len(turnTokens))
	for _, t := range turnTokens {
		inTurn[t] = struct{}{}
	}

	var candidates []string
	for _, t := range transcript.Distinct() {
		if _, ok := inTurn[t]; !ok {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var hints []string
	seen := make(map[string]struct{}, len(missing))
	for _, word := range missing {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}

		if best, ok := closestSound(word, candidates); ok {
			hints = append(hints, fmt.Sprintf("%q may have sounded like %q", word, best))
		}
	}
	return hints
}

func closestSound(word string, candidates []string) (string, bool) {
	wp, ws := matchr.DoubleMetaphone(word)

	var (
		best      string
		bestScore float64
	)
	for _, c := range candidates {
		cp, cs := matchr.DoubleMetaphone(c)
		if !shareCode(wp, ws, cp, cs) {
			continue
		}
		score := matchr.JaroWinkler(word, c, false)
		if score >= minHintSimilarity && score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, best != ""
}

func shareCode(ap, as, bp, bs string) bool {
	for _, a := range []string{ap, as} {
		if a == "" {
			continue
		}
		if a == bp || a == bs {
			return true
		}
	}
	return false
}
