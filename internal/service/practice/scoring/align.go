package scoring

import (
	"math"
	"strings"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

// Status thresholds. Both bounds are inclusive.
const (
	correctThreshold = 0.9
	partialThreshold = 0.5
)

const (
	issueMissingWords = "missing words: "
	issueMissingChars = "missing characters: "
	issueMostMissing  = "most of this line was not spoken"
)

// ScoreTurn compares one turn against the whole transcription.
func ScoreTurn(turn Turn, transcript *Bag, script domain.ScriptClass) domain.TurnResult {
	matched, missing := transcript.intersect(turn.Tokens)

	ratio := 0.0
	if len(turn.Tokens) > 0 {
		ratio = float64(matched) / float64(len(turn.Tokens))
	}

	res := domain.TurnResult{
		Text:   turn.Text,
		Score:  int(math.Round(ratio * 100)),
		Issues: []string{},
		Hints:  []string{},
	}

	switch {
	case ratio >= correctThreshold:
		res.Status = domain.TurnStatusCorrect
	case ratio >= partialThreshold:
		res.Status = domain.TurnStatusPartial
		if len(missing) > 0 {
			res.Issues = append(res.Issues, missingIssue(missing, script))
		}
	default:
		res.Status = domain.TurnStatusMissing
		res.Issues = append(res.Issues, issueMostMissing)
	}

	if script == domain.ScriptSpaced {
		res.Issues = append(res.Issues, substitutionIssues(turn.Tokens, transcript)...)
		res.Hints = append(res.Hints, soundsLikeHints(missing, turn.Tokens, transcript)...)
	}

	return res
}

func missingIssue(missing []string, script domain.ScriptClass) string {
	if script == domain.ScriptCJK {
		return issueMissingChars + strings.Join(missing, "")
	}
	return issueMissingWords + strings.Join(missing, ", ")
}
