// Package scoring aligns a learner's transcribed attempt with the reference
// passage of a shadowing exercise.
//
// The pipeline is normalize -> segment -> per-turn alignment -> aggregate.
// Every function in this package is pure and deterministic: identical input
// always produces an identical domain.ScoringResult, and no function returns
// an error. Degenerate input (empty reference, empty transcription) yields a
// degenerate but valid result.
package scoring

import (
	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

// Score compares transcription with reference.
func Score(reference, transcription string) domain.ScoringResult {
	turns := Segment(reference)
	if len(turns) == 0 {
		return domain.ScoringResult{OverallScore: 0, Turns: []domain.TurnResult{}}
	}

	script := scriptOf(reference)
	transcript := NewBag(Tokenize(Canonicalize(transcription), script))

	results := make([]domain.TurnResult, 0, len(turns))
	for _, t := range turns {
		results = append(results, ScoreTurn(t, transcript, script))
	}

	return domain.ScoringResult{
		OverallScore: Aggregate(results),
		Turns:        results,
	}
}
