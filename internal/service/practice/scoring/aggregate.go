package scoring

import (
	"math"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

// Aggregate returns the rounded unweighted mean of the turn scores, or 0 for
// no turns. A one-word turn counts as much as a long one.
func Aggregate(turns []domain.TurnResult) int {
	if len(turns) == 0 {
		return 0
	}
	sum := 0
	for _, t := range turns {
		sum += t.Score
	}
	return int(math.Round(float64(sum) / float64(len(turns))))
}
