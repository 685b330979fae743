package practice

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
	"github.com/heartmarshall/shadowing-backend/internal/observe"
	"github.com/heartmarshall/shadowing-backend/internal/service/practice/scoring"
	"github.com/heartmarshall/shadowing-backend/pkg/ctxutil"
)

// ScoreAttempt compares a transcription with the reference passage.
func (s *Service) ScoreAttempt(ctx context.Context, input ScoreInput) (*domain.ScoringResult, error) {
	if _, ok := ctxutil.LearnerIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg.MaxTextRunes); err != nil {
		return nil, err
	}

	ctx, span := observe.StartSpan(ctx, "practice.ScoreAttempt")
	defer span.End()

	result := scoring.Score(input.Reference, input.Transcription)

	span.SetAttributes(
		attribute.Int("score.overall", result.OverallScore),
		attribute.Int("score.turns", len(result.Turns)),
	)
	s.metrics.RecordScore(ctx, result)

	return &result, nil
}
