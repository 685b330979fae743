package practice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
	"github.com/heartmarshall/shadowing-backend/pkg/ctxutil"
)

// ExplainPicks fills in missing explanations of the session's vocab picks
// and saves the result. Words the explainer fails on or does not know are
// left unexplained.
func (s *Service) ExplainPicks(ctx context.Context, exerciseID string) (*domain.PracticeSession, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if errs := validateExerciseID(exerciseID); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	key := domain.SessionKey{LearnerID: learnerID, ExerciseID: strings.TrimSpace(exerciseID)}

	current, err := s.sessions.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	pending := unexplainedPicks(current.VocabPicks)
	if len(pending) == 0 {
		return current, nil
	}

	explanations := s.lookupExplanations(ctx, pending)
	if len(explanations) == 0 {
		return current, nil
	}

	return s.applyWithRetry(ctx, key, nil, func(_ context.Context, existing *domain.PracticeSession) (*domain.PracticeSession, error) {
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		picks := existing.VocabPicks
		for word, explanation := range explanations {
			picks = AttachExplanation(picks, word, explanation)
		}
		return MergeSession(existing, domain.SessionUpdate{
			Key:        key,
			VocabPicks: &picks,
			SavedAt:    s.clock.Now(),
		}), nil
	})
}

// lookupExplanations resolves explanations concurrently, bounded by
// cfg.ExplainConcurrency. The result maps pick word to explanation.
func (s *Service) lookupExplanations(ctx context.Context, picks []domain.VocabPick) map[string]string {
	var (
		mu  sync.Mutex
		out = make(map[string]string, len(picks))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.ExplainConcurrency)

	for _, p := range picks {
		g.Go(func() error {
			explanation, err := s.explainer.Explain(gctx, p.Word, p.Lang)
			if err != nil {
				// Only the request's own cancellation stops the fan-out; a
				// canceled error from the explainer alone is one failed word.
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.log.WarnContext(ctx, "explanation lookup failed",
					slog.String("word", p.Word),
					slog.String("error", err.Error()),
				)
				return nil
			}
			if explanation == "" {
				return nil
			}
			mu.Lock()
			out[p.Word] = explanation
			mu.Unlock()
			return nil
		})
	}

	// Only cancellation is propagated; whatever resolved before it is kept.
	_ = g.Wait()
	return out
}

// ListVocabulary returns the words the learner imported from completed
// sessions, newest first.
func (s *Service) ListVocabulary(ctx context.Context) ([]domain.VocabularyEntry, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.vocabulary.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}
	return entries, nil
}

// importVocabulary copies the picks of a just-completed session into the
// learner's vocabulary. Failures are logged, never returned.
func (s *Service) importVocabulary(ctx context.Context, session *domain.PracticeSession) {
	if len(session.VocabPicks) == 0 {
		return
	}

	n, err := s.vocabulary.UpsertPicks(ctx, session.Key.LearnerID, session.Key.ExerciseID, session.VocabPicks)
	if err != nil {
		s.log.ErrorContext(ctx, "vocabulary import failed",
			slog.String("session", session.Key.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	s.metrics.RecordVocabImport(ctx, n)
	s.log.InfoContext(ctx, "vocabulary imported",
		slog.String("session", session.Key.String()),
		slog.Int("words", n),
	)
}
