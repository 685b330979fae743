package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
	"github.com/heartmarshall/shadowing-backend/pkg/ctxutil"
)

const (
	saveOutcomeSaved    = "saved"
	saveOutcomeConflict = "conflict"
	saveOutcomeError    = "error"
)

// mutateFunc computes the next snapshot from the stored one (nil when the
// key has never been saved). It runs inside the save transaction and may be
// called again after a lost version race.
type mutateFunc func(ctx context.Context, existing *domain.PracticeSession) (*domain.PracticeSession, error)

// GetSession returns the learner's session for an exercise, or nil if none.
func (s *Service) GetSession(ctx context.Context, exerciseID string) (*domain.PracticeSession, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if errs := validateExerciseID(exerciseID); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	key := domain.SessionKey{LearnerID: learnerID, ExerciseID: strings.TrimSpace(exerciseID)}
	session, err := s.sessions.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// SaveSession merges a partial update into the learner's session.
func (s *Service) SaveSession(ctx context.Context, input SaveSessionInput) (*domain.PracticeSession, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	key := domain.SessionKey{LearnerID: learnerID, ExerciseID: strings.TrimSpace(input.ExerciseID)}

	var completedNow bool
	saved, err := s.applyWithRetry(ctx, key, input.ExpectedVersion, func(_ context.Context, existing *domain.PracticeSession) (*domain.PracticeSession, error) {
		next := MergeSession(existing, domain.SessionUpdate{
			Key:        key,
			Status:     input.Status,
			Recordings: input.Recordings,
			VocabPicks: input.VocabPicks,
			Notes:      input.Notes,
			SavedAt:    s.clock.Now(),
		})
		completedNow = next.IsCompleted() && !existing.IsCompleted()
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	if completedNow {
		s.importVocabulary(ctx, saved)
	}

	return saved, nil
}

// PracticeAgain archives the current attempt (if any) and starts a fresh
// draft with the next attempt number.
func (s *Service) PracticeAgain(ctx context.Context, exerciseID string) (*domain.PracticeSession, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if errs := validateExerciseID(exerciseID); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	key := domain.SessionKey{LearnerID: learnerID, ExerciseID: strings.TrimSpace(exerciseID)}

	saved, err := s.applyWithRetry(ctx, key, nil, func(ctx context.Context, existing *domain.PracticeSession) (*domain.PracticeSession, error) {
		now := s.clock.Now()
		next := MergeSession(nil, domain.SessionUpdate{Key: key, SavedAt: now})
		if existing != nil {
			if err := s.sessions.Archive(ctx, existing); err != nil {
				return nil, fmt.Errorf("archive session: %w", err)
			}
			next.Attempt = existing.Attempt + 1
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "practice restarted",
		slog.String("learner_id", learnerID.String()),
		slog.String("exercise_id", key.ExerciseID),
		slog.Int("attempt", saved.Attempt),
	)
	return saved, nil
}

// ListSessions returns the learner's sessions, newest first, and the total
// count matching the filter.
func (s *Service) ListSessions(ctx context.Context, input ListSessionsInput) ([]*domain.PracticeSession, int, error) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	sessions, total, err := s.sessions.List(ctx, learnerID, input.Status, input.Limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, total, nil
}

// applyWithRetry runs read, mutate and version-checked write in one
// transaction. When expected is set, a stored version other than *expected
// fails with domain.ErrConflict. Otherwise a lost race is retried against the
// fresh snapshot up to cfg.MaxSaveAttempts times.
func (s *Service) applyWithRetry(ctx context.Context, key domain.SessionKey, expected *int64, mutate mutateFunc) (*domain.PracticeSession, error) {
	for attempt := 1; ; attempt++ {
		var saved *domain.PracticeSession

		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			existing, err := s.sessions.Get(ctx, key)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("get session: %w", err)
				}
				existing = nil
			}

			var base int64
			if existing != nil {
				base = existing.Version
			}
			if expected != nil && *expected != base {
				return domain.ErrConflict
			}

			next, err := mutate(ctx, existing)
			if err != nil {
				return err
			}

			saved, err = s.sessions.Save(ctx, next, base)
			if err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			return nil
		})

		switch {
		case err == nil:
			s.metrics.RecordSessionSave(ctx, saveOutcomeSaved)
			return saved, nil
		case !errors.Is(err, domain.ErrConflict):
			s.metrics.RecordSessionSave(ctx, saveOutcomeError)
			return nil, err
		case expected != nil || attempt >= s.cfg.MaxSaveAttempts:
			s.metrics.RecordSessionSave(ctx, saveOutcomeConflict)
			return nil, err
		}

		s.metrics.RecordMergeRetry(ctx)
		s.log.WarnContext(ctx, "session version race, re-merging",
			slog.String("session", key.String()),
			slog.Int("attempt", attempt),
		)
	}
}
