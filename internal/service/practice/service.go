// Package practice owns the shadowing practice workflow: scoring attempts and
// keeping one consistent session snapshot per (learner, exercise).
package practice

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
	"github.com/heartmarshall/shadowing-backend/internal/observe"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type sessionRepo interface {
	Get(ctx context.Context, key domain.SessionKey) (*domain.PracticeSession, error)
	Save(ctx context.Context, session *domain.PracticeSession, expectedVersion int64) (*domain.PracticeSession, error)
	Archive(ctx context.Context, session *domain.PracticeSession) error
	List(ctx context.Context, learnerID uuid.UUID, status *domain.PracticeStatus, limit, offset int) ([]*domain.PracticeSession, int, error)
}

type vocabularyRepo interface {
	ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]domain.VocabularyEntry, error)
	UpsertPicks(ctx context.Context, learnerID uuid.UUID, sourceID string, picks []domain.VocabPick) (int, error)
}

// explainer resolves a short explanation for a word. An empty string with a
// nil error means the word is unknown.
type explainer interface {
	Explain(ctx context.Context, word, lang string) (string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the tunables of the practice service.
type Config struct {
	// MaxSaveAttempts bounds how often a save is re-merged after losing a
	// version race.
	MaxSaveAttempts int
	// ExplainConcurrency bounds parallel explanation lookups.
	ExplainConcurrency int
	// MaxTextRunes bounds reference and transcription length.
	MaxTextRunes int
}

// DefaultConfig returns the defaults used when a field is left zero.
func DefaultConfig() Config {
	return Config{
		MaxSaveAttempts:    3,
		ExplainConcurrency: 4,
		MaxTextRunes:       20_000,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxSaveAttempts <= 0 {
		c.MaxSaveAttempts = d.MaxSaveAttempts
	}
	if c.ExplainConcurrency <= 0 {
		c.ExplainConcurrency = d.ExplainConcurrency
	}
	if c.MaxTextRunes <= 0 {
		c.MaxTextRunes = d.MaxTextRunes
	}
	return c
}

// Service implements the practice business logic.
type Service struct {
	sessions   sessionRepo
	vocabulary vocabularyRepo
	explainer  explainer
	tx         txManager
	log        *slog.Logger
	metrics    *observe.Metrics
	clock      clock
	cfg        Config
}

// NewService creates a new practice service.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	vocabulary vocabularyRepo,
	explainer explainer,
	tx txManager,
	metrics *observe.Metrics,
	cfg Config,
) *Service {
	return &Service{
		sessions:   sessions,
		vocabulary: vocabulary,
		explainer:  explainer,
		tx:         tx,
		log:        log.With("service", "practice"),
		metrics:    metrics,
		clock:      systemClock{},
		cfg:        cfg.withDefaults(),
	}
}
