// Package vocabulary stores the words learners import from completed
// practice sessions.
package vocabulary

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/shadowing-backend/internal/adapter/postgres"
	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

const entity = "learner_vocabulary"

// Repo provides learner vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// upsertSQL keeps one row per (learner, normalized word, lang). A re-import
// refreshes context and source and keeps a stored explanation when the new
// pick has none.
const upsertSQL = `
INSERT INTO learner_vocabulary
    (id, learner_id, word, word_normalized, lang, context, explanation, source_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
ON CONFLICT (learner_id, word_normalized, lang) DO UPDATE
SET context     = EXCLUDED.context,
    explanation = COALESCE(EXCLUDED.explanation, learner_vocabulary.explanation),
    source_id   = EXCLUDED.source_id,
    updated_at  = now()`

const listByLearnerSQL = `
SELECT id, learner_id, word, word_normalized, lang, context, explanation, source_id, created_at, updated_at
FROM learner_vocabulary
WHERE learner_id = $1
ORDER BY created_at DESC, word_normalized ASC`

type upsertKey struct {
	word string
	lang string
}

// UpsertPicks imports picks into the learner's vocabulary in one batch and
// returns the number of distinct words written. Picks whose word normalizes
// to "" are skipped.
func (r *Repo) UpsertPicks(ctx context.Context, learnerID uuid.UUID, sourceID string, picks []domain.VocabPick) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	seen := make(map[upsertKey]struct{}, len(picks))
	for _, p := range picks {
		normalized := domain.NormalizeWord(p.Word)
		if normalized == "" {
			continue
		}
		k := upsertKey{word: normalized, lang: p.Lang}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		batch.Queue(upsertSQL,
			uuid.New(), learnerID, p.Word, normalized, p.Lang, p.Context, p.Explanation, sourceID,
		)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	results := querier.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return 0, postgres.MapError(err, entity, learnerID.String())
		}
	}
	if err := results.Close(); err != nil {
		return 0, postgres.MapError(err, entity, learnerID.String())
	}

	return batch.Len(), nil
}

// ListByLearner returns every vocabulary entry of a learner, newest first.
func (r *Repo) ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]domain.VocabularyEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByLearnerSQL, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}
	defer rows.Close()

	entries := []domain.VocabularyEntry{}
	for rows.Next() {
		var e domain.VocabularyEntry
		if err := rows.Scan(
			&e.ID, &e.LearnerID, &e.Word, &e.WordNormalized, &e.Lang,
			&e.Context, &e.Explanation, &e.SourceID, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vocabulary: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vocabulary: %w", err)
	}

	return entries, nil
}
