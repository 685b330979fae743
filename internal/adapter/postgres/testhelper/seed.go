package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// NewKey returns a session key for a fresh learner and exercise.
func NewKey() domain.SessionKey {
	return domain.SessionKey{LearnerID: uuid.New(), ExerciseID: "exercise-" + uniqueSuffix()}
}

// SeedSession inserts a draft practice session at version 1 with one
// recording and one vocab pick, bypassing the repository.
func SeedSession(t *testing.T, pool *pgxpool.Pool, key domain.SessionKey) domain.PracticeSession {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	session := domain.PracticeSession{
		Key:     key,
		Attempt: 1,
		Version: 1,
		Status:  domain.PracticeStatusDraft,
		Recordings: []domain.Recording{
			{URL: "https://cdn.example.com/" + uniqueSuffix() + ".webm", FileName: "take.webm", Type: "audio/webm", CreatedAt: now},
		},
		VocabPicks: []domain.VocabPick{
			{Word: "errand", Context: "I ran an errand.", Lang: "en"},
		},
		Notes:     "seeded",
		CreatedAt: now,
		UpdatedAt: now,
	}

	recordings, err := json.Marshal([]map[string]any{{
		"url":        session.Recordings[0].URL,
		"file_name":  session.Recordings[0].FileName,
		"type":       session.Recordings[0].Type,
		"created_at": now,
	}})
	if err != nil {
		t.Fatalf("testhelper: SeedSession marshal recordings: %v", err)
	}
	picks, err := json.Marshal([]map[string]any{{"word": "errand", "context": "I ran an errand.", "lang": "en"}})
	if err != nil {
		t.Fatalf("testhelper: SeedSession marshal picks: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO practice_sessions
		   (learner_id, exercise_id, attempt, version, status, recordings, vocab_picks, notes, created_at, updated_at)
		 VALUES ($1, $2, 1, 1, 'draft', $3, $4, $5, $6, $6)`,
		key.LearnerID, key.ExerciseID, recordings, picks, session.Notes, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSession insert: %v", err)
	}

	return session
}
