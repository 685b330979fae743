package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	key := NewKey()
	SeedSession(t, pool, key)

	var notes string
	err := pool.QueryRow(context.Background(),
		`SELECT notes FROM practice_sessions WHERE learner_id = $1 AND exercise_id = $2`,
		key.LearnerID, key.ExerciseID,
	).Scan(&notes)
	if err != nil {
		t.Fatalf("expected seeded session, got error: %v", err)
	}
	if notes != "seeded" {
		t.Fatalf("notes = %q, want seeded", notes)
	}
}
