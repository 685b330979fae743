package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionKey identifies the single persisted practice record of one learner
// on one exercise.
type SessionKey struct {
	LearnerID  uuid.UUID
	ExerciseID string
}

func (k SessionKey) String() string { return k.LearnerID.String() + "/" + k.ExerciseID }

// PracticeSession is the persisted snapshot of one attempt.
type PracticeSession struct {
	Key SessionKey
	// Attempt starts at 1 and grows on every "practice again".
	Attempt int
	// Version is bumped by the store on every successful write. Zero means
	// the snapshot has never been persisted.
	Version     int64
	Status      PracticeStatus
	Recordings  []Recording
	VocabPicks  []VocabPick
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// IsCompleted reports whether the attempt reached its terminal state.
func (s *PracticeSession) IsCompleted() bool {
	return s != nil && s.Status == PracticeStatusCompleted
}

// Recording is an uploaded audio take. Recordings are immutable; deleting one
// means dropping it from the owning session's list.
type Recording struct {
	URL             string
	FileName        string
	Size            int64
	Type            string
	DurationSeconds float64
	CreatedAt       time.Time
	Transcription   *string
}

// VocabPick is a word the learner selected while practicing.
type VocabPick struct {
	Word        string
	Context     string
	Lang        string
	Explanation *string
}

// VocabPickKey is the uniqueness key of a VocabPick.
type VocabPickKey struct {
	Word    string
	Context string
}

// Key returns the (word, context) uniqueness key.
func (p VocabPick) Key() VocabPickKey {
	return VocabPickKey{Word: p.Word, Context: p.Context}
}

// SessionUpdate is a partial practice session. Every nil field is left
// untouched by the merge; a non-nil field is applied by its own rule.
type SessionUpdate struct {
	Key        SessionKey
	Status     *PracticeStatus
	Recordings *[]Recording
	VocabPicks *[]VocabPick
	Notes      *string
	// SavedAt stamps UpdatedAt (and CompletedAt on completion).
	SavedAt time.Time
}

// ScoringResult is the outcome of comparing a transcription with a
// reference passage.
type ScoringResult struct {
	OverallScore int
	Turns        []TurnResult
}

// TurnResult is the per-turn diagnostic.
type TurnResult struct {
	Text   string
	Status TurnStatus
	Score  int
	Issues []string
	// Hints are advisory "sounds like" notes; they never influence Status,
	// Score or Issues.
	Hints []string
}

// VocabularyEntry is a word imported into the learner's vocabulary when a
// practice attempt is completed.
type VocabularyEntry struct {
	ID             uuid.UUID
	LearnerID      uuid.UUID
	Word           string
	WordNormalized string
	Lang           string
	Context        string
	Explanation    *string
	SourceID       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
