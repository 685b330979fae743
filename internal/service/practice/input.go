package practice

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

const (
	maxExerciseIDLen  = 128
	maxRecordings     = 100
	maxVocabPicks     = 500
	maxWordLen        = 100
	maxContextLen     = 2_000
	maxNotesLen       = 10_000
	maxRecordingBytes = 100 << 20

	defaultListLimit = 20
	maxListLimit     = 200
)

// ScoreInput holds the parameters for scoring one attempt.
type ScoreInput struct {
	Reference     string
	Transcription string
}

// Validate checks the text sizes against maxRunes.
func (i *ScoreInput) Validate(maxRunes int) error {
	var errs []domain.FieldError

	if utf8.RuneCountInString(i.Reference) > maxRunes {
		errs = append(errs, domain.FieldError{Field: "reference", Message: fmt.Sprintf("max %d characters", maxRunes)})
	}
	if utf8.RuneCountInString(i.Transcription) > maxRunes {
		errs = append(errs, domain.FieldError{Field: "transcription", Message: fmt.Sprintf("max %d characters", maxRunes)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SaveSessionInput is a partial session update. Nil fields are left as
// stored. ExpectedVersion, when set, turns a lost version race into
// domain.ErrConflict instead of an automatic re-merge.
type SaveSessionInput struct {
	ExerciseID      string
	Status          *domain.PracticeStatus
	Recordings      *[]domain.Recording
	VocabPicks      *[]domain.VocabPick
	Notes           *string
	ExpectedVersion *int64
}

// Validate checks all fields and collects all errors.
func (i *SaveSessionInput) Validate() error {
	errs := validateExerciseID(i.ExerciseID)

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be draft or completed"})
	}

	if i.Recordings != nil {
		recs := *i.Recordings
		if len(recs) > maxRecordings {
			errs = append(errs, domain.FieldError{Field: "recordings", Message: fmt.Sprintf("max %d recordings", maxRecordings)})
		}
		for idx, r := range recs {
			field := fmt.Sprintf("recordings[%d]", idx)
			if strings.TrimSpace(r.URL) == "" {
				errs = append(errs, domain.FieldError{Field: field + ".url", Message: "required"})
			}
			if r.Size < 0 || r.Size > maxRecordingBytes {
				errs = append(errs, domain.FieldError{Field: field + ".size", Message: "out of range"})
			}
			if r.DurationSeconds < 0 {
				errs = append(errs, domain.FieldError{Field: field + ".duration_seconds", Message: "must be non-negative"})
			}
		}
	}

	if i.VocabPicks != nil {
		picks := *i.VocabPicks
		if len(picks) > maxVocabPicks {
			errs = append(errs, domain.FieldError{Field: "vocab_picks", Message: fmt.Sprintf("max %d picks", maxVocabPicks)})
		}
		for idx, p := range picks {
			field := fmt.Sprintf("vocab_picks[%d]", idx)
			word := strings.TrimSpace(p.Word)
			if word == "" {
				errs = append(errs, domain.FieldError{Field: field + ".word", Message: "required"})
			} else if utf8.RuneCountInString(word) > maxWordLen {
				errs = append(errs, domain.FieldError{Field: field + ".word", Message: fmt.Sprintf("max %d characters", maxWordLen)})
			}
			if utf8.RuneCountInString(p.Context) > maxContextLen {
				errs = append(errs, domain.FieldError{Field: field + ".context", Message: fmt.Sprintf("max %d characters", maxContextLen)})
			}
		}
	}

	if i.Notes != nil && utf8.RuneCountInString(*i.Notes) > maxNotesLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: fmt.Sprintf("max %d characters", maxNotesLen)})
	}

	if i.ExpectedVersion != nil && *i.ExpectedVersion < 0 {
		errs = append(errs, domain.FieldError{Field: "expected_version", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListSessionsInput holds the parameters for listing a learner's sessions.
type ListSessionsInput struct {
	Status *domain.PracticeStatus
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors. A zero Limit is
// replaced by the default.
func (i *ListSessionsInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be draft or completed"})
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxListLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	if i.Limit == 0 {
		i.Limit = defaultListLimit
	}
	return nil
}

func validateExerciseID(id string) []domain.FieldError {
	id = strings.TrimSpace(id)
	switch {
	case id == "":
		return []domain.FieldError{{Field: "exercise_id", Message: "required"}}
	case len(id) > maxExerciseIDLen:
		return []domain.FieldError{{Field: "exercise_id", Message: fmt.Sprintf("max %d bytes", maxExerciseIDLen)}}
	}
	return nil
}
