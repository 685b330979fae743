package rest

import (
	"time"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

type scoreRequest struct {
	Reference     string `json:"reference"`
	Transcription string `json:"transcription"`
}

type scoreResponse struct {
	OverallScore int            `json:"overallScore"`
	Turns        []turnResponse `json:"turns"`
}

type turnResponse struct {
	Text   string   `json:"text"`
	Status string   `json:"status"`
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
	Hints  []string `json:"hints,omitempty"`
}

type recordingDTO struct {
	URL             string    `json:"url"`
	FileName        string    `json:"fileName"`
	Size            int64     `json:"size"`
	Type            string    `json:"type"`
	DurationSeconds float64   `json:"durationSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
	Transcription   *string   `json:"transcription,omitempty"`
}

type vocabPickDTO struct {
	Word        string  `json:"word"`
	Context     string  `json:"context"`
	Lang        string  `json:"lang"`
	Explanation *string `json:"explanation,omitempty"`
}

type saveSessionRequest struct {
	Status          *string         `json:"status"`
	Recordings      *[]recordingDTO `json:"recordings"`
	VocabPicks      *[]vocabPickDTO `json:"vocabPicks"`
	Notes           *string         `json:"notes"`
	ExpectedVersion *int64          `json:"expectedVersion"`
}

type sessionResponse struct {
	ExerciseID  string         `json:"exerciseId"`
	Attempt     int            `json:"attempt"`
	Version     int64          `json:"version"`
	Status      string         `json:"status"`
	Recordings  []recordingDTO `json:"recordings"`
	VocabPicks  []vocabPickDTO `json:"vocabPicks"`
	Notes       string         `json:"notes"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

type sessionListResponse struct {
	Items  []sessionResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type vocabularyEntryResponse struct {
	Word        string    `json:"word"`
	Lang        string    `json:"lang"`
	Context     string    `json:"context"`
	Explanation *string   `json:"explanation,omitempty"`
	ExerciseID  string    `json:"exerciseId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type vocabularyListResponse struct {
	Items []vocabularyEntryResponse `json:"items"`
}

func toScoreResponse(r *domain.ScoringResult) scoreResponse {
	turns := make([]turnResponse, len(r.Turns))
	for i, t := range r.Turns {
		issues := t.Issues
		if issues == nil {
			issues = []string{}
		}
		turns[i] = turnResponse{
			Text:   t.Text,
			Status: t.Status.String(),
			Score:  t.Score,
			Issues: issues,
			Hints:  t.Hints,
		}
	}
	return scoreResponse{OverallScore: r.OverallScore, Turns: turns}
}

func toSessionResponse(s *domain.PracticeSession) sessionResponse {
	recs := make([]recordingDTO, len(s.Recordings))
	for i, r := range s.Recordings {
		recs[i] = recordingDTO{
			URL:             r.URL,
			FileName:        r.FileName,
			Size:            r.Size,
			Type:            r.Type,
			DurationSeconds: r.DurationSeconds,
			CreatedAt:       r.CreatedAt,
			Transcription:   r.Transcription,
		}
	}
	picks := make([]vocabPickDTO, len(s.VocabPicks))
	for i, p := range s.VocabPicks {
		picks[i] = vocabPickDTO{Word: p.Word, Context: p.Context, Lang: p.Lang, Explanation: p.Explanation}
	}
	return sessionResponse{
		ExerciseID:  s.Key.ExerciseID,
		Attempt:     s.Attempt,
		Version:     s.Version,
		Status:      s.Status.String(),
		Recordings:  recs,
		VocabPicks:  picks,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		CompletedAt: s.CompletedAt,
	}
}

func fromRecordings(in []recordingDTO) []domain.Recording {
	out := make([]domain.Recording, len(in))
	for i, r := range in {
		out[i] = domain.Recording{
			URL:             r.URL,
			FileName:        r.FileName,
			Size:            r.Size,
			Type:            r.Type,
			DurationSeconds: r.DurationSeconds,
			CreatedAt:       r.CreatedAt,
			Transcription:   r.Transcription,
		}
	}
	return out
}

func fromVocabPicks(in []vocabPickDTO) []domain.VocabPick {
	out := make([]domain.VocabPick, len(in))
	for i, p := range in {
		out[i] = domain.VocabPick{Word: p.Word, Context: p.Context, Lang: p.Lang, Explanation: p.Explanation}
	}
	return out
}

func toVocabularyEntryResponse(e domain.VocabularyEntry) vocabularyEntryResponse {
	return vocabularyEntryResponse{
		Word:        e.Word,
		Lang:        e.Lang,
		Context:     e.Context,
		Explanation: e.Explanation,
		ExerciseID:  e.SourceID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
