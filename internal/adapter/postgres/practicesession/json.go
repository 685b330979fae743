package practicesession

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

// Domain types carry no json tags; the repo owns the JSONB layout.

type recordingJSON struct {
	URL             string    `json:"url"`
	FileName        string    `json:"file_name,omitempty"`
	Size            int64     `json:"size,omitempty"`
	Type            string    `json:"type,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	Transcription   *string   `json:"transcription,omitempty"`
}

type vocabPickJSON struct {
	Word        string  `json:"word"`
	Context     string  `json:"context,omitempty"`
	Lang        string  `json:"lang,omitempty"`
	Explanation *string `json:"explanation,omitempty"`
}

func marshalRecordings(in []domain.Recording) ([]byte, error) {
	out := make([]recordingJSON, len(in))
	for i, r := range in {
		out[i] = recordingJSON{
			URL:             r.URL,
			FileName:        r.FileName,
			Size:            r.Size,
			Type:            r.Type,
			DurationSeconds: r.DurationSeconds,
			CreatedAt:       r.CreatedAt.UTC(),
			Transcription:   r.Transcription,
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal recordings: %w", err)
	}
	return b, nil
}

func unmarshalRecordings(data []byte) ([]domain.Recording, error) {
	var in []recordingJSON
	if len(data) > 0 {
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("unmarshal recordings: %w", err)
		}
	}
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
	return out, nil
}

func marshalPicks(in []domain.VocabPick) ([]byte, error) {
	out := make([]vocabPickJSON, len(in))
	for i, p := range in {
		out[i] = vocabPickJSON(p)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal vocab picks: %w", err)
	}
	return b, nil
}

func unmarshalPicks(data []byte) ([]domain.VocabPick, error) {
	var in []vocabPickJSON
	if len(data) > 0 {
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("unmarshal vocab picks: %w", err)
		}
	}
	out := make([]domain.VocabPick, len(in))
	for i, p := range in {
		out[i] = domain.VocabPick(p)
	}
	return out, nil
}
