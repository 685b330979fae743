package practice

import (
	"slices"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

// MergeSession folds a partial update into the stored snapshot and returns
// the next snapshot. existing may be nil (first save for the key). Neither
// input is modified and the result shares no slices with them.
//
// Rules per field group:
//   - Status: draft -> completed only. A draft write on a completed
//     session leaves the status alone; other fields still apply.
//   - Recordings: the incoming list replaces the stored one.
//   - VocabPicks: the incoming list replaces the stored one, de-duplicated by
//     (word, context). A stored explanation survives when the incoming pick
//     with the same key has none.
//   - Notes: replaced.
//
// Version and Attempt are owned by the store and pass through untouched.
func MergeSession(existing *domain.PracticeSession, update domain.SessionUpdate) *domain.PracticeSession {
	next := cloneSession(existing)
	if next == nil {
		next = &domain.PracticeSession{
			Key:        update.Key,
			Attempt:    1,
			Status:     domain.PracticeStatusDraft,
			Recordings: []domain.Recording{},
			VocabPicks: []domain.VocabPick{},
			CreatedAt:  update.SavedAt,
		}
	}

	if update.Status != nil && *update.Status == domain.PracticeStatusCompleted && !next.IsCompleted() {
		next.Status = domain.PracticeStatusCompleted
		completedAt := update.SavedAt
		next.CompletedAt = &completedAt
	}

	if update.Recordings != nil {
		next.Recordings = cloneRecordings(*update.Recordings)
	}

	if update.VocabPicks != nil {
		next.VocabPicks = mergePicks(next.VocabPicks, *update.VocabPicks)
	}

	if update.Notes != nil {
		next.Notes = *update.Notes
	}

	if !update.SavedAt.IsZero() {
		next.UpdatedAt = update.SavedAt
	}

	return next
}

// AttachExplanation sets explanation on every pick of word, matched by
// normalized word rather than position.
func AttachExplanation(picks []domain.VocabPick, word, explanation string) []domain.VocabPick {
	out := clonePicks(picks)
	target := domain.NormalizeWord(word)
	for i := range out {
		if domain.NormalizeWord(out[i].Word) == target {
			e := explanation
			out[i].Explanation = &e
		}
	}
	return out
}

func mergePicks(stored, incoming []domain.VocabPick) []domain.VocabPick {
	explanations := make(map[domain.VocabPickKey]*string, len(stored))
	for _, p := range stored {
		if p.Explanation != nil {
			explanations[p.Key()] = p.Explanation
		}
	}

	seen := make(map[domain.VocabPickKey]struct{}, len(incoming))
	out := make([]domain.VocabPick, 0, len(incoming))
	for _, p := range incoming {
		key := p.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		pick := clonePick(p)
		if pick.Explanation == nil {
			if e, ok := explanations[key]; ok {
				v := *e
				pick.Explanation = &v
			}
		}
		out = append(out, pick)
	}
	return out
}

func cloneSession(s *domain.PracticeSession) *domain.PracticeSession {
	if s == nil {
		return nil
	}
	c := *s
	c.Recordings = cloneRecordings(s.Recordings)
	c.VocabPicks = clonePicks(s.VocabPicks)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneRecordings(in []domain.Recording) []domain.Recording {
	out := make([]domain.Recording, len(in))
	for i, r := range in {
		if r.Transcription != nil {
			t := *r.Transcription
			r.Transcription = &t
		}
		out[i] = r
	}
	return out
}

func clonePicks(in []domain.VocabPick) []domain.VocabPick {
	out := make([]domain.VocabPick, len(in))
	for i, p := range in {
		out[i] = clonePick(p)
	}
	return out
}

func clonePick(p domain.VocabPick) domain.VocabPick {
	if p.Explanation != nil {
		e := *p.Explanation
		p.Explanation = &e
	}
	return p
}

// unexplainedPicks returns one pick per distinct word that still lacks an
// explanation, in first-seen order.
func unexplainedPicks(picks []domain.VocabPick) []domain.VocabPick {
	var out []domain.VocabPick
	for _, p := range picks {
		if p.Explanation != nil {
			continue
		}
		if slices.ContainsFunc(out, func(o domain.VocabPick) bool {
			return domain.NormalizeWord(o.Word) == domain.NormalizeWord(p.Word)
		}) {
			continue
		}
		out = append(out, p)
	}
	return out
}
