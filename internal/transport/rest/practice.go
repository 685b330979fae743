package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
	"github.com/heartmarshall/shadowing-backend/internal/service/practice"
)

type practiceService interface {
	ScoreAttempt(ctx context.Context, input practice.ScoreInput) (*domain.ScoringResult, error)
	GetSession(ctx context.Context, exerciseID string) (*domain.PracticeSession, error)
	SaveSession(ctx context.Context, input practice.SaveSessionInput) (*domain.PracticeSession, error)
	PracticeAgain(ctx context.Context, exerciseID string) (*domain.PracticeSession, error)
	ExplainPicks(ctx context.Context, exerciseID string) (*domain.PracticeSession, error)
	ListSessions(ctx context.Context, input practice.ListSessionsInput) ([]*domain.PracticeSession, int, error)
	ListVocabulary(ctx context.Context) ([]domain.VocabularyEntry, error)
}

// PracticeHandler serves the practice REST endpoints.
type PracticeHandler struct {
	svc          practiceService
	log          *slog.Logger
	maxBodyBytes int64
}

// NewPracticeHandler creates a PracticeHandler.
func NewPracticeHandler(svc practiceService, logger *slog.Logger, maxBodyBytes int64) *PracticeHandler {
	return &PracticeHandler{svc: svc, log: logger.With("handler", "practice"), maxBodyBytes: maxBodyBytes}
}

// Score handles POST /v1/practice/score.
func (h *PracticeHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.ScoreAttempt(r.Context(), practice.ScoreInput{
		Reference:     req.Reference,
		Transcription: req.Transcription,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toScoreResponse(result))
}

// List handles GET /v1/practice/sessions.
func (h *PracticeHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := parseListQuery(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	sessions, total, err := h.svc.ListSessions(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]sessionResponse, len(sessions))
	for i, s := range sessions {
		items[i] = toSessionResponse(s)
	}
	writeJSON(w, http.StatusOK, sessionListResponse{
		Items:  items,
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

// Vocabulary handles GET /v1/vocabulary.
func (h *PracticeHandler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListVocabulary(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items := make([]vocabularyEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = toVocabularyEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, vocabularyListResponse{Items: items})
}

// Get handles GET /v1/practice/sessions/{exerciseID}.
func (h *PracticeHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.GetSession(r.Context(), r.PathValue("exerciseID"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no session for this exercise")
		return
	}
	writeSession(w, http.StatusOK, session)
}

// Save handles PUT /v1/practice/sessions/{exerciseID}. The expected version
// comes from the body, or from an If-Match header carrying a session ETag.
func (h *PracticeHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveSessionRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := practice.SaveSessionInput{
		ExerciseID:      r.PathValue("exerciseID"),
		Notes:           req.Notes,
		ExpectedVersion: req.ExpectedVersion,
	}
	if req.Status != nil {
		status := domain.PracticeStatus(*req.Status)
		input.Status = &status
	}
	if req.Recordings != nil {
		recs := fromRecordings(*req.Recordings)
		input.Recordings = &recs
	}
	if req.VocabPicks != nil {
		picks := fromVocabPicks(*req.VocabPicks)
		input.VocabPicks = &picks
	}
	if input.ExpectedVersion == nil {
		v, err := parseIfMatch(r.Header.Get("If-Match"))
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		input.ExpectedVersion = v
	}

	session, err := h.svc.SaveSession(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeSession(w, http.StatusOK, session)
}

// Restart handles POST /v1/practice/sessions/{exerciseID}/restart.
func (h *PracticeHandler) Restart(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.PracticeAgain(r.Context(), r.PathValue("exerciseID"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeSession(w, http.StatusCreated, session)
}

// Explain handles POST /v1/practice/sessions/{exerciseID}/explanations.
func (h *PracticeHandler) Explain(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.ExplainPicks(r.Context(), r.PathValue("exerciseID"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeSession(w, http.StatusOK, session)
}

func writeSession(w http.ResponseWriter, status int, s *domain.PracticeSession) {
	w.Header().Set("ETag", etag(s.Version))
	writeJSON(w, status, toSessionResponse(s))
}

func etag(version int64) string {
	return `"v` + strconv.FormatInt(version, 10) + `"`
}

// parseIfMatch accepts an ETag produced by etag. An absent header or "*"
// means no expectation.
func parseIfMatch(header string) (*int64, error) {
	header = strings.TrimSpace(header)
	if header == "" || header == "*" {
		return nil, nil
	}
	raw := strings.TrimPrefix(strings.Trim(strings.TrimPrefix(header, "W/"), `"`), "v")
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, domain.NewValidationError("If-Match", "must be a session ETag")
	}
	return &v, nil
}

func parseListQuery(r *http.Request) (practice.ListSessionsInput, error) {
	q := r.URL.Query()
	var (
		input practice.ListSessionsInput
		errs  []domain.FieldError
	)

	if s := q.Get("status"); s != "" {
		status := domain.PracticeStatus(s)
		input.Status = &status
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &input.Limit}, {"offset", &input.Offset}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: p.name, Message: fmt.Sprintf("not an integer: %q", raw)})
			continue
		}
		*p.dst = n
	}

	if len(errs) > 0 {
		return input, domain.NewValidationErrors(errs)
	}
	// Validate fills the default limit echoed in the response.
	return input, input.Validate()
}
