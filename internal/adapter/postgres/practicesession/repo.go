// Package practicesession persists practice session snapshots in PostgreSQL.
// Recordings and vocab picks are JSONB columns; every write is guarded by the
// row version so concurrent saves cannot overwrite each other.
package practicesession

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/shadowing-backend/internal/adapter/postgres"
	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

const entity = "practice_session"

// Repo provides practice session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// New creates a new practice session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const sessionColumns = `learner_id, exercise_id, attempt, version, status, recordings, vocab_picks, notes, created_at, updated_at, completed_at`

const getSQL = `
SELECT ` + sessionColumns + `
FROM practice_sessions
WHERE learner_id = $1 AND exercise_id = $2`

// insertSQL creates the first snapshot of a key. A concurrent insert of the
// same key makes it return no row.
const insertSQL = `
INSERT INTO practice_sessions
    (learner_id, exercise_id, attempt, version, status, recordings, vocab_picks, notes, created_at, updated_at, completed_at)
VALUES ($1, $2, $3, 1, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (learner_id, exercise_id) DO NOTHING
RETURNING ` + sessionColumns

// updateSQL replaces the snapshot only if nobody wrote since version $3.
const updateSQL = `
UPDATE practice_sessions
SET attempt = $4, version = version + 1, status = $5, recordings = $6, vocab_picks = $7,
    notes = $8, created_at = $9, updated_at = $10, completed_at = $11
WHERE learner_id = $1 AND exercise_id = $2 AND version = $3
RETURNING ` + sessionColumns

const archiveSQL = `
INSERT INTO practice_session_attempts
    (id, learner_id, exercise_id, attempt, status, recordings, vocab_picks, notes, created_at, updated_at, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (learner_id, exercise_id, attempt) DO NOTHING`

const deleteArchivedBeforeSQL = `
DELETE FROM practice_session_attempts
WHERE archived_at < $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the current snapshot for key.
// Returns domain.ErrNotFound if the key has never been saved.
func (r *Repo) Get(ctx context.Context, key domain.SessionKey) (*domain.PracticeSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	session, err := scanSession(querier.QueryRow(ctx, getSQL, key.LearnerID, key.ExerciseID))
	if err != nil {
		return nil, postgres.MapError(err, entity, key.String())
	}
	return session, nil
}

// List returns the learner's current sessions, most recently updated first,
// together with the total count matching the status filter.
func (r *Repo) List(ctx context.Context, learnerID uuid.UUID, status *domain.PracticeStatus, limit, offset int) ([]*domain.PracticeSession, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{sq.Eq{"learner_id": learnerID}}
	if status != nil {
		where = append(where, sq.Eq{"status": string(*status)})
	}

	countSQL, countArgs, err := r.psql.Select("count(*)").From("practice_sessions").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count practice sessions: %w", err)
	}

	listSQL, listArgs, err := r.psql.Select(sessionColumns).
		From("practice_sessions").
		Where(where).
		OrderBy("updated_at DESC", "exercise_id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list practice sessions: %w", err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list practice sessions: %w", err)
	}

	return sessions, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Save stores session if the stored version still equals expectedVersion
// (0 meaning "no row yet") and returns the stored snapshot with its new
// version. A lost race returns domain.ErrConflict.
func (r *Repo) Save(ctx context.Context, session *domain.PracticeSession, expectedVersion int64) (*domain.PracticeSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	key := session.Key.String()

	recordings, err := marshalRecordings(session.Recordings)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", entity, key, err)
	}
	picks, err := marshalPicks(session.VocabPicks)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", entity, key, err)
	}

	createdAt := truncate(session.CreatedAt)
	updatedAt := truncate(session.UpdatedAt)
	completedAt := truncatePtr(session.CompletedAt)

	var row pgx.Row
	if expectedVersion == 0 {
		row = querier.QueryRow(ctx, insertSQL,
			session.Key.LearnerID, session.Key.ExerciseID, session.Attempt, string(session.Status),
			recordings, picks, session.Notes, createdAt, updatedAt, completedAt,
		)
	} else {
		row = querier.QueryRow(ctx, updateSQL,
			session.Key.LearnerID, session.Key.ExerciseID, expectedVersion,
			session.Attempt, string(session.Status), recordings, picks,
			session.Notes, createdAt, updatedAt, completedAt,
		)
	}

	saved, err := scanSession(row)
	if err != nil {
		// No row back means the insert hit an existing key or the version
		// moved on.
		err = postgres.MapError(err, entity, key)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: version %d: %w", entity, key, expectedVersion, domain.ErrConflict)
		}
		return nil, err
	}

	return saved, nil
}

// Archive copies session into the attempts history. Archiving the same
// attempt twice is a no-op.
func (r *Repo) Archive(ctx context.Context, session *domain.PracticeSession) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	key := session.Key.String()

	recordings, err := marshalRecordings(session.Recordings)
	if err != nil {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}
	picks, err := marshalPicks(session.VocabPicks)
	if err != nil {
		return fmt.Errorf("%s %s: %w", entity, key, err)
	}

	_, err = querier.Exec(ctx, archiveSQL,
		uuid.New(), session.Key.LearnerID, session.Key.ExerciseID, session.Attempt, string(session.Status),
		recordings, picks, session.Notes,
		truncate(session.CreatedAt), truncate(session.UpdatedAt), truncatePtr(session.CompletedAt),
	)
	if err != nil {
		return postgres.MapError(err, entity, key)
	}
	return nil
}

// DeleteArchivedBefore removes archived attempts older than cutoff and
// returns how many were deleted.
func (r *Repo) DeleteArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteArchivedBeforeSQL, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete archived attempts: %w", err)
	}
	return ct.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanSession(row pgx.Row) (*domain.PracticeSession, error) {
	var (
		s              domain.PracticeSession
		status         string
		recordingsJSON []byte
		picksJSON      []byte
	)

	if err := row.Scan(
		&s.Key.LearnerID, &s.Key.ExerciseID, &s.Attempt, &s.Version, &status,
		&recordingsJSON, &picksJSON, &s.Notes, &s.CreatedAt, &s.UpdatedAt, &s.CompletedAt,
	); err != nil {
		return nil, err
	}
	s.Status = domain.PracticeStatus(status)

	var err error
	if s.Recordings, err = unmarshalRecordings(recordingsJSON); err != nil {
		return nil, fmt.Errorf("%s %s: %w", entity, s.Key, err)
	}
	if s.VocabPicks, err = unmarshalPicks(picksJSON); err != nil {
		return nil, fmt.Errorf("%s %s: %w", entity, s.Key, err)
	}

	return &s, nil
}

func scanSessions(rows pgx.Rows) ([]*domain.PracticeSession, error) {
	sessions := []*domain.PracticeSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func truncate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func truncatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := truncate(*t)
	return &v
}
