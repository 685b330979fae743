package practice

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/shadowing-backend/internal/domain"
)

var _ vocabularyRepo = &vocabularyRepoMock{}

type vocabularyRepoMock struct {
	ListByLearnerFunc func(ctx context.Context, learnerID uuid.UUID) ([]domain.VocabularyEntry, error)

	UpsertPicksFunc func(ctx context.Context, learnerID uuid.UUID, sourceID string, picks []domain.VocabPick) (int, error)

	calls struct {
		ListByLearner []struct {
			Ctx       context.Context
			LearnerID uuid.UUID
		}
		UpsertPicks []struct {
			Ctx       context.Context
			LearnerID uuid.UUID
			SourceID  string
			Picks     []domain.VocabPick
		}
	}
	lockListByLearner sync.RWMutex
	lockUpsertPicks   sync.RWMutex
}

func (mock *vocabularyRepoMock) ListByLearner(ctx context.Context, learnerID uuid.UUID) ([]domain.VocabularyEntry, error) {
	if mock.ListByLearnerFunc == nil {
		panic("vocabularyRepoMock.ListByLearnerFunc: method is nil but vocabularyRepo.ListByLearner was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LearnerID uuid.UUID
	}{Ctx: ctx, LearnerID: learnerID}
	mock.lockListByLearner.Lock()
	mock.calls.ListByLearner = append(mock.calls.ListByLearner, callInfo)
	mock.lockListByLearner.Unlock()
	return mock.ListByLearnerFunc(ctx, learnerID)
}

func (mock *vocabularyRepoMock) ListByLearnerCalls() []struct {
	Ctx       context.Context
	LearnerID uuid.UUID
} {
	mock.lockListByLearner.RLock()
	calls := mock.calls.ListByLearner
	mock.lockListByLearner.RUnlock()
	return calls
}

func (mock *vocabularyRepoMock) UpsertPicks(ctx context.Context, learnerID uuid.UUID, sourceID string, picks []domain.VocabPick) (int, error) {
	if mock.UpsertPicksFunc == nil {
		panic("vocabularyRepoMock.UpsertPicksFunc: method is nil but vocabularyRepo.UpsertPicks was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LearnerID uuid.UUID
		SourceID  string
		Picks     []domain.VocabPick
	}{Ctx: ctx, LearnerID: learnerID, SourceID: sourceID, Picks: picks}
	mock.lockUpsertPicks.Lock()
	mock.calls.UpsertPicks = append(mock.calls.UpsertPicks, callInfo)
	mock.lockUpsertPicks.Unlock()
	return mock.UpsertPicksFunc(ctx, learnerID, sourceID, picks)
}

func (mock *vocabularyRepoMock) UpsertPicksCalls() []struct {
	Ctx       context.Context
	LearnerID uuid.UUID
	SourceID  string
	Picks     []domain.VocabPick
} {
	mock.lockUpsertPicks.RLock()
	calls := mock.calls.UpsertPicks
	mock.lockUpsertPicks.RUnlock()
	return calls
}
