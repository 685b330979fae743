package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/shadowing-backend/internal/domain"
	"github.com/heartmarshall/shadowing-backend/internal/service/practice"
)

var _ practiceService = &practiceServiceMock{}

type practiceServiceMock struct {
	ExplainPicksFunc func(ctx context.Context, exerciseID string) (*domain.PracticeSession, error)

	GetSessionFunc func(ctx context.Context, exerciseID string) (*domain.PracticeSession, error)

	ListSessionsFunc func(ctx context.Context, input practice.ListSessionsInput) ([]*domain.PracticeSession, int, error)

	ListVocabularyFunc func(ctx context.Context) ([]domain.VocabularyEntry, error)

	PracticeAgainFunc func(ctx context.Context, exerciseID string) (*domain.PracticeSession, error)

	SaveSessionFunc func(ctx context.Context, input practice.SaveSessionInput) (*domain.PracticeSession, error)

	ScoreAttemptFunc func(ctx context.Context, input practice.ScoreInput) (*domain.ScoringResult, error)

	calls struct {
		ExplainPicks []struct {
			Ctx        context.Context
			ExerciseID string
		}
		GetSession []struct {
			Ctx        context.Context
			ExerciseID string
		}
		ListSessions []struct {
			Ctx   context.Context
			Input practice.ListSessionsInput
		}
		ListVocabulary []struct {
			Ctx context.Context
		}
		PracticeAgain []struct {
			Ctx        context.Context
			ExerciseID string
		}
		SaveSession []struct {
			Ctx   context.Context
			Input practice.SaveSessionInput
		}
		ScoreAttempt []struct {
			Ctx   context.Context
			Input practice.ScoreInput
		}
	}
	lockExplainPicks   sync.RWMutex
	lockGetSession     sync.RWMutex
	lockListSessions   sync.RWMutex
	lockListVocabulary sync.RWMutex
	lockPracticeAgain  sync.RWMutex
	lockSaveSession    sync.RWMutex
	lockScoreAttempt   sync.RWMutex
}

func (mock *practiceServiceMock) ExplainPicks(ctx context.Context, exerciseID string) (*domain.PracticeSession, error) {
	if mock.ExplainPicksFunc == nil {
		panic("practiceServiceMock.ExplainPicksFunc: method is nil but practiceService.ExplainPicks was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExerciseID string
	}{Ctx: ctx, ExerciseID: exerciseID}
	mock.lockExplainPicks.Lock()
	mock.calls.ExplainPicks = append(mock.calls.ExplainPicks, callInfo)
	mock.lockExplainPicks.Unlock()
	return mock.ExplainPicksFunc(ctx, exerciseID)
}

func (mock *practiceServiceMock) ExplainPicksCalls() []struct {
	Ctx        context.Context
	ExerciseID string
} {
	mock.lockExplainPicks.RLock()
	calls := mock.calls.ExplainPicks
	mock.lockExplainPicks.RUnlock()
	return calls
}

func (mock *practiceServiceMock) GetSession(ctx context.Context, exerciseID string) (*domain.PracticeSession, error) {
	if mock.GetSessionFunc == nil {
		panic("practiceServiceMock.GetSessionFunc: method is nil but practiceService.GetSession was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExerciseID string
	}{Ctx: ctx, ExerciseID: exerciseID}
	mock.lockGetSession.Lock()
	mock.calls.GetSession = append(mock.calls.GetSession, callInfo)
	mock.lockGetSession.Unlock()
	return mock.GetSessionFunc(ctx, exerciseID)
}

func (mock *practiceServiceMock) GetSessionCalls() []struct {
	Ctx        context.Context
	ExerciseID string
} {
	mock.lockGetSession.RLock()
	calls := mock.calls.GetSession
	mock.lockGetSession.RUnlock()
	return calls
}

func (mock *practiceServiceMock) ListSessions(ctx context.Context, input practice.ListSessionsInput) ([]*domain.PracticeSession, int, error) {
	if mock.ListSessionsFunc == nil {
		panic("practiceServiceMock.ListSessionsFunc: method is nil but practiceService.ListSessions was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input practice.ListSessionsInput
	}{Ctx: ctx, Input: input}
	mock.lockListSessions.Lock()
	mock.calls.ListSessions = append(mock.calls.ListSessions, callInfo)
	mock.lockListSessions.Unlock()
	return mock.ListSessionsFunc(ctx, input)
}

func (mock *practiceServiceMock) ListSessionsCalls() []struct {
	Ctx   context.Context
	Input practice.ListSessionsInput
} {
	mock.lockListSessions.RLock()
	calls := mock.calls.ListSessions
	mock.lockListSessions.RUnlock()
	return calls
}

func (mock *practiceServiceMock) ListVocabulary(ctx context.Context) ([]domain.VocabularyEntry, error) {
	if mock.ListVocabularyFunc == nil {
		panic("practiceServiceMock.ListVocabularyFunc: method is nil but practiceService.ListVocabulary was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListVocabulary.Lock()
	mock.calls.ListVocabulary = append(mock.calls.ListVocabulary, callInfo)
	mock.lockListVocabulary.Unlock()
	return mock.ListVocabularyFunc(ctx)
}

func (mock *practiceServiceMock) ListVocabularyCalls() []struct {
	Ctx context.Context
} {
	mock.lockListVocabulary.RLock()
	calls := mock.calls.ListVocabulary
	mock.lockListVocabulary.RUnlock()
	return calls
}

func (mock *practiceServiceMock) PracticeAgain(ctx context.Context, exerciseID string) (*domain.PracticeSession, error) {
	if mock.PracticeAgainFunc == nil {
		panic("practiceServiceMock.PracticeAgainFunc: method is nil but practiceService.PracticeAgain was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ExerciseID string
	}{Ctx: ctx, ExerciseID: exerciseID}
	mock.lockPracticeAgain.Lock()
	mock.calls.PracticeAgain = append(mock.calls.PracticeAgain, callInfo)
	mock.lockPracticeAgain.Unlock()
	return mock.PracticeAgainFunc(ctx, exerciseID)
}

func (mock *practiceServiceMock) PracticeAgainCalls() []struct {
	Ctx        context.Context
	ExerciseID string
} {
	mock.lockPracticeAgain.RLock()
	calls := mock.calls.PracticeAgain
	mock.lockPracticeAgain.RUnlock()
	return calls
}

func (mock *practiceServiceMock) SaveSession(ctx context.Context, input practice.SaveSessionInput) (*domain.PracticeSession, error) {
	if mock.SaveSessionFunc == nil {
		panic("practiceServiceMock.SaveSessionFunc: method is nil but practiceService.SaveSession was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input practice.SaveSessionInput
	}{Ctx: ctx, Input: input}
	mock.lockSaveSession.Lock()
	mock.calls.SaveSession = append(mock.calls.SaveSession, callInfo)
	mock.lockSaveSession.Unlock()
	return mock.SaveSessionFunc(ctx, input)
}

func (mock *practiceServiceMock) SaveSessionCalls() []struct {
	Ctx   context.Context
	Input practice.SaveSessionInput
} {
	mock.lockSaveSession.RLock()
	calls := mock.calls.SaveSession
	mock.lockSaveSession.RUnlock()
	return calls
}

func (mock *practiceServiceMock) ScoreAttempt(ctx context.Context, input practice.ScoreInput) (*domain.ScoringResult, error) {
	if mock.ScoreAttemptFunc == nil {
		panic("practiceServiceMock.ScoreAttemptFunc: method is nil but practiceService.ScoreAttempt was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input practice.ScoreInput
	}{Ctx: ctx, Input: input}
	mock.lockScoreAttempt.Lock()
	mock.calls.ScoreAttempt = append(mock.calls.ScoreAttempt, callInfo)
	mock.lockScoreAttempt.Unlock()
	return mock.ScoreAttemptFunc(ctx, input)
}

func (mock *practiceServiceMock) ScoreAttemptCalls() []struct {
	Ctx   context.Context
	Input practice.ScoreInput
} {
	mock.lockScoreAttempt.RLock()
	calls := mock.calls.ScoreAttempt
	mock.lockScoreAttempt.RUnlock()
	return calls
}
