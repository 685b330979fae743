package practice

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/shadowing-backend/internal/domain"
	"sync"
)

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	GetFunc func(ctx context.Context, key domain.SessionKey) (*domain.PracticeSession, error)

	SaveFunc func(ctx context.Context, session *domain.PracticeSession, expectedVersion int64) (*domain.PracticeSession, error)

	ArchiveFunc func(ctx context.Context, session *domain.PracticeSession) error

	ListFunc func(ctx context.Context, learnerID uuid.UUID, status *domain.PracticeStatus, limit int, offset int) ([]*domain.PracticeSession, int, error)

	calls struct {
		Get []struct {
			Ctx context.Context
			Key domain.SessionKey
		}
		Save []struct {
			Ctx             context.Context
			Session         *domain.PracticeSession
			ExpectedVersion int64
		}
		Archive []struct {
			Ctx     context.Context
			Session *domain.PracticeSession
		}
		List []struct {
			Ctx       context.Context
			LearnerID uuid.UUID
			Status    *domain.PracticeStatus
			Limit     int
			Offset    int
		}
	}
	lockGet     sync.RWMutex
	lockSave    sync.RWMutex
	lockArchive sync.RWMutex
	lockList    sync.RWMutex
}

func (mock *sessionRepoMock) Get(ctx context.Context, key domain.SessionKey) (*domain.PracticeSession, error) {
	if mock.GetFunc == nil {
		panic("sessionRepoMock.GetFunc: method is nil but sessionRepo.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key domain.SessionKey
	}{Ctx: ctx, Key: key}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *sessionRepoMock) GetCalls() []struct {
	Ctx context.Context
	Key domain.SessionKey
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *sessionRepoMock) Save(ctx context.Context, session *domain.PracticeSession, expectedVersion int64) (*domain.PracticeSession, error) {
	if mock.SaveFunc == nil {
		panic("sessionRepoMock.SaveFunc: method is nil but sessionRepo.Save was just called")
	}
	callInfo := struct {
		Ctx             context.Context
		Session         *domain.PracticeSession
		ExpectedVersion int64
	}{Ctx: ctx, Session: session, ExpectedVersion: expectedVersion}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, session, expectedVersion)
}

func (mock *sessionRepoMock) SaveCalls() []struct {
	Ctx             context.Context
	Session         *domain.PracticeSession
	ExpectedVersion int64
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *sessionRepoMock) Archive(ctx context.Context, session *domain.PracticeSession) error {
	if mock.ArchiveFunc == nil {
		panic("sessionRepoMock.ArchiveFunc: method is nil but sessionRepo.Archive was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Session *domain.PracticeSession
	}{Ctx: ctx, Session: session}
	mock.lockArchive.Lock()
	mock.calls.Archive = append(mock.calls.Archive, callInfo)
	mock.lockArchive.Unlock()
	return mock.ArchiveFunc(ctx, session)
}

func (mock *sessionRepoMock) ArchiveCalls() []struct {
	Ctx     context.Context
	Session *domain.PracticeSession
} {
	mock.lockArchive.RLock()
	calls := mock.calls.Archive
	mock.lockArchive.RUnlock()
	return calls
}

func (mock *sessionRepoMock) List(ctx context.Context, learnerID uuid.UUID, status *domain.PracticeStatus, limit int, offset int) ([]*domain.PracticeSession, int, error) {
	if mock.ListFunc == nil {
		panic("sessionRepoMock.ListFunc: method is nil but sessionRepo.List was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		LearnerID uuid.UUID
		Status    *domain.PracticeStatus
		Limit     int
		Offset    int
	}{Ctx: ctx, LearnerID: learnerID, Status: status, Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, learnerID, status, limit, offset)
}

func (mock *sessionRepoMock) ListCalls() []struct {
	Ctx       context.Context
	LearnerID uuid.UUID
	Status    *domain.PracticeStatus
	Limit     int
	Offset    int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
