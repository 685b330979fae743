package practice

import (
	"context"
	"sync"
)

var _ explainer = &explainerMock{}

type explainerMock struct {
	ExplainFunc func(ctx context.Context, word string, lang string) (string, error)

	calls struct {
		Explain []struct {
			Ctx  context.Context
			Word string
			Lang string
		}
	}
	lockExplain sync.RWMutex
}

func (mock *explainerMock) Explain(ctx context.Context, word string, lang string) (string, error) {
	if mock.ExplainFunc == nil {
		panic("explainerMock.ExplainFunc: method is nil but explainer.Explain was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Word string
		Lang string
	}{Ctx: ctx, Word: word, Lang: lang}
	mock.lockExplain.Lock()
	mock.calls.Explain = append(mock.calls.Explain, callInfo)
	mock.lockExplain.Unlock()
	return mock.ExplainFunc(ctx, word, lang)
}

func (mock *explainerMock) ExplainCalls() []struct {
	Ctx  context.Context
	Word string
	Lang string
} {
	mock.lockExplain.RLock()
	calls := mock.calls.Explain
	mock.lockExplain.RUnlock()
	return calls
}
