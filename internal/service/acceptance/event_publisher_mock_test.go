package acceptance

import (
	"context"
	"github.com/heartmarshall/askdev-backend/internal/domain"
	"sync"
)

var _ eventPublisher = &eventPublisherMock{}

type eventPublisherMock struct {
	PublishFunc func(ctx context.Context, event domain.Event)

	calls struct {
		Publish []struct {
			Ctx   context.Context
			Event domain.Event
		}
	}
	lockPublish sync.RWMutex
}

func (mock *eventPublisherMock) Publish(ctx context.Context, event domain.Event) {
	if mock.PublishFunc == nil {
		panic("eventPublisherMock.PublishFunc: method is nil but eventPublisher.Publish was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Event domain.Event
	}{Ctx: ctx, Event: event}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	mock.PublishFunc(ctx, event)
}

func (mock *eventPublisherMock) PublishCalls() []struct {
	Ctx   context.Context
	Event domain.Event
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
