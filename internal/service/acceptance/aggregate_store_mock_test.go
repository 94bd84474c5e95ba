package acceptance

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/askdev-backend/internal/domain"
	"sync"
)

var _ aggregateStore = &aggregateStoreMock{}

type aggregateStoreMock struct {
	GetAnswerFunc     func(ctx context.Context, answerID uuid.UUID) (*domain.Answer, error)
	GetQuestionFunc   func(ctx context.Context, questionID uuid.UUID) (*domain.Question, error)
	SetAcceptanceFunc func(ctx context.Context, w domain.AcceptanceWrite, event domain.Event) (domain.AcceptanceState, error)

	calls struct {
		GetAnswer []struct {
			Ctx      context.Context
			AnswerID uuid.UUID
		}
		GetQuestion []struct {
			Ctx        context.Context
			QuestionID uuid.UUID
		}
		SetAcceptance []struct {
			Ctx   context.Context
			W     domain.AcceptanceWrite
			Event domain.Event
		}
	}
	lockGetAnswer     sync.RWMutex
	lockGetQuestion   sync.RWMutex
	lockSetAcceptance sync.RWMutex
}

func (mock *aggregateStoreMock) GetAnswer(ctx context.Context, answerID uuid.UUID) (*domain.Answer, error) {
	if mock.GetAnswerFunc == nil {
		panic("aggregateStoreMock.GetAnswerFunc: method is nil but aggregateStore.GetAnswer was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		AnswerID uuid.UUID
	}{Ctx: ctx, AnswerID: answerID}
	mock.lockGetAnswer.Lock()
	mock.calls.GetAnswer = append(mock.calls.GetAnswer, callInfo)
	mock.lockGetAnswer.Unlock()
	return mock.GetAnswerFunc(ctx, answerID)
}

func (mock *aggregateStoreMock) GetAnswerCalls() []struct {
	Ctx      context.Context
	AnswerID uuid.UUID
} {
	mock.lockGetAnswer.RLock()
	calls := mock.calls.GetAnswer
	mock.lockGetAnswer.RUnlock()
	return calls
}

func (mock *aggregateStoreMock) GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.Question, error) {
	if mock.GetQuestionFunc == nil {
		panic("aggregateStoreMock.GetQuestionFunc: method is nil but aggregateStore.GetQuestion was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		QuestionID uuid.UUID
	}{Ctx: ctx, QuestionID: questionID}
	mock.lockGetQuestion.Lock()
	mock.calls.GetQuestion = append(mock.calls.GetQuestion, callInfo)
	mock.lockGetQuestion.Unlock()
	return mock.GetQuestionFunc(ctx, questionID)
}

func (mock *aggregateStoreMock) GetQuestionCalls() []struct {
	Ctx        context.Context
	QuestionID uuid.UUID
} {
	mock.lockGetQuestion.RLock()
	calls := mock.calls.GetQuestion
	mock.lockGetQuestion.RUnlock()
	return calls
}

func (mock *aggregateStoreMock) SetAcceptance(ctx context.Context, w domain.AcceptanceWrite, event domain.Event) (domain.AcceptanceState, error) {
	if mock.SetAcceptanceFunc == nil {
		panic("aggregateStoreMock.SetAcceptanceFunc: method is nil but aggregateStore.SetAcceptance was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		W     domain.AcceptanceWrite
		Event domain.Event
	}{Ctx: ctx, W: w, Event: event}
	mock.lockSetAcceptance.Lock()
	mock.calls.SetAcceptance = append(mock.calls.SetAcceptance, callInfo)
	mock.lockSetAcceptance.Unlock()
	return mock.SetAcceptanceFunc(ctx, w, event)
}

func (mock *aggregateStoreMock) SetAcceptanceCalls() []struct {
	Ctx   context.Context
	W     domain.AcceptanceWrite
	Event domain.Event
} {
	mock.lockSetAcceptance.RLock()
	calls := mock.calls.SetAcceptance
	mock.lockSetAcceptance.RUnlock()
	return calls
}
