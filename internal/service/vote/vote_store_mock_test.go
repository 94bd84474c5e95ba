package vote

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/askdev-backend/internal/domain"
	"sync"
)

var _ voteStore = &voteStoreMock{}

type voteStoreMock struct {
	ReadTargetFunc func(ctx context.Context, ref domain.TargetRef) (domain.TargetState, error)
	GetVoteFunc    func(ctx context.Context, voterID uuid.UUID, ref domain.TargetRef) (*domain.VoteRecord, error)
	WriteVoteFunc  func(ctx context.Context, w domain.VoteWrite, event domain.Event) (domain.TargetState, error)

	calls struct {
		ReadTarget []struct {
			Ctx context.Context
			Ref domain.TargetRef
		}
		GetVote []struct {
			Ctx     context.Context
			VoterID uuid.UUID
			Ref     domain.TargetRef
		}
		WriteVote []struct {
			Ctx   context.Context
			W     domain.VoteWrite
			Event domain.Event
		}
	}
	lockReadTarget sync.RWMutex
	lockGetVote    sync.RWMutex
	lockWriteVote  sync.RWMutex
}

func (mock *voteStoreMock) ReadTarget(ctx context.Context, ref domain.TargetRef) (domain.TargetState, error) {
	if mock.ReadTargetFunc == nil {
		panic("voteStoreMock.ReadTargetFunc: method is nil but voteStore.ReadTarget was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ref domain.TargetRef
	}{Ctx: ctx, Ref: ref}
	mock.lockReadTarget.Lock()
	mock.calls.ReadTarget = append(mock.calls.ReadTarget, callInfo)
	mock.lockReadTarget.Unlock()
	return mock.ReadTargetFunc(ctx, ref)
}

func (mock *voteStoreMock) ReadTargetCalls() []struct {
	Ctx context.Context
	Ref domain.TargetRef
} {
	mock.lockReadTarget.RLock()
	calls := mock.calls.ReadTarget
	mock.lockReadTarget.RUnlock()
	return calls
}

func (mock *voteStoreMock) GetVote(ctx context.Context, voterID uuid.UUID, ref domain.TargetRef) (*domain.VoteRecord, error) {
	if mock.GetVoteFunc == nil {
		panic("voteStoreMock.GetVoteFunc: method is nil but voteStore.GetVote was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		VoterID uuid.UUID
		Ref     domain.TargetRef
	}{Ctx: ctx, VoterID: voterID, Ref: ref}
	mock.lockGetVote.Lock()
	mock.calls.GetVote = append(mock.calls.GetVote, callInfo)
	mock.lockGetVote.Unlock()
	return mock.GetVoteFunc(ctx, voterID, ref)
}

func (mock *voteStoreMock) GetVoteCalls() []struct {
	Ctx     context.Context
	VoterID uuid.UUID
	Ref     domain.TargetRef
} {
	mock.lockGetVote.RLock()
	calls := mock.calls.GetVote
	mock.lockGetVote.RUnlock()
	return calls
}

func (mock *voteStoreMock) WriteVote(ctx context.Context, w domain.VoteWrite, event domain.Event) (domain.TargetState, error) {
	if mock.WriteVoteFunc == nil {
		panic("voteStoreMock.WriteVoteFunc: method is nil but voteStore.WriteVote was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		W     domain.VoteWrite
		Event domain.Event
	}{Ctx: ctx, W: w, Event: event}
	mock.lockWriteVote.Lock()
	mock.calls.WriteVote = append(mock.calls.WriteVote, callInfo)
	mock.lockWriteVote.Unlock()
	return mock.WriteVoteFunc(ctx, w, event)
}

func (mock *voteStoreMock) WriteVoteCalls() []struct {
	Ctx   context.Context
	W     domain.VoteWrite
	Event domain.Event
} {
	mock.lockWriteVote.RLock()
	calls := mock.calls.WriteVote
	mock.lockWriteVote.RUnlock()
	return calls
}
