// Package memory implements the data gateway in process memory. A single
// mutex serializes every operation, which makes each compare-and-swap
// trivially linearizable. State is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/gateway"
)

var _ gateway.Gateway = (*Store)(nil)

type voteKey struct {
	voter  uuid.UUID
	target domain.TargetRef
}

type reputationKey struct {
	event uuid.UUID
	user  uuid.UUID
}

type storedEvent struct {
	event      domain.Event
	dispatched bool
}

// Store is the in-memory gateway.
type Store struct {
	mu sync.Mutex

	questions     map[uuid.UUID]domain.Question
	answers       map[uuid.UUID]domain.Answer
	votes         map[voteKey]domain.VoteRecord
	events        []storedEvent
	eventIndex    map[uuid.UUID]int
	reputation    map[uuid.UUID]int64
	applied       map[reputationKey]struct{}
	notifications []domain.Notification
	notifIndex    map[uuid.UUID]int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		questions:  make(map[uuid.UUID]domain.Question),
		answers:    make(map[uuid.UUID]domain.Answer),
		votes:      make(map[voteKey]domain.VoteRecord),
		eventIndex: make(map[uuid.UUID]int),
		reputation: make(map[uuid.UUID]int64),
		applied:    make(map[reputationKey]struct{}),
		notifIndex: make(map[uuid.UUID]int),
	}
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() {}

// ---------------------------------------------------------------------------
// Votes
// ---------------------------------------------------------------------------

func (s *Store) ReadTarget(ctx context.Context, ref domain.TargetRef) (domain.TargetState, error) {
	if err := ctx.Err(); err != nil {
		return domain.TargetState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.targetLocked(ref)
}

func (s *Store) targetLocked(ref domain.TargetRef) (domain.TargetState, error) {
	switch ref.Type {
	case domain.TargetTypeQuestion:
		q, ok := s.questions[ref.ID]
		if !ok {
			return domain.TargetState{}, fmt.Errorf("question %s: %w", ref.ID, domain.ErrNotFound)
		}
		return domain.TargetState{Ref: ref, AuthorID: q.AuthorID, QuestionID: q.ID, Tally: q.VoteTally, Version: q.Version}, nil
	case domain.TargetTypeAnswer:
		a, ok := s.answers[ref.ID]
		if !ok {
			return domain.TargetState{}, fmt.Errorf("answer %s: %w", ref.ID, domain.ErrNotFound)
		}
		return domain.TargetState{Ref: ref, AuthorID: a.AuthorID, QuestionID: a.QuestionID, Tally: a.VoteTally, Version: a.Version}, nil
	default:
		return domain.TargetState{}, fmt.Errorf("target type %q: %w", ref.Type, domain.ErrValidation)
	}
}

func (s *Store) GetVote(ctx context.Context, voterID uuid.UUID, ref domain.TargetRef) (*domain.VoteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.votes[voteKey{voter: voterID, target: ref}]
	if !ok {
		return nil, fmt.Errorf("vote %s on %s: %w", voterID, ref.ID, domain.ErrNotFound)
	}
	return &v, nil
}

func (s *Store) WriteVote(ctx context.Context, w domain.VoteWrite, event domain.Event) (domain.TargetState, error) {
	if err := ctx.Err(); err != nil {
		return domain.TargetState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.eventIndex[event.ID]; ok {
		return domain.TargetState{}, fmt.Errorf("event %s: %w", event.ID, domain.ErrEventRecorded)
	}

	state, err := s.targetLocked(w.Target)
	if err != nil {
		return domain.TargetState{}, err
	}
	if state.Version != w.ExpectedVersion {
		return domain.TargetState{}, fmt.Errorf("%s %s: %w", w.Target.Type, w.Target.ID, domain.ErrVersionConflict)
	}

	key := voteKey{voter: w.VoterID, target: w.Target}
	_, exists := s.votes[key]
	switch w.Outcome {
	case domain.VoteOutcomeCast:
		if exists {
			return domain.TargetState{}, fmt.Errorf("vote %s on %s: %w", w.VoterID, w.Target.ID, domain.ErrVersionConflict)
		}
		s.votes[key] = domain.VoteRecord{VoterID: w.VoterID, Target: w.Target, Direction: w.Direction, CastAt: w.At}
	case domain.VoteOutcomeChanged:
		if !exists {
			return domain.TargetState{}, fmt.Errorf("vote %s on %s: %w", w.VoterID, w.Target.ID, domain.ErrVersionConflict)
		}
		s.votes[key] = domain.VoteRecord{VoterID: w.VoterID, Target: w.Target, Direction: w.Direction, CastAt: w.At}
	case domain.VoteOutcomeRetracted:
		if !exists {
			return domain.TargetState{}, fmt.Errorf("vote %s on %s: %w", w.VoterID, w.Target.ID, domain.ErrVersionConflict)
		}
		delete(s.votes, key)
	default:
		return domain.TargetState{}, fmt.Errorf("vote outcome %q: %w", w.Outcome, domain.ErrValidation)
	}

	state.Tally += w.TallyDelta
	state.Version++
	switch w.Target.Type {
	case domain.TargetTypeQuestion:
		q := s.questions[w.Target.ID]
		q.VoteTally, q.Version = state.Tally, state.Version
		s.questions[q.ID] = q
	case domain.TargetTypeAnswer:
		a := s.answers[w.Target.ID]
		a.VoteTally, a.Version = state.Tally, state.Version
		s.answers[a.ID] = a
	}

	s.appendEventLocked(event)
	return state, nil
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

func (s *Store) GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[questionID]
	if !ok {
		return nil, fmt.Errorf("question %s: %w", questionID, domain.ErrNotFound)
	}
	return cloneQuestion(q), nil
}

func (s *Store) GetAnswer(ctx context.Context, answerID uuid.UUID) (*domain.Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.answers[answerID]
	if !ok {
		return nil, fmt.Errorf("answer %s: %w", answerID, domain.ErrNotFound)
	}
	return &a, nil
}

func (s *Store) SetAcceptance(ctx context.Context, w domain.AcceptanceWrite, event domain.Event) (domain.AcceptanceState, error) {
	if err := ctx.Err(); err != nil {
		return domain.AcceptanceState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[w.QuestionID]
	if !ok {
		return domain.AcceptanceState{}, fmt.Errorf("question %s: %w", w.QuestionID, domain.ErrNotFound)
	}
	if q.Version != w.ExpectedVersion || !sameID(q.AcceptedAnswerID, w.PreviousAnswerID) {
		return domain.AcceptanceState{}, fmt.Errorf("question %s: %w", w.QuestionID, domain.ErrVersionConflict)
	}

	// Validate everything before mutating so a failure leaves no partial write.
	var next domain.Answer
	if w.NewAnswerID != nil {
		a, ok := s.answers[*w.NewAnswerID]
		if !ok || a.QuestionID != w.QuestionID {
			return domain.AcceptanceState{}, fmt.Errorf("answer %s: %w", *w.NewAnswerID, domain.ErrNotFound)
		}
		next = a
	}

	if w.PreviousAnswerID != nil {
		if prev, ok := s.answers[*w.PreviousAnswerID]; ok {
			prev.IsAccepted = false
			s.answers[prev.ID] = prev
		}
	}
	if w.NewAnswerID != nil {
		next.IsAccepted = true
		s.answers[next.ID] = next
	}

	q.AcceptedAnswerID = cloneID(w.NewAnswerID)
	q.Version++
	s.questions[q.ID] = q

	s.appendEventLocked(event)
	return domain.AcceptanceState{QuestionID: q.ID, AcceptedAnswerID: cloneID(q.AcceptedAnswerID), Version: q.Version}, nil
}

func (s *Store) RegisterQuestion(ctx context.Context, q domain.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[q.ID]; ok {
		return fmt.Errorf("question %s: %w", q.ID, domain.ErrAlreadyExists)
	}
	q.AcceptedAnswerID = nil
	s.questions[q.ID] = q
	return nil
}

func (s *Store) RegisterAnswer(ctx context.Context, a domain.Answer, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[a.QuestionID]; !ok {
		return fmt.Errorf("question %s: %w", a.QuestionID, domain.ErrNotFound)
	}
	if _, ok := s.answers[a.ID]; ok {
		return fmt.Errorf("answer %s: %w", a.ID, domain.ErrAlreadyExists)
	}
	a.IsAccepted = false
	s.answers[a.ID] = a
	s.appendEventLocked(event)
	return nil
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

func (s *Store) AppendEvent(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendEventLocked(event)
	return nil
}

func (s *Store) appendEventLocked(event domain.Event) {
	if _, ok := s.eventIndex[event.ID]; ok {
		return
	}
	event.Seq = int64(len(s.events) + 1)
	s.eventIndex[event.ID] = len(s.events)
	s.events = append(s.events, storedEvent{event: event})
}

func (s *Store) ListPendingEvents(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Event, 0)
	for _, se := range s.events {
		if len(out) >= limit {
			break
		}
		if !se.dispatched && se.event.Seq > afterSeq {
			out = append(out, se.event)
		}
	}
	return out, nil
}

func (s *Store) MarkEventsDispatched(ctx context.Context, ids []uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if i, ok := s.eventIndex[id]; ok {
			s.events[i].dispatched = true
		}
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Event, 0)
	start := int(max(afterSeq, 0))
	for i := start; i < len(s.events) && len(out) < limit; i++ {
		out = append(out, s.events[i].event)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Reputation
// ---------------------------------------------------------------------------

func (s *Store) ApplyReputation(ctx context.Context, eventID, userID uuid.UUID, delta int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reputationKey{event: eventID, user: userID}
	if _, ok := s.applied[key]; ok {
		return false, nil
	}
	s.applied[key] = struct{}{}
	s.reputation[userID] += delta
	return true, nil
}

func (s *Store) GetReputation(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reputation[userID], nil
}

func (s *Store) ListReputations(ctx context.Context) (map[uuid.UUID]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[uuid.UUID]int64, len(s.reputation))
	for id, v := range s.reputation {
		out[id] = v
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

func (s *Store) AppendNotification(ctx context.Context, n domain.Notification) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notifIndex[n.ID]; ok {
		return false, nil
	}
	for _, existing := range s.notifications {
		if existing.SourceEventID == n.SourceEventID && existing.RecipientID == n.RecipientID {
			return false, nil
		}
	}
	s.notifIndex[n.ID] = len(s.notifications)
	s.notifications = append(s.notifications, n)
	return true, nil
}

func (s *Store) ListNotifications(ctx context.Context, f gateway.NotificationFilter) ([]domain.Notification, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Notification, 0)
	for _, n := range s.notifications {
		if n.RecipientID != f.RecipientID {
			continue
		}
		if f.UnreadOnly && n.Read {
			continue
		}
		if len(f.Kinds) > 0 && !slices.Contains(f.Kinds, n.Kind) {
			continue
		}
		matched = append(matched, n)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if f.Offset >= total {
		return []domain.Notification{}, total, nil
	}
	end := total
	if f.Limit > 0 {
		end = min(f.Offset+f.Limit, total)
	}
	return matched[f.Offset:end], total, nil
}

func (s *Store) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, n := range s.notifications {
		if n.RecipientID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.notifIndex[notificationID]
	if !ok || s.notifications[i].RecipientID != userID {
		return fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}
	s.notifications[i].Read = true
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	marked := 0
	for i := range s.notifications {
		if s.notifications[i].RecipientID == userID && !s.notifications[i].Read {
			s.notifications[i].Read = true
			marked++
		}
	}
	return marked, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func cloneQuestion(q domain.Question) *domain.Question {
	q.AcceptedAnswerID = cloneID(q.AcceptedAnswerID)
	return &q
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
