package notification

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/gateway"
	"sync"
)

var _ notificationStore = &notificationStoreMock{}

type notificationStoreMock struct {
	AppendNotificationFunc       func(ctx context.Context, n domain.Notification) (bool, error)
	CountUnreadFunc              func(ctx context.Context, userID uuid.UUID) (int, error)
	ListNotificationsFunc        func(ctx context.Context, filter gateway.NotificationFilter) ([]domain.Notification, int, error)
	MarkAllNotificationsReadFunc func(ctx context.Context, userID uuid.UUID) (int, error)
	MarkNotificationReadFunc     func(ctx context.Context, userID uuid.UUID, notificationID uuid.UUID) error

	calls struct {
		AppendNotification []struct {
			Ctx context.Context
			N   domain.Notification
		}
		CountUnread []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListNotifications []struct {
			Ctx    context.Context
			Filter gateway.NotificationFilter
		}
		MarkAllNotificationsRead []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		MarkNotificationRead []struct {
			Ctx            context.Context
			UserID         uuid.UUID
			NotificationID uuid.UUID
		}
	}
	lockAppendNotification       sync.RWMutex
	lockCountUnread              sync.RWMutex
	lockListNotifications        sync.RWMutex
	lockMarkAllNotificationsRead sync.RWMutex
	lockMarkNotificationRead     sync.RWMutex
}

func (mock *notificationStoreMock) AppendNotification(ctx context.Context, n domain.Notification) (bool, error) {
	if mock.AppendNotificationFunc == nil {
		panic("notificationStoreMock.AppendNotificationFunc: method is nil but notificationStore.AppendNotification was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Notification
	}{Ctx: ctx, N: n}
	mock.lockAppendNotification.Lock()
	mock.calls.AppendNotification = append(mock.calls.AppendNotification, callInfo)
	mock.lockAppendNotification.Unlock()
	return mock.AppendNotificationFunc(ctx, n)
}

func (mock *notificationStoreMock) AppendNotificationCalls() []struct {
	Ctx context.Context
	N   domain.Notification
} {
	mock.lockAppendNotification.RLock()
	calls := mock.calls.AppendNotification
	mock.lockAppendNotification.RUnlock()
	return calls
}

func (mock *notificationStoreMock) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.CountUnreadFunc == nil {
		panic("notificationStoreMock.CountUnreadFunc: method is nil but notificationStore.CountUnread was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockCountUnread.Lock()
	mock.calls.CountUnread = append(mock.calls.CountUnread, callInfo)
	mock.lockCountUnread.Unlock()
	return mock.CountUnreadFunc(ctx, userID)
}

func (mock *notificationStoreMock) CountUnreadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockCountUnread.RLock()
	calls := mock.calls.CountUnread
	mock.lockCountUnread.RUnlock()
	return calls
}

func (mock *notificationStoreMock) ListNotifications(ctx context.Context, filter gateway.NotificationFilter) ([]domain.Notification, int, error) {
	if mock.ListNotificationsFunc == nil {
		panic("notificationStoreMock.ListNotificationsFunc: method is nil but notificationStore.ListNotifications was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter gateway.NotificationFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockListNotifications.Lock()
	mock.calls.ListNotifications = append(mock.calls.ListNotifications, callInfo)
	mock.lockListNotifications.Unlock()
	return mock.ListNotificationsFunc(ctx, filter)
}

func (mock *notificationStoreMock) ListNotificationsCalls() []struct {
	Ctx    context.Context
	Filter gateway.NotificationFilter
} {
	mock.lockListNotifications.RLock()
	calls := mock.calls.ListNotifications
	mock.lockListNotifications.RUnlock()
	return calls
}

func (mock *notificationStoreMock) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int, error) {
	if mock.MarkAllNotificationsReadFunc == nil {
		panic("notificationStoreMock.MarkAllNotificationsReadFunc: method is nil but notificationStore.MarkAllNotificationsRead was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockMarkAllNotificationsRead.Lock()
	mock.calls.MarkAllNotificationsRead = append(mock.calls.MarkAllNotificationsRead, callInfo)
	mock.lockMarkAllNotificationsRead.Unlock()
	return mock.MarkAllNotificationsReadFunc(ctx, userID)
}

func (mock *notificationStoreMock) MarkAllNotificationsReadCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockMarkAllNotificationsRead.RLock()
	calls := mock.calls.MarkAllNotificationsRead
	mock.lockMarkAllNotificationsRead.RUnlock()
	return calls
}

func (mock *notificationStoreMock) MarkNotificationRead(ctx context.Context, userID uuid.UUID, notificationID uuid.UUID) error {
	if mock.MarkNotificationReadFunc == nil {
		panic("notificationStoreMock.MarkNotificationReadFunc: method is nil but notificationStore.MarkNotificationRead was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		UserID         uuid.UUID
		NotificationID uuid.UUID
	}{Ctx: ctx, UserID: userID, NotificationID: notificationID}
	mock.lockMarkNotificationRead.Lock()
	mock.calls.MarkNotificationRead = append(mock.calls.MarkNotificationRead, callInfo)
	mock.lockMarkNotificationRead.Unlock()
	return mock.MarkNotificationReadFunc(ctx, userID, notificationID)
}

func (mock *notificationStoreMock) MarkNotificationReadCalls() []struct {
	Ctx            context.Context
	UserID         uuid.UUID
	NotificationID uuid.UUID
} {
	mock.lockMarkNotificationRead.RLock()
	calls := mock.calls.MarkNotificationRead
	mock.lockMarkNotificationRead.RUnlock()
	return calls
}
