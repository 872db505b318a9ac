package application_test

import (
	"context"
	"strings"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// --- Mock implementations ---

type mockAccountStore struct {
	account   *model.Account
	getErr    error
	saveErr   error
	deleteErr error
	saved     []model.Account
	deletes   int
}

func (m *mockAccountStore) Get(_ context.Context) (*model.Account, error) {
	return m.account, m.getErr
}

func (m *mockAccountStore) Save(_ context.Context, account model.Account) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, account)
	m.account = &account
	return nil
}

func (m *mockAccountStore) Delete(_ context.Context) error {
	m.deletes++
	m.account = nil
	return m.deleteErr
}

type mockPagerDutyClient struct {
	services []model.Service
	err      error
	calls    []model.Account
}

func (m *mockPagerDutyClient) RetrieveServices(_ context.Context, account model.Account) ([]model.Service, error) {
	m.calls = append(m.calls, account)
	return m.services, m.err
}

type mockNotificationStore struct {
	notifications []model.Notification
	createErr     error
	deleted       []string
}

func (m *mockNotificationStore) Create(_ context.Context, n model.Notification) (model.Notification, error) {
	if m.createErr != nil {
		return model.Notification{}, m.createErr
	}
	m.notifications = append(m.notifications, n)
	return n, nil
}

func (m *mockNotificationStore) Get(_ context.Context, id string) (*model.Notification, error) {
	for _, n := range m.notifications {
		if n.ID == id {
			return &n, nil
		}
	}
	return nil, nil
}

func (m *mockNotificationStore) ListAll(_ context.Context) ([]model.Notification, error) {
	return m.notifications, nil
}

func (m *mockNotificationStore) ListByAction(_ context.Context, action string) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range m.notifications {
		if strings.EqualFold(n.Action, action) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationStore) Delete(_ context.Context, id string) error {
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return driven.ErrNotificationNotFound
}
