package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// ErrInvalidNotification is returned when a notification is missing its ID or action.
var ErrInvalidNotification = errors.New("notification id and action are required")

// CreateHook post-processes a notification after the host defaults have been
// applied and before it is stored.
type CreateHook func(n *model.Notification)

// PagerDutyDefaults is the CreateHook that gives "pagerduty" notifications
// their delivery defaults. Other actions are left untouched.
func PagerDutyDefaults(n *model.Notification) {
	if n.IsPagerDuty() {
		n.ApplyPagerDutyDefaults()
	}
}

// NotificationService creates and manages notification subscriptions.
type NotificationService struct {
	store  driven.NotificationStore
	hooks  []CreateHook
	logger *slog.Logger
}

// NewNotificationService creates a NotificationService. hooks run in order on
// every new notification.
func NewNotificationService(store driven.NotificationStore, logger *slog.Logger, hooks ...CreateHook) *NotificationService {
	return &NotificationService{store: store, hooks: hooks, logger: logger}
}

// CreateNotification creates a notification with the host defaults, lets the
// hooks adjust it and stores it.
func (s *NotificationService) CreateNotification(ctx context.Context, id, action string) (model.Notification, error) {
	id = strings.TrimSpace(id)
	action = strings.TrimSpace(action)
	if id == "" || action == "" {
		return model.Notification{}, ErrInvalidNotification
	}

	n := model.NewNotification(id, action)
	for _, hook := range s.hooks {
		hook(&n)
	}

	saved, err := s.store.Create(ctx, n)
	if err != nil {
		return model.Notification{}, fmt.Errorf("create notification: %w", err)
	}

	s.logger.Info("notification created",
		"id", saved.ID,
		"action", saved.Action,
		"send_clear", saved.SendClear,
		"repeat_seconds", saved.RepeatSeconds,
	)
	return saved, nil
}

// List returns all notifications.
func (s *NotificationService) List(ctx context.Context) ([]model.Notification, error) {
	return s.store.ListAll(ctx)
}

// Delete removes a notification by ID.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
