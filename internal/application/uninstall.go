package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// Uninstaller removes the objects this integration created.
type Uninstaller struct {
	accounts      driven.AccountStore
	notifications driven.NotificationStore
	logger        *slog.Logger
}

// NewUninstaller creates an Uninstaller.
func NewUninstaller(accounts driven.AccountStore, notifications driven.NotificationStore, logger *slog.Logger) *Uninstaller {
	return &Uninstaller{accounts: accounts, notifications: notifications, logger: logger}
}

// Remove deletes the stored account and every "pagerduty" notification.
// It does nothing when leaveObjects is set.
func (u *Uninstaller) Remove(ctx context.Context, leaveObjects bool) error {
	if leaveObjects {
		u.logger.Info("leaving pagerduty objects in place")
		return nil
	}

	u.logger.Info("removing pagerduty account info")
	if err := u.accounts.Delete(ctx); err != nil {
		return fmt.Errorf("remove account: %w", err)
	}

	u.logger.Info("removing pagerduty notifications")
	notifications, err := u.notifications.ListByAction(ctx, model.ActionPagerDuty)
	if err != nil {
		return fmt.Errorf("list pagerduty notifications: %w", err)
	}

	for _, n := range notifications {
		if err := u.notifications.Delete(ctx, n.ID); err != nil {
			return fmt.Errorf("remove notification %q: %w", n.ID, err)
		}
		u.logger.Info("removed notification", "id", n.ID)
	}

	return nil
}
