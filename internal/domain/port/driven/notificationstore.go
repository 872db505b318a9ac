package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// Sentinel errors returned by NotificationStore implementations.
var (
	// ErrNotificationNotFound indicates the requested notification does not exist.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrNotificationExists indicates a notification with the same ID already exists.
	ErrNotificationExists = errors.New("notification already exists")
)

// NotificationStore defines the driven port for notification subscription persistence.
type NotificationStore interface {
	Create(ctx context.Context, n model.Notification) (model.Notification, error)
	// Get returns (nil, nil) when no notification has the given ID.
	Get(ctx context.Context, id string) (*model.Notification, error)
	ListAll(ctx context.Context) ([]model.Notification, error)
	// ListByAction matches action case-insensitively.
	ListByAction(ctx context.Context, action string) ([]model.Notification, error)
	// Delete returns ErrNotificationNotFound if the ID does not exist.
	Delete(ctx context.Context, id string) error
}
