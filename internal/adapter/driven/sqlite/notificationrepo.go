package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.NotificationStore = (*NotificationRepo)(nil)

// NotificationRepo is the SQLite implementation of the NotificationStore port interface.
type NotificationRepo struct {
	db *DB
}

// NewNotificationRepo creates a new NotificationRepo backed by the given DB.
func NewNotificationRepo(db *DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

const notificationColumns = `id, action, enabled, send_clear, repeat_seconds, send_initial_occurrence, recipients, created_at`

// Create inserts a new notification and returns it with CreatedAt populated.
// Returns ErrNotificationExists if the ID is taken.
func (r *NotificationRepo) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	const query = `INSERT INTO notifications (` + notificationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if n.Recipients == nil {
		n.Recipients = []string{}
	}

	recipients, err := json.Marshal(n.Recipients)
	if err != nil {
		return model.Notification{}, fmt.Errorf("marshal recipients: %w", err)
	}

	_, err = r.db.Writer.ExecContext(ctx, query,
		n.ID, n.Action, n.Enabled, n.SendClear, n.RepeatSeconds, n.SendInitialOccurrence,
		string(recipients), n.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return model.Notification{}, fmt.Errorf("create notification %q: %w", n.ID, driven.ErrNotificationExists)
		}
		return model.Notification{}, fmt.Errorf("create notification %q: %w", n.ID, err)
	}

	return n, nil
}

// Get returns the notification with the given ID, or (nil, nil) if none exists.
func (r *NotificationRepo) Get(ctx context.Context, id string) (*model.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications WHERE id = ?`

	n, err := scanNotification(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification %q: %w", id, err)
	}
	return &n, nil
}

// ListAll returns all notifications ordered by ID.
func (r *NotificationRepo) ListAll(ctx context.Context) ([]model.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications ORDER BY id`
	return r.list(ctx, query)
}

// ListByAction returns the notifications whose action matches, ignoring case.
func (r *NotificationRepo) ListByAction(ctx context.Context, action string) ([]model.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications WHERE action = ? COLLATE NOCASE ORDER BY id`
	return r.list(ctx, query, action)
}

// Delete removes the notification with the given ID.
func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM notifications WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete notification %q: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete notification %q: %w", id, driven.ErrNotificationNotFound)
	}

	return nil
}

func (r *NotificationRepo) list(ctx context.Context, query string, args ...any) ([]model.Notification, error) {
	rows, err := r.db.Reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []model.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return notifications, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (model.Notification, error) {
	var n model.Notification
	var recipients, createdAt string

	if err := row.Scan(&n.ID, &n.Action, &n.Enabled, &n.SendClear, &n.RepeatSeconds,
		&n.SendInitialOccurrence, &recipients, &createdAt); err != nil {
		return model.Notification{}, err
	}

	if err := json.Unmarshal([]byte(recipients), &n.Recipients); err != nil {
		return model.Notification{}, fmt.Errorf("unmarshal recipients: %w", err)
	}

	var err error
	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Notification{}, fmt.Errorf("parse created_at: %w", err)
	}

	return n, nil
}
