package model

import (
	"strings"
	"time"
)

// ActionPagerDuty is the notification action type handled by this integration.
const ActionPagerDuty = "pagerduty"

// Notification is a trigger subscription that performs an action (email,
// page, pagerduty, ...) when matching events occur.
type Notification struct {
	ID                    string
	Action                string
	Enabled               bool
	SendClear             bool
	RepeatSeconds         int
	SendInitialOccurrence bool
	Recipients            []string
	CreatedAt             time.Time
}

// NewNotification returns a notification with the host's defaults for a
// freshly created subscription.
func NewNotification(id, action string) Notification {
	return Notification{
		ID:                    id,
		Action:                action,
		Enabled:               false,
		SendClear:             false,
		RepeatSeconds:         0,
		SendInitialOccurrence: true,
		Recipients:            []string{},
	}
}

// IsPagerDuty reports whether the notification's action is "pagerduty",
// ignoring case.
func (n Notification) IsPagerDuty() bool {
	return strings.EqualFold(n.Action, ActionPagerDuty)
}

// ApplyPagerDutyDefaults sets the delivery behavior PagerDuty incidents need:
// clears resolve the incident, repeats are rate limited to once a minute, and
// the initial occurrence is not resent.
func (n *Notification) ApplyPagerDutyDefaults() {
	n.SendClear = true
	n.RepeatSeconds = 60
	n.SendInitialOccurrence = false
}
