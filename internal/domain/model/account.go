package model

import "time"

// DefaultAPITimeout is used for PagerDuty API calls when the account has no
// explicit timeout.
const DefaultAPITimeout = 40 * time.Second

// MaxAPITimeout caps the per-request timeout an account may configure.
const MaxAPITimeout = 300 * time.Second

// AccountAttr is the attribute name the account is stored under on the
// configuration root.
const AccountAttr = "pagerduty_account"

// Account holds the PagerDuty credentials used to list services. APITimeout is
// expressed in whole seconds; zero means DefaultAPITimeout.
type Account struct {
	Subdomain    string
	APIAccessKey string
	APITimeout   int
	UpdatedAt    time.Time
}

// IsConfigured reports whether both the subdomain and the API access key are set.
func (a Account) IsConfigured() bool {
	return a.Subdomain != "" && a.APIAccessKey != ""
}

// FQDN returns the account's PagerDuty hostname, e.g. "acme.pagerduty.com".
func (a Account) FQDN() string {
	return a.Subdomain + ".pagerduty.com"
}

// Timeout returns the per-request timeout for API calls made with this account,
// clamped to MaxAPITimeout.
func (a Account) Timeout() time.Duration {
	if a.APITimeout <= 0 {
		return DefaultAPITimeout
	}
	if a.APITimeout > int(MaxAPITimeout/time.Second) {
		return MaxAPITimeout
	}
	return time.Duration(a.APITimeout) * time.Second
}

// AccountDict is the wire shape of an account as shown on the settings page.
// Unset strings are emitted as null.
type AccountDict struct {
	Subdomain    *string `json:"subdomain"`
	APIAccessKey *string `json:"apiAccessKey"`
	APITimeout   *int    `json:"apiTimeout"`
}

// Dict converts the account to its wire shape.
func (a Account) Dict() AccountDict {
	var d AccountDict
	if a.Subdomain != "" {
		d.Subdomain = &a.Subdomain
	}
	if a.APIAccessKey != "" {
		d.APIAccessKey = &a.APIAccessKey
	}
	if a.APITimeout > 0 {
		d.APITimeout = &a.APITimeout
	}
	return d
}
