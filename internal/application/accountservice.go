package application

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// User-facing messages for account settings.
const (
	MsgCredentialsRequired = "Api Access Key and subdomain are needed for PagerDuty account"
	MsgInvalidTimeout      = "API Timeout must be a whole number of seconds, at most 300"
	MsgServicesRetrieved   = "PagerDuty services retrieved successfully."
	msgAccountSaveFailed   = "Unable to save PagerDuty account info."
)

// UpdateAccountRequest carries the settings form. APITimeout is the raw form
// value; empty or "0" selects the default timeout.
type UpdateAccountRequest struct {
	APIAccessKey  string
	Subdomain     string
	APITimeout    string
	WantsMessages bool
}

// AccountService reads and writes the stored PagerDuty account.
type AccountService struct {
	accounts driven.AccountStore
	services *ServicesService
	logger   *slog.Logger
}

// NewAccountService creates an AccountService. services is used to validate
// new credentials by listing services right after they are saved.
func NewAccountService(accounts driven.AccountStore, services *ServicesService, logger *slog.Logger) *AccountService {
	return &AccountService{accounts: accounts, services: services, logger: logger}
}

// GetAccountSettings returns the stored account as a model.AccountDict. An
// unset account yields the empty dict rather than a failure.
func (s *AccountService) GetAccountSettings(ctx context.Context) Response {
	account, err := s.accounts.Get(ctx)
	if err != nil {
		s.logger.Error("failed to load pagerduty account", "error", err)
		return Fail(err.Error(), "")
	}
	if account == nil {
		account = &model.Account{}
	}
	return Succeed("", account.Dict())
}

// UpdateAccountSettings saves the account and returns the services it can see.
// Nothing is saved when the key or subdomain is missing.
func (s *AccountService) UpdateAccountSettings(ctx context.Context, req UpdateAccountRequest) Response {
	if req.APIAccessKey == "" || req.Subdomain == "" {
		return Fail(MsgCredentialsRequired, "")
	}

	account := model.Account{Subdomain: req.Subdomain, APIAccessKey: req.APIAccessKey}

	timeout := strings.TrimSpace(req.APITimeout)
	if timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil || seconds < 0 || seconds > int(model.MaxAPITimeout/time.Second) {
			return Fail(MsgInvalidTimeout, "")
		}
		account.APITimeout = seconds
	}
	if account.APITimeout == 0 {
		s.logger.Info("api timeout not set, using default", "default", model.DefaultAPITimeout)
	}

	if err := s.accounts.Save(ctx, account); err != nil {
		s.logger.Error("failed to save pagerduty account", "account", account.FQDN(), "error", err)
		return Fail(msgAccountSaveFailed, "")
	}

	result := s.services.GetServices(ctx, req.WantsMessages)
	if result.Success {
		result.Msg = MsgServicesRetrieved
		if data, ok := result.Data.([]model.ServiceDict); ok {
			s.logger.Info("fetched pagerduty services", "account", account.FQDN(), "count", len(data))
		}
	}

	return result
}
