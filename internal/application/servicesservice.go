package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// User-facing messages for the services lookup.
const (
	MsgNoAccount         = "PagerDuty account info not set."
	MsgSetUpAccount      = `Set up your account info in "Advanced... PagerDuty Settings"`
	MsgKeyDenied         = "Your API Access Key was denied."
	MsgKeyDeniedInline   = `Access key denied: Go to "Advanced... PagerDuty Settings"`
	MsgAccountUnreadable = "Unable to read the stored PagerDuty account. Check PDPANEL_SECRET_KEY."
	msgNoServicesFmt     = "No services with events integration v2 were found for %s."
)

// ServicesService fetches the PagerDuty services available to the stored account.
type ServicesService struct {
	accounts driven.AccountStore
	client   driven.PagerDutyClient
	logger   *slog.Logger
}

// NewServicesService creates a ServicesService.
func NewServicesService(accounts driven.AccountStore, client driven.PagerDutyClient, logger *slog.Logger) *ServicesService {
	return &ServicesService{accounts: accounts, client: client, logger: logger}
}

// GetServices returns the stored account's Events API v2 services as a list
// of model.ServiceDict. Popup messages are only filled in when wantsMessages
// is set; inline messages are always returned.
func (s *ServicesService) GetServices(ctx context.Context, wantsMessages bool) Response {
	account, err := s.accounts.Get(ctx)
	if err != nil {
		s.logger.Error("failed to load pagerduty account", "error", err)
		return Fail(messageIf(wantsMessages, MsgAccountUnreadable), MsgAccountUnreadable)
	}
	if account == nil || !account.IsConfigured() {
		return Fail(messageIf(wantsMessages, MsgNoAccount), MsgSetUpAccount)
	}

	services, err := s.retrieveServices(ctx, *account)
	if err != nil {
		var unreachable *driven.UnreachableError
		var parseErr *driven.ParseError
		switch {
		case errors.Is(err, driven.ErrInvalidToken):
			return Fail(messageIf(wantsMessages, MsgKeyDenied), MsgKeyDeniedInline)
		case errors.As(err, &unreachable):
			return Fail(messageIf(wantsMessages, unreachable.Message), unreachable.Message)
		case errors.As(err, &parseErr):
			return Fail(messageIf(wantsMessages, parseErr.Message), parseErr.Message)
		default:
			return Fail(messageIf(wantsMessages, err.Error()), err.Error())
		}
	}

	if len(services) == 0 {
		return Fail(messageIf(wantsMessages, fmt.Sprintf(msgNoServicesFmt, account.FQDN())), "")
	}

	data := make([]model.ServiceDict, 0, len(services))
	for _, svc := range services {
		data = append(data, svc.Dict())
	}
	return Succeed("", data)
}

// retrieveServices calls PagerDuty and logs the outcome.
func (s *ServicesService) retrieveServices(ctx context.Context, account model.Account) ([]model.Service, error) {
	s.logger.Info("fetching pagerduty services", "account", account.FQDN())

	services, err := s.client.RetrieveServices(ctx, account)
	if err != nil {
		switch {
		case errors.Is(err, driven.ErrInvalidToken):
			s.logger.Warn("pagerduty token rejected", "account", account.FQDN())
		case errors.Is(err, driven.ErrUnreachable):
			s.logger.Warn("pagerduty not reachable", "account", account.FQDN(), "error", err)
		default:
			s.logger.Warn("pagerduty services lookup failed", "account", account.FQDN(), "error", err)
		}
		return nil, err
	}

	s.logger.Info("found services with events api v2 integration",
		"account", account.FQDN(),
		"count", len(services),
	)
	return services, nil
}
