// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// Sentinel errors returned by PagerDutyClient implementations.
var (
	// ErrInvalidToken indicates PagerDuty rejected the API access key.
	ErrInvalidToken = errors.New("pagerduty: api access key rejected")

	// ErrUnreachable matches any *UnreachableError.
	ErrUnreachable = errors.New("pagerduty: unreachable")

	// ErrParse matches any *ParseError.
	ErrParse = errors.New("pagerduty: unparseable response")
)

// UnreachableError reports that PagerDuty could not be reached or answered
// with an unexpected status. Message is suitable for showing to the user.
type UnreachableError struct {
	Message string
	Err     error
}

func (e *UnreachableError) Error() string { return e.Message }

func (e *UnreachableError) Unwrap() error { return e.Err }

func (e *UnreachableError) Is(target error) bool { return target == ErrUnreachable }

// ParseError reports that a PagerDuty response body could not be decoded.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// PagerDutyClient defines the driven port for the PagerDuty REST API.
type PagerDutyClient interface {
	// RetrieveServices returns the account's services that have an Events API
	// v2 integration. Errors are ErrInvalidToken, *UnreachableError or *ParseError.
	RetrieveServices(ctx context.Context, account model.Account) ([]model.Service, error)
}
