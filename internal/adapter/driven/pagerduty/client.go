// Package pagerduty implements the PagerDutyClient port against the PagerDuty REST API v2.
package pagerduty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// DefaultBaseURL is the PagerDuty REST API root.
const DefaultBaseURL = "https://api.pagerduty.com"

const (
	acceptHeader    = "application/vnd.pagerduty+json;version=2"
	eventsV2Type    = "events_api_v2_inbound_integration"
	pageSize        = 100
	maxBodyBytes    = 10 << 20
	timeoutMessage  = "Timed out trying to reach PagerDuty"
	reachingMessage = "Failed to reach PagerDuty"
)

// Compile-time interface satisfaction check.
var _ driven.PagerDutyClient = (*Client)(nil)

// Client implements the driven.PagerDutyClient port. Credentials are passed
// per call, so one Client serves whatever account is currently stored.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	logger  *slog.Logger
}

// NewClient creates a PagerDuty API client whose transport revalidates
// responses with ETags via an in-memory httpcache. Cached pages are never
// served without a round trip to PagerDuty.
func NewClient(baseURL string, logger *slog.Logger) (*Client, error) {
	return NewClientWithHTTPClient(&http.Client{Transport: httpcache.NewMemoryCacheTransport()}, baseURL, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client. Tests use
// it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", baseURL)
	}

	return &Client{http: httpClient, baseURL: u, logger: logger}, nil
}

// servicesPage is one page of GET /services?include[]=integrations.
type servicesPage struct {
	Services []serviceJSON `json:"services"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
	More     bool          `json:"more"`
}

type serviceJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Summary      string            `json:"summary"`
	Description  string            `json:"description"`
	HTMLURL      string            `json:"html_url"`
	Integrations []integrationJSON `json:"integrations"`
}

type integrationJSON struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	IntegrationKey string `json:"integration_key"`
}

// RetrieveServices lists every service visible to the account and keeps the
// ones with an Events API v2 integration. Pagination follows the "more" flag.
func (c *Client) RetrieveServices(ctx context.Context, account model.Account) ([]model.Service, error) {
	services := []model.Service{}
	offset := 0

	for {
		page, err := c.fetchServicesPage(ctx, account, offset)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("pagerduty api call",
			"endpoint", "services",
			"offset", offset,
			"count", len(page.Services),
			"more", page.More,
		)

		for _, s := range page.Services {
			if svc, ok := mapService(s); ok {
				services = append(services, svc)
			}
		}

		if !page.More || len(page.Services) == 0 {
			break
		}
		offset += len(page.Services)
	}

	return services, nil
}

func (c *Client) fetchServicesPage(ctx context.Context, account model.Account, offset int) (*servicesPage, error) {
	ctx, cancel := context.WithTimeout(ctx, account.Timeout())
	defer cancel()

	u := c.baseURL.JoinPath("services")
	q := url.Values{}
	q.Set("include[]", "integrations")
	q.Set("limit", strconv.Itoa(pageSize))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building services request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Authorization", "Token token="+account.APIAccessKey)
	// The cache key ignores Authorization. max-age=0 makes every call revalidate
	// with the current key, so a revoked key gets its 401 instead of a cached page.
	req.Header.Set("Cache-Control", "max-age=0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, unreachable(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, driven.ErrInvalidToken
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &driven.UnreachableError{
			Message: fmt.Sprintf("PagerDuty returned an unexpected response: %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, unreachable(err)
	}

	var page servicesPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &driven.ParseError{
			Message: "Unable to parse the list of services returned by PagerDuty",
			Err:     err,
		}
	}

	return &page, nil
}

// unreachable converts a transport error into the user-facing UnreachableError.
func unreachable(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &driven.UnreachableError{Message: timeoutMessage, Err: err}
	}

	reason := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		reason = urlErr.Err.Error()
	}
	return &driven.UnreachableError{Message: fmt.Sprintf("%s: %s", reachingMessage, reason), Err: err}
}

// mapService converts an API service to a domain Service. It reports false
// when the service has no Events API v2 integration.
func mapService(s serviceJSON) (model.Service, bool) {
	for _, integration := range s.Integrations {
		if integration.Type != eventsV2Type || integration.IntegrationKey == "" {
			continue
		}
		return model.Service{
			ID:          s.ID,
			Name:        s.Name,
			ServiceKey:  integration.IntegrationKey,
			Type:        model.ServiceTypeEventsV2,
			Summary:     s.Summary,
			HTMLURL:     s.HTMLURL,
			Description: s.Description,
		}, true
	}
	return model.Service{}, false
}
