package pagerduty_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdAdapter "github.com/ericfisherdev/pdpanel/internal/adapter/driven/pagerduty"
	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

var testAccount = model.Account{Subdomain: "acme", APIAccessKey: "test-key"}

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) *pdAdapter.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := pdAdapter.NewClientWithHTTPClient(server.Client(), server.URL, slog.Default())
	require.NoError(t, err)

	return client
}

type integrationJSON struct {
	Type           string `json:"type"`
	IntegrationKey string `json:"integration_key,omitempty"`
}

type serviceJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Summary      string            `json:"summary"`
	HTMLURL      string            `json:"html_url"`
	Integrations []integrationJSON `json:"integrations"`
}

type pageJSON struct {
	Services []serviceJSON `json:"services"`
	More     bool          `json:"more"`
}

func eventsV2(key string) integrationJSON {
	return integrationJSON{Type: "events_api_v2_inbound_integration", IntegrationKey: key}
}

func TestRetrieveServices_FiltersEventsV2(t *testing.T) {
	var gotAuth, gotAccept, gotInclude string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotInclude = r.URL.Query().Get("include[]")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pageJSON{Services: []serviceJSON{
			{
				ID: "PABC", Name: "Checkout", Summary: "Checkout", HTMLURL: "https://acme.pagerduty.com/services/PABC",
				Integrations: []integrationJSON{{Type: "email_inbound_integration"}, eventsV2("key-abc")},
			},
			{ID: "PDEF", Name: "Email only", Integrations: []integrationJSON{{Type: "email_inbound_integration"}}},
			{ID: "PGHI", Name: "No integrations"},
		}})
	})

	client := newTestClient(t, handler)
	services, err := client.RetrieveServices(context.Background(), testAccount)

	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "PABC", services[0].ID)
	assert.Equal(t, "Checkout", services[0].Name)
	assert.Equal(t, "key-abc", services[0].ServiceKey)
	assert.Equal(t, model.ServiceTypeEventsV2, services[0].Type)
	assert.Equal(t, "https://acme.pagerduty.com/services/PABC", services[0].HTMLURL)

	assert.Equal(t, "Token token=test-key", gotAuth)
	assert.Equal(t, "application/vnd.pagerduty+json;version=2", gotAccept)
	assert.Equal(t, "integrations", gotInclude)
}

func TestRetrieveServices_Paginates(t *testing.T) {
	var offsets []int

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		offsets = append(offsets, offset)

		page := pageJSON{}
		switch offset {
		case 0:
			page.Services = []serviceJSON{
				{ID: "P1", Name: "one", Integrations: []integrationJSON{eventsV2("k1")}},
				{ID: "P2", Name: "two", Integrations: []integrationJSON{eventsV2("k2")}},
			}
			page.More = true
		case 2:
			page.Services = []serviceJSON{{ID: "P3", Name: "three", Integrations: []integrationJSON{eventsV2("k3")}}}
		}
		_ = json.NewEncoder(w).Encode(page)
	})

	client := newTestClient(t, handler)
	services, err := client.RetrieveServices(context.Background(), testAccount)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, offsets)
	require.Len(t, services, 3)
	assert.Equal(t, "P3", services[2].ID)
}

func TestRetrieveServices_EmptyList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"services":[],"more":false}`))
	})

	client := newTestClient(t, handler)
	services, err := client.RetrieveServices(context.Background(), testAccount)

	require.NoError(t, err)
	assert.NotNil(t, services)
	assert.Empty(t, services)
}

func TestRetrieveServices_InvalidToken(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			})

			client := newTestClient(t, handler)
			_, err := client.RetrieveServices(context.Background(), testAccount)

			assert.ErrorIs(t, err, driven.ErrInvalidToken)
		})
	}
}

func TestRetrieveServices_ServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client := newTestClient(t, handler)
	_, err := client.RetrieveServices(context.Background(), testAccount)

	require.ErrorIs(t, err, driven.ErrUnreachable)
	assert.Contains(t, err.Error(), "502")
}

func TestRetrieveServices_Unparseable(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	client := newTestClient(t, handler)
	_, err := client.RetrieveServices(context.Background(), testAccount)

	require.ErrorIs(t, err, driven.ErrParse)
	var parseErr *driven.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotEmpty(t, parseErr.Message)
}

func TestRetrieveServices_Timeout(t *testing.T) {
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, err := pdAdapter.NewClientWithHTTPClient(server.Client(), server.URL, slog.Default())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.RetrieveServices(ctx, testAccount)

	require.ErrorIs(t, err, driven.ErrUnreachable)
	assert.Equal(t, "Timed out trying to reach PagerDuty", err.Error())
}

func TestRetrieveServices_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := pdAdapter.NewClientWithHTTPClient(http.DefaultClient, url, slog.Default())
	require.NoError(t, err)

	_, err = client.RetrieveServices(context.Background(), testAccount)

	require.ErrorIs(t, err, driven.ErrUnreachable)
	assert.Contains(t, err.Error(), "Failed to reach PagerDuty")
}

func TestNewClient_RejectsRelativeURL(t *testing.T) {
	_, err := pdAdapter.NewClient("api.pagerduty.com", slog.Default())
	assert.Error(t, err)
}

func TestNewClient_CachedPageRevalidatesWithCurrentKey(t *testing.T) {
	const etag = `"services-v1"`
	var hits int
	var gotIfNoneMatch []string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		gotIfNoneMatch = append(gotIfNoneMatch, r.Header.Get("If-None-Match"))

		if r.Header.Get("Authorization") != "Token token=good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "max-age=60")
		w.Header().Set("ETag", etag)
		_ = json.NewEncoder(w).Encode(pageJSON{Services: []serviceJSON{
			{ID: "PABC", Name: "Checkout", Integrations: []integrationJSON{eventsV2("key-abc")}},
		}})
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := pdAdapter.NewClient(server.URL, slog.Default())
	require.NoError(t, err)

	good := model.Account{Subdomain: "acme", APIAccessKey: "good"}
	revoked := model.Account{Subdomain: "acme", APIAccessKey: "revoked"}

	services, err := client.RetrieveServices(context.Background(), good)
	require.NoError(t, err)
	require.Len(t, services, 1)

	services, err = client.RetrieveServices(context.Background(), good)
	require.NoError(t, err)
	require.Len(t, services, 1, "304 should be answered from the cache")

	_, err = client.RetrieveServices(context.Background(), revoked)
	require.ErrorIs(t, err, driven.ErrInvalidToken)

	assert.Equal(t, 3, hits)
	assert.Equal(t, []string{"", etag, etag}, gotIfNoneMatch)
}
