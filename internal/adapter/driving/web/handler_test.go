package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/pdpanel/internal/application"
	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

type stubAccountStore struct {
	account *model.Account
}

func (s *stubAccountStore) Get(_ context.Context) (*model.Account, error) { return s.account, nil }
func (s *stubAccountStore) Save(_ context.Context, a model.Account) error {
	s.account = &a
	return nil
}
func (s *stubAccountStore) Delete(_ context.Context) error {
	s.account = nil
	return nil
}

type stubPagerDutyClient struct {
	services []model.Service
	err      error
}

func (s *stubPagerDutyClient) RetrieveServices(_ context.Context, _ model.Account) ([]model.Service, error) {
	return s.services, s.err
}

func newTestMux(accounts *stubAccountStore, client *stubPagerDutyClient, permissions []string) *http.ServeMux {
	servicesSvc := application.NewServicesService(accounts, client, slog.Default())
	accountSvc := application.NewAccountService(accounts, servicesSvc, slog.Default())
	h := NewHandler(accountSvc, servicesSvc, application.NewNavigationService(nil), permissions, slog.Default())

	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return mux
}

var allPermissions = []string{model.PermManageDMD, "View"}

func TestSettingsPage_Unconfigured(t *testing.T) {
	mux := newTestMux(&stubAccountStore{}, &stubPagerDutyClient{}, allPermissions)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, model.SettingsPagePath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "PagerDuty Settings")
	assert.Contains(t, body, "Set up your account info in &#34;Advanced... PagerDuty Settings&#34;")
	assert.Contains(t, body, `href="pd-import-services-page" class="selected"`)
	assert.Contains(t, body, `class="selected">Advanced</a>`)

	var csrfSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == csrfCookieName && c.Value != "" {
			csrfSet = true
		}
	}
	assert.True(t, csrfSet)
}

func TestSettingsPage_ListsServices(t *testing.T) {
	accounts := &stubAccountStore{account: &model.Account{Subdomain: "acme", APIAccessKey: "key", APITimeout: 30}}
	client := &stubPagerDutyClient{services: []model.Service{{
		ID: "P1", Name: "Checkout <prod>", ServiceKey: "k1", HTMLURL: "https://acme.pagerduty.com/services/P1",
		Description: "**critical** <script>alert(1)</script>",
	}}}
	mux := newTestMux(accounts, client, allPermissions)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, model.SettingsPagePath, nil))

	body := rec.Body.String()
	assert.Contains(t, body, `value="acme"`)
	assert.Contains(t, body, `value="30"`)
	assert.Contains(t, body, "Checkout &lt;prod&gt;")
	assert.Contains(t, body, "<code>k1</code>")
	assert.Contains(t, body, "<strong>critical</strong>")
	assert.NotContains(t, body, "<script>")
}

func TestSettingsPage_SanitizesServiceLinks(t *testing.T) {
	vm := SettingsViewModel{Services: []ServiceRowViewModel{
		{ID: "P1", Name: "Evil", HTMLURL: "javascript:alert(document.cookie)"},
		{ID: "P2", Name: "Good", HTMLURL: "https://acme.pagerduty.com/services/P2"},
	}}

	var b strings.Builder
	require.NoError(t, SettingsPage(vm).Render(context.Background(), &b))

	body := b.String()
	assert.NotContains(t, body, "javascript:")
	assert.Contains(t, body, `<a href="about:invalid#TemplFailedSanitizationURL">Evil</a>`)
	assert.Contains(t, body, `<a href="https://acme.pagerduty.com/services/P2">Good</a>`)
}

func TestSettingsPage_HidesNavWithoutPermission(t *testing.T) {
	mux := newTestMux(&stubAccountStore{}, &stubPagerDutyClient{}, []string{"View"})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, model.SettingsPagePath, nil))

	assert.NotContains(t, rec.Body.String(), `href="pd-import-services-page"`)
}

func postSettings(mux *http.ServeMux, form url.Values, cookieToken string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, model.SettingsPagePath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookieToken != "" {
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: cookieToken})
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSaveSettings_Success(t *testing.T) {
	accounts := &stubAccountStore{}
	client := &stubPagerDutyClient{services: []model.Service{{ID: "P1", Name: "Checkout", ServiceKey: "k1"}}}
	mux := newTestMux(accounts, client, allPermissions)

	rec := postSettings(mux, url.Values{
		"csrf_token":   {"tok"},
		"subdomain":    {"acme"},
		"apiAccessKey": {"key"},
		"apiTimeout":   {""},
	}, "tok")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="msg msg-ok"`)
	assert.Contains(t, body, "PagerDuty services retrieved successfully.")
	assert.Contains(t, body, "Checkout")
	require.NotNil(t, accounts.account)
	assert.Equal(t, "acme", accounts.account.Subdomain)
}

func TestSaveSettings_KeyDenied(t *testing.T) {
	accounts := &stubAccountStore{}
	mux := newTestMux(accounts, &stubPagerDutyClient{err: driven.ErrInvalidToken}, allPermissions)

	rec := postSettings(mux, url.Values{
		"csrf_token":   {"tok"},
		"subdomain":    {"acme"},
		"apiAccessKey": {"bad"},
	}, "tok")

	body := rec.Body.String()
	assert.Contains(t, body, `class="msg msg-fail"`)
	assert.Contains(t, body, "Your API Access Key was denied.")
}

func TestSaveSettings_RejectsMissingCSRF(t *testing.T) {
	accounts := &stubAccountStore{}
	mux := newTestMux(accounts, &stubPagerDutyClient{}, allPermissions)

	rec := postSettings(mux, url.Values{"subdomain": {"acme"}, "apiAccessKey": {"key"}}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postSettings(mux, url.Values{"csrf_token": {"other"}, "subdomain": {"acme"}, "apiAccessKey": {"key"}}, "tok")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Nil(t, accounts.account)
}

func TestRootRedirectsToSettings(t *testing.T) {
	mux := newTestMux(&stubAccountStore{}, &stubPagerDutyClient{}, allPermissions)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, model.SettingsPagePath, rec.Header().Get("Location"))
}

func TestStaticStylesheet(t *testing.T) {
	mux := newTestMux(&stubAccountStore{}, &stubPagerDutyClient{}, allPermissions)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/pdpanel.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".settings-nav")
}
