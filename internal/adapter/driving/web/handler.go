// Package web implements the HTML settings page driving adapter using templ components.
package web

import (
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/pdpanel/internal/application"
	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// Handler is the web GUI driving adapter for the PagerDuty settings page.
type Handler struct {
	accountSvc  *application.AccountService
	servicesSvc *application.ServicesService
	navSvc      *application.NavigationService
	permissions []string
	logger      *slog.Logger
}

// NewHandler creates a Handler. permissions are the permissions held by the
// operator viewing the page and decide which navigation entries are shown.
func NewHandler(
	accountSvc *application.AccountService,
	servicesSvc *application.ServicesService,
	navSvc *application.NavigationService,
	permissions []string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accountSvc:  accountSvc,
		servicesSvc: servicesSvc,
		navSvc:      navSvc,
		permissions: permissions,
		logger:      logger,
	}
}

// SettingsPage renders the stored account and the services it can see.
func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	vm := h.newViewModel(w, r)
	vm.applyAccount(h.accountSvc.GetAccountSettings(r.Context()))
	vm.applyServices(h.servicesSvc.GetServices(r.Context(), false))

	h.render(w, r, vm)
}

// SaveSettings handles the settings form: it saves the account, lists its
// services and re-renders the page with the outcome.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if !validateCSRF(r) {
		http.Error(w, "invalid csrf token", http.StatusForbidden)
		return
	}

	req := application.UpdateAccountRequest{
		APIAccessKey:  r.PostFormValue("apiAccessKey"),
		Subdomain:     r.PostFormValue("subdomain"),
		APITimeout:    r.PostFormValue("apiTimeout"),
		WantsMessages: true,
	}
	result := h.accountSvc.UpdateAccountSettings(r.Context(), req)

	vm := h.newViewModel(w, r)
	vm.Subdomain = req.Subdomain
	vm.APIAccessKey = req.APIAccessKey
	vm.APITimeout = req.APITimeout
	vm.Message = result.Msg
	vm.MessageOK = result.Success
	vm.applyServices(result)

	h.render(w, r, vm)
}

func (h *Handler) newViewModel(w http.ResponseWriter, r *http.Request) SettingsViewModel {
	primary := application.AdvancedPrimaryItem()
	h.navSvc.UpdatePrimary(&primary)

	return SettingsViewModel{
		CSRFToken: csrfToken(w, r),
		Primary:   primary,
		Settings:  application.Visible(h.navSvc.SettingsActions(model.PageDataRoot), h.permissions),
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, vm SettingsViewModel) {
	layout := Layout("PagerDuty Settings", vm.Primary, vm.Settings, model.SettingsPagePath, SettingsPage(vm))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render settings page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
