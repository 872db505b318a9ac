// Package httphandler is the JSON driving adapter: a DirectRouter-style RPC
// endpoint plus a small REST API over the same application services.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/pdpanel/internal/application"
	"github.com/ericfisherdev/pdpanel/internal/domain/model"
	"github.com/ericfisherdev/pdpanel/internal/domain/port/driven"
)

// RouterPath is where the DirectRouter-style RPC endpoint is mounted.
const RouterPath = "/zport/dmd/pagerduty_router"

// Handler is the HTTP driving adapter that serves the router and REST API.
type Handler struct {
	accountSvc      *application.AccountService
	servicesSvc     *application.ServicesService
	notificationSvc *application.NotificationService
	navSvc          *application.NavigationService
	logger          *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	accountSvc *application.AccountService,
	servicesSvc *application.ServicesService,
	notificationSvc *application.NotificationService,
	navSvc *application.NavigationService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accountSvc:      accountSvc,
		servicesSvc:     servicesSvc,
		notificationSvc: notificationSvc,
		navSvc:          navSvc,
		logger:          logger,
	}
}

// RegisterAPIRoutes registers the router and REST routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST "+RouterPath, h.Direct)

	mux.HandleFunc("GET /api/v1/account", h.GetAccount)
	mux.HandleFunc("PUT /api/v1/account", h.UpdateAccount)
	mux.HandleFunc("GET /api/v1/services", h.GetServices)
	mux.HandleFunc("GET /api/v1/notifications", h.ListNotifications)
	mux.HandleFunc("POST /api/v1/notifications", h.CreateNotification)
	mux.HandleFunc("DELETE /api/v1/notifications/{id}", h.DeleteNotification)
	mux.HandleFunc("GET /api/v1/navigation", h.Navigation)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// GetAccount returns the stored account settings.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRouterResponse(h.accountSvc.GetAccountSettings(r.Context())))
}

// UpdateAccount saves the account settings and returns the services they can see.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.accountSvc.UpdateAccountSettings(r.Context(), req.toApplication())
	writeJSON(w, http.StatusOK, toRouterResponse(result))
}

// GetServices lists the PagerDuty services for the stored account.
// wantsMessages defaults to false.
func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	wants := false
	if v := r.URL.Query().Get("wantsMessages"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid wantsMessages value")
			return
		}
		wants = parsed
	}

	writeJSON(w, http.StatusOK, toRouterResponse(h.servicesSvc.GetServices(r.Context(), wants)))
}

// ListNotifications returns all notification subscriptions.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationSvc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list notifications", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, toNotificationResponse(n))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateNotification creates a notification, applying PagerDuty defaults
// when its action is "pagerduty".
func (h *Handler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.notificationSvc.CreateNotification(r.Context(), req.ID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidNotification):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, driven.ErrNotificationExists):
			writeError(w, http.StatusConflict, "notification already exists")
		default:
			h.logger.Error("failed to create notification", "id", req.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toNotificationResponse(n))
}

// DeleteNotification removes a notification by ID.
func (h *Handler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.notificationSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Error("failed to delete notification", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Navigation returns the primary and settings navigation with the PagerDuty
// page wired in. The optional page query parameter selects the settings page kind.
func (h *Handler) Navigation(w http.ResponseWriter, r *http.Request) {
	kind := model.SettingsPageKind(r.URL.Query().Get("page"))
	if kind == "" {
		kind = model.PageDataRoot
	}
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown settings page")
		return
	}

	primary := application.AdvancedPrimaryItem()
	h.navSvc.UpdatePrimary(&primary)

	writeJSON(w, http.StatusOK, NavigationResponse{
		Primary:  primary,
		Settings: h.navSvc.SettingsActions(kind),
	})
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
