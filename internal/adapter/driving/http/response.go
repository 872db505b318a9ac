package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/pdpanel/internal/application"
	"github.com/ericfisherdev/pdpanel/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// RouterResponse is the JSON body of a router call. Msg is null when no popup
// message should be shown.
type RouterResponse struct {
	Success       bool    `json:"success"`
	Msg           *string `json:"msg"`
	InlineMessage string  `json:"inlineMessage,omitempty"`
	Data          any     `json:"data,omitempty"`
}

func toRouterResponse(r application.Response) RouterResponse {
	resp := RouterResponse{
		Success:       r.Success,
		InlineMessage: r.InlineMessage,
		Data:          r.Data,
	}
	if r.Msg != "" {
		msg := r.Msg
		resp.Msg = &msg
	}
	return resp
}

// UpdateAccountRequest is the body of PUT /api/v1/account and the keyword
// arguments of AccountRouter.updateAccountSettings. APITimeout accepts either
// a JSON number or a string.
type UpdateAccountRequest struct {
	APIAccessKey  string          `json:"apiAccessKey"`
	Subdomain     string          `json:"subdomain"`
	APITimeout    json.RawMessage `json:"apiTimeout"`
	WantsMessages *bool           `json:"wantsMessages"`
}

func (r UpdateAccountRequest) toApplication() application.UpdateAccountRequest {
	wants := true
	if r.WantsMessages != nil {
		wants = *r.WantsMessages
	}
	return application.UpdateAccountRequest{
		APIAccessKey:  r.APIAccessKey,
		Subdomain:     r.Subdomain,
		APITimeout:    rawScalar(r.APITimeout),
		WantsMessages: wants,
	}
}

// rawScalar renders a JSON string or number as its plain text; null and
// missing become the empty string.
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// CreateNotificationRequest is the body of POST /api/v1/notifications.
type CreateNotificationRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// NotificationResponse is the JSON representation of a notification.
type NotificationResponse struct {
	ID                    string   `json:"id"`
	Action                string   `json:"action"`
	Enabled               bool     `json:"enabled"`
	SendClear             bool     `json:"send_clear"`
	RepeatSeconds         int      `json:"repeat_seconds"`
	SendInitialOccurrence bool     `json:"send_initial_occurrence"`
	Recipients            []string `json:"recipients"`
	CreatedAt             string   `json:"created_at"`
}

func toNotificationResponse(n model.Notification) NotificationResponse {
	recipients := n.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return NotificationResponse{
		ID:                    n.ID,
		Action:                n.Action,
		Enabled:               n.Enabled,
		SendClear:             n.SendClear,
		RepeatSeconds:         n.RepeatSeconds,
		SendInitialOccurrence: n.SendInitialOccurrence,
		Recipients:            recipients,
		CreatedAt:             n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NavigationResponse describes where the settings page is linked from.
type NavigationResponse struct {
	Primary  model.PrimaryNavItem `json:"primary"`
	Settings []model.NavAction    `json:"settings"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
