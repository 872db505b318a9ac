package httphandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxDirectBody = 1 << 20

// directRequest is one call in an Ext.Direct style request. Data holds the
// positional arguments; keyword arguments arrive as a single object.
type directRequest struct {
	Action string            `json:"action"`
	Method string            `json:"method"`
	Data   []json.RawMessage `json:"data"`
	Type   string            `json:"type"`
	TID    int               `json:"tid"`
}

type directResponse struct {
	Type    string          `json:"type"`
	TID     int             `json:"tid"`
	Action  string          `json:"action"`
	Method  string          `json:"method"`
	Result  *RouterResponse `json:"result,omitempty"`
	Message string          `json:"message,omitempty"`
}

// getServicesArgs are the keyword arguments of ServicesRouter.getServices.
type getServicesArgs struct {
	WantsMessages bool `json:"wantsMessages"`
}

// Direct dispatches AccountRouter and ServicesRouter calls. The body is either
// a single call object or an array of calls; the reply has the same shape.
func (h *Handler) Direct(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDirectBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var calls []directRequest
		if err := json.Unmarshal(trimmed, &calls); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		responses := make([]directResponse, 0, len(calls))
		for _, call := range calls {
			responses = append(responses, h.dispatch(r.Context(), call))
		}
		writeJSON(w, http.StatusOK, responses)
		return
	}

	var call directRequest
	if err := json.Unmarshal(trimmed, &call); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, h.dispatch(r.Context(), call))
}

func (h *Handler) dispatch(ctx context.Context, call directRequest) directResponse {
	resp := directResponse{Type: "rpc", TID: call.TID, Action: call.Action, Method: call.Method}

	result, err := h.invoke(ctx, call)
	if err != nil {
		h.logger.Warn("router call rejected", "action", call.Action, "method", call.Method, "error", err)
		resp.Type = "exception"
		resp.Message = err.Error()
		return resp
	}

	resp.Result = &result
	return resp
}

func (h *Handler) invoke(ctx context.Context, call directRequest) (RouterResponse, error) {
	switch call.Action + "." + call.Method {
	case "AccountRouter.getAccountSettings":
		return toRouterResponse(h.accountSvc.GetAccountSettings(ctx)), nil

	case "AccountRouter.updateAccountSettings":
		var args UpdateAccountRequest
		if err := decodeKeywordArgs(call.Data, &args); err != nil {
			return RouterResponse{}, err
		}
		return toRouterResponse(h.accountSvc.UpdateAccountSettings(ctx, args.toApplication())), nil

	case "ServicesRouter.getServices":
		var args getServicesArgs
		if err := decodeKeywordArgs(call.Data, &args); err != nil {
			return RouterResponse{}, err
		}
		return toRouterResponse(h.servicesSvc.GetServices(ctx, args.WantsMessages)), nil

	default:
		return RouterResponse{}, fmt.Errorf("unknown router method %s.%s", call.Action, call.Method)
	}
}

// decodeKeywordArgs decodes the first positional argument into v. Missing or
// null arguments leave v at its zero value.
func decodeKeywordArgs(data []json.RawMessage, v any) error {
	if len(data) == 0 || string(bytes.TrimSpace(data[0])) == "null" {
		return nil
	}
	if err := json.Unmarshal(data[0], v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
