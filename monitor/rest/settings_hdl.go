package rest

import (
	"net/http"
)

type SetIntervalRequest struct {
	Ms *uint64 `json:"ms"`
}

type SetPausedRequest struct {
	Paused *bool `json:"paused"`
}

type CopyTextRequest struct {
	Text string `json:"text"`
}

func (h *Handler) GetRefreshSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.SuccessResponse(ctx, w, h.Svc.RefreshConfig(ctx))
}

// SetRefreshInterval stores the requested interval after clamping it and
// responds with the settings now in effect.
func (h *Handler) SetRefreshInterval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetIntervalRequest
	if err := h.JSONBind(r, &req); err != nil || req.Ms == nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, ErrTypeBadRequest, "Request body must be {\"ms\": <milliseconds>}")
		return
	}
	if _, err := h.Svc.SetRefreshInterval(ctx, *req.Ms); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.SuccessResponse(ctx, w, h.Svc.RefreshConfig(ctx))
}

func (h *Handler) SetPaused(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetPausedRequest
	if err := h.JSONBind(r, &req); err != nil || req.Paused == nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, ErrTypeBadRequest, "Request body must be {\"paused\": <bool>}")
		return
	}
	if err := h.Svc.SetPaused(ctx, *req.Paused); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.SuccessResponse(ctx, w, h.Svc.RefreshConfig(ctx))
}

func (h *Handler) CopyText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CopyTextRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, ErrTypeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.Svc.CopyText(ctx, req.Text); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.SuccessResponse(ctx, w, nil)
}
