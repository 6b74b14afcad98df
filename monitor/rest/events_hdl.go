package rest

import (
	"net/http"
	"time"

	"github.com/hightemp/process-manager/monitor/notify"
	"github.com/hightemp/process-manager/pkg/logger"
)

// StreamEvents holds the connection open and forwards every processes:update
// notification as a server-sent event until the client disconnects.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.ErrorResponse(ctx, w, http.StatusInternalServerError, ErrTypeInternal, "Streaming is not supported")
		return
	}

	sub := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(sub.ID)
	log := logger.Logger(ctx).With().Str("subscriber", sub.ID).Logger()
	log.Info().Msg("event stream opened")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := notify.WriteComment(w, "connected"); err != nil {
		return
	}
	flusher.Flush()

	keepAlive := time.NewTicker(h.keepAlive)
	defer keepAlive.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event stream closed by client")
			return
		case <-sub.Done():
			return
		case ev := <-sub.C:
			if err := notify.WriteSSE(w, ev); err != nil {
				log.Debug().Err(err).Msg("event stream write failed")
				return
			}
			flusher.Flush()
		case <-keepAlive.C:
			if err := notify.WriteComment(w, "ping"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
