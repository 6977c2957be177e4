package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/live"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/metrics"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 25 * time.Second

type LiveHandler struct {
	bookingSvc service.BookingService
	hub        *live.Hub
}

func NewLiveHandler(bookingSvc service.BookingService, hub *live.Hub) *LiveHandler {
	return &LiveHandler{bookingSvc: bookingSvc, hub: hub}
}

// Stream serves the booking's live event feed over Server-Sent Events.
func (h *LiveHandler) Stream(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	// Reuse the booking read path so only the two parties can listen in.
	booking, err := h.bookingSvc.Get(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported", Code: "INTERNAL"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cancel := h.hub.Subscribe(id)
	defer cancel()
	metrics.LiveConnections.Inc()
	defer metrics.LiveConnections.Dec()

	writeSSE(w, live.Event{
		BookingID: id,
		Type:      live.EventConnected,
		Data:      map[string]string{"status": string(booking.Status)},
		At:        time.Now(),
	})
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			// SSE comment line, invisible to listeners.
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev live.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"booking_id":%d,"type":%q}`, ev.BookingID, live.EventError))
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
}
