package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type StylistContextHandler struct {
	scSvc  service.StylistContextService
	calSvc service.CalendarService
}

func NewStylistContextHandler(scSvc service.StylistContextService, calSvc service.CalendarService) *StylistContextHandler {
	return &StylistContextHandler{scSvc: scSvc, calSvc: calSvc}
}

func (h *StylistContextHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	sc, err := h.scSvc.Get(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *StylistContextHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var sc domain.StylistContext
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.scSvc.Update(r.Context(), claims.UserID, &sc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *StylistContextHandler) SetAccepting(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req struct {
		Accepting bool `json:"accepting"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.scSvc.SetAccepting(r.Context(), claims.UserID, req.Accepting); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"accepting": req.Accepting})
}

func (h *StylistContextHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	blocks, err := h.calSvc.GetAvailability(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

func (h *StylistContextHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var blocks []domain.AvailabilityBlock
	if err := json.NewDecoder(r.Body).Decode(&blocks); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	if err := h.calSvc.SetAvailability(r.Context(), claims.UserID, blocks); err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

func (h *StylistContextHandler) ListBlockedDates(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	dates, err := h.calSvc.ListBlockedDates(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dates)
}

func (h *StylistContextHandler) AddBlockedDate(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req struct {
		Date   string `json:"date"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date == "" {
		badRequest(w, "date is required")
		return
	}

	b, err := h.calSvc.AddBlockedDate(r.Context(), claims.UserID, req.Date, req.Reason)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *StylistContextHandler) RemoveBlockedDate(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.calSvc.RemoveBlockedDate(r.Context(), claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
