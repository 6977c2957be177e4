package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r)

	items, total, err := h.ledgerSvc.List(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	s, err := h.ledgerSvc.Summary(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *LedgerHandler) ForBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	entries, err := h.ledgerSvc.ListForBooking(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
