package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingRequest struct {
	StylistID       int32     `json:"stylist_id"`
	ChairID         *int32    `json:"chair_id,omitempty"`
	ServiceName     string    `json:"service_name"`
	LocationMode    string    `json:"location_mode"`
	Address         string    `json:"address"`
	ScheduledStart  time.Time `json:"scheduled_start"`
	DurationMinutes int32     `json:"duration_minutes"`
	AmountCents     int32     `json:"amount_cents"`
	Notes           string    `json:"notes"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ServiceName == "" {
		badRequest(w, "service_name is required")
		return
	}
	mode := domain.LocationMode(req.LocationMode)
	if mode != domain.LocationModeMobile && mode != domain.LocationModeSalon {
		badRequest(w, "location_mode must be MOBILE or SALON")
		return
	}

	b, err := h.bookingSvc.Create(r.Context(), claims.UserID, service.CreateBookingInput{
		StylistID:       req.StylistID,
		ChairID:         req.ChairID,
		ServiceName:     req.ServiceName,
		LocationMode:    mode,
		Address:         req.Address,
		ScheduledStart:  req.ScheduledStart,
		DurationMinutes: req.DurationMinutes,
		AmountCents:     req.AmountCents,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	b, err := h.bookingSvc.Get(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// List returns the caller's bookings: stylists see their appointment
// book, everyone else their own bookings as a customer.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	status := r.URL.Query().Get("status")
	page, pageSize := pagination(r)

	var (
		items []domain.Booking
		total int32
		err   error
	)
	if claims.Role == string(domain.UserRoleStylist) {
		items, total, err = h.bookingSvc.ListForStylist(r.Context(), claims.UserID, status, page, pageSize)
	} else {
		items, total, err = h.bookingSvc.ListForCustomer(r.Context(), claims.UserID, status, page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	b, err := h.bookingSvc.ConfirmPayment(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	b, err := h.bookingSvc.Cancel(r.Context(), claims.UserID, id, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req struct {
		ScheduledStart time.Time `json:"scheduled_start"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ScheduledStart.IsZero() {
		badRequest(w, "scheduled_start is required")
		return
	}

	b, err := h.bookingSvc.Reschedule(r.Context(), claims.UserID, id, req.ScheduledStart)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Tip(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req struct {
		TipCents int32 `json:"tip_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TipCents <= 0 {
		badRequest(w, "tip_cents must be positive")
		return
	}

	b, err := h.bookingSvc.Tip(r.Context(), claims.UserID, id, req.TipCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) MarkArrived(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.bookingSvc.MarkArrived(r.Context(), claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "arrived"})
}

func (h *BookingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	b, err := h.bookingSvc.StartSession(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	b, err := h.bookingSvc.CompleteSession(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
