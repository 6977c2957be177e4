package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type PropertyHandler struct {
	propSvc   service.PropertyService
	rentalSvc service.RentalService
}

func NewPropertyHandler(propSvc service.PropertyService, rentalSvc service.RentalService) *PropertyHandler {
	return &PropertyHandler{propSvc: propSvc, rentalSvc: rentalSvc}
}

type propertyRequest struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Metro     string   `json:"metro"`
	Amenities []string `json:"amenities"`
	Active    *bool    `json:"active,omitempty"`
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.Address == "" {
		badRequest(w, "name and address are required")
		return
	}

	p := &domain.Property{
		Name:      req.Name,
		Address:   req.Address,
		Metro:     req.Metro,
		Amenities: req.Amenities,
		Active:    true,
	}
	if err := h.propSvc.Create(r.Context(), claims.UserID, p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// List searches active properties, or with mine=true returns the
// caller's own portfolio.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	page, pageSize := pagination(r)

	var (
		items []domain.Property
		total int32
		err   error
	)
	if r.URL.Query().Get("mine") == "true" {
		items, total, err = h.propSvc.ListMine(r.Context(), claims.UserID, page, pageSize)
	} else {
		items, total, err = h.propSvc.Search(r.Context(), r.URL.Query().Get("metro"), page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	p, err := h.propSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	p, err := h.propSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Address != "" {
		p.Address = req.Address
	}
	if req.Metro != "" {
		p.Metro = req.Metro
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := h.propSvc.Update(r.Context(), claims.UserID, p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.propSvc.Delete(r.Context(), claims.UserID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type chairRequest struct {
	Name             string `json:"name"`
	DailyRentCents   int32  `json:"daily_rent_cents"`
	WeeklyRentCents  int32  `json:"weekly_rent_cents"`
	MonthlyRentCents int32  `json:"monthly_rent_cents"`
	ApprovalMode     string `json:"approval_mode"`
	Status           string `json:"status"`
}

func (h *PropertyHandler) AddChair(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	propertyID, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req chairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(w, "name is required")
		return
	}

	c := &domain.Chair{
		PropertyID:       propertyID,
		Name:             req.Name,
		DailyRentCents:   req.DailyRentCents,
		WeeklyRentCents:  req.WeeklyRentCents,
		MonthlyRentCents: req.MonthlyRentCents,
		ApprovalMode:     domain.ApprovalMode(req.ApprovalMode),
		Status:           domain.ChairStatus(req.Status),
	}
	if err := h.propSvc.AddChair(r.Context(), claims.UserID, c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *PropertyHandler) ListChairs(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	chairs, err := h.propSvc.ListChairs(r.Context(), propertyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chairs)
}

func (h *PropertyHandler) UpdateChair(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	vars := mux.Vars(r)
	chairID, err := pathID(vars, "chairID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req chairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	c := &domain.Chair{
		ID:               chairID,
		Name:             req.Name,
		DailyRentCents:   req.DailyRentCents,
		WeeklyRentCents:  req.WeeklyRentCents,
		MonthlyRentCents: req.MonthlyRentCents,
		ApprovalMode:     domain.ApprovalMode(req.ApprovalMode),
		Status:           domain.ChairStatus(req.Status),
	}
	if err := h.propSvc.UpdateChair(r.Context(), claims.UserID, c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type rentalRequestBody struct {
	ChairID   int32  `json:"chair_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Message   string `json:"message"`
}

func (h *PropertyHandler) CreateRentalRequest(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req rentalRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.ChairID == 0 || req.StartDate == "" || req.EndDate == "" {
		badRequest(w, "chair_id, start_date and end_date are required")
		return
	}

	rr, err := h.rentalSvc.CreateRequest(r.Context(), claims.UserID, req.ChairID, req.StartDate, req.EndDate, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rr)
}

// ListRentalRequests returns the stylist's outgoing requests or, for
// owners, the requests against their chairs.
func (h *PropertyHandler) ListRentalRequests(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	status := r.URL.Query().Get("status")
	page, pageSize := pagination(r)

	var (
		items []domain.RentalRequest
		total int32
		err   error
	)
	if claims.Role == string(domain.UserRoleOwner) {
		items, total, err = h.rentalSvc.ListForOwner(r.Context(), claims.UserID, status, page, pageSize)
	} else {
		items, total, err = h.rentalSvc.ListForStylist(r.Context(), claims.UserID, status, page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *PropertyHandler) ApproveRentalRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRentalRequest(w, r, true)
}

func (h *PropertyHandler) RejectRentalRequest(w http.ResponseWriter, r *http.Request) {
	h.decideRentalRequest(w, r, false)
}

func (h *PropertyHandler) decideRentalRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	var rr *domain.RentalRequest
	if approve {
		rr, err = h.rentalSvc.Approve(r.Context(), claims.UserID, id, req.Note)
	} else {
		rr, err = h.rentalSvc.Reject(r.Context(), claims.UserID, id, req.Note)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rr)
}

func (h *PropertyHandler) CancelRentalRequest(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rr, err := h.rentalSvc.Cancel(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rr)
}
