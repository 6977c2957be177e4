package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type HairHealthHandler struct {
	hairSvc     service.HairHealthService
	learningSvc service.LearningService
}

func NewHairHealthHandler(hairSvc service.HairHealthService, learningSvc service.LearningService) *HairHealthHandler {
	return &HairHealthHandler{hairSvc: hairSvc, learningSvc: learningSvc}
}

func (h *HairHealthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	p, err := h.hairSvc.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *HairHealthHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var p domain.HairHealthProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if p.HairType == "" {
		badRequest(w, "hair_type is required")
		return
	}

	if err := h.hairSvc.SaveProfile(r.Context(), claims.UserID, &p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *HairHealthHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	items, total, err := h.learningSvc.List(r.Context(), r.URL.Query().Get("topic"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *HairHealthHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(mux.Vars(r), "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	res, err := h.learningSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
