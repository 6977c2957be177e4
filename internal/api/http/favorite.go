package http

import (
	"encoding/json"
	"net/http"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/service"
)

type FavoriteHandler struct {
	favSvc service.FavoriteService
}

func NewFavoriteHandler(favSvc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favSvc: favSvc}
}

type favoriteRequest struct {
	Kind     string `json:"kind"`
	TargetID int32  `json:"target_id"`
}

func (r favoriteRequest) validate() (domain.FavoriteKind, bool) {
	kind := domain.FavoriteKind(r.Kind)
	if kind != domain.FavoriteKindStylist && kind != domain.FavoriteKindProperty {
		return "", false
	}
	return kind, r.TargetID > 0
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	kind, ok := req.validate()
	if !ok {
		badRequest(w, "kind must be STYLIST or PROPERTY and target_id is required")
		return
	}

	f, err := h.favSvc.Add(r.Context(), claims.UserID, kind, req.TargetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	kind, ok := req.validate()
	if !ok {
		badRequest(w, "kind must be STYLIST or PROPERTY and target_id is required")
		return
	}

	if err := h.favSvc.Remove(r.Context(), claims.UserID, kind, req.TargetID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFromContext(r.Context())

	items, err := h.favSvc.List(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
