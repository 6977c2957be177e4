package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/domain"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"
	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/security"
)

// errorResponse is the envelope every failed request returns. Code is a
// stable machine-readable string clients can branch on.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// listResponse wraps paginated collections.
type listResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
	Page  int32 `json:"page"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

func writeList(w http.ResponseWriter, items any, total, page int32) {
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Page: page})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Code: "BAD_REQUEST"})
}

// writeError maps domain errors onto HTTP statuses and stable codes.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, security.ErrExpiredToken):
		status, code = http.StatusUnauthorized, "TOKEN_EXPIRED"
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrWrongTokenType):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrEmailTaken):
		status, code = http.StatusConflict, "EMAIL_TAKEN"
	case errors.Is(err, domain.ErrScheduleConflict):
		status, code = http.StatusConflict, "SCHEDULE_CONFLICT"
	case errors.Is(err, domain.ErrAlreadyFavorite):
		status, code = http.StatusConflict, "ALREADY_FAVORITE"
	case errors.Is(err, domain.ErrChairUnavailable):
		status, code = http.StatusConflict, "CHAIR_UNAVAILABLE"
	case errors.Is(err, domain.ErrRequestNotPending):
		status, code = http.StatusConflict, "REQUEST_NOT_PENDING"
	case errors.Is(err, domain.ErrBookingNotPayable):
		status, code = http.StatusConflict, "BOOKING_NOT_PAYABLE"
	case errors.Is(err, domain.ErrBookingNotOpen):
		status, code = http.StatusConflict, "BOOKING_NOT_OPEN"
	case errors.Is(err, domain.ErrInvalidStatus):
		status, code = http.StatusConflict, "INVALID_STATUS"
	case errors.Is(err, domain.ErrRescheduleTooLate):
		status, code = http.StatusUnprocessableEntity, "RESCHEDULE_TOO_LATE"
	case errors.Is(err, domain.ErrTipBeforeComplete):
		status, code = http.StatusUnprocessableEntity, "TIP_BEFORE_COMPLETE"
	case errors.Is(err, domain.ErrNotAccepting):
		status, code = http.StatusUnprocessableEntity, "STYLIST_NOT_ACCEPTING"
	case errors.Is(err, domain.ErrInvalidDateRange):
		status, code = http.StatusBadRequest, "INVALID_DATE_RANGE"
	default:
		logger.Error("unhandled request error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: "INTERNAL"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// pathID extracts a numeric path variable.
func pathID(vars map[string]string, key string) (int32, error) {
	n, err := strconv.ParseInt(vars[key], 10, 32)
	if err != nil {
		return 0, errors.New("invalid id in path")
	}
	return int32(n), nil
}

// pagination reads page/page_size query params with sane defaults.
func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
