package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps service and storage sentinels onto HTTP statuses.
// Unknown errors become an opaque 500; internals never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrGrantExpiryInPast),
		errors.Is(err, service.ErrUnknownPermission),
		errors.Is(err, service.ErrSystemRoleReserved),
		errors.Is(err, service.ErrSessionNotReady),
		errors.Is(err, service.ErrPlanNotActive),
		errors.Is(err, service.ErrAgencyRequired),
		errors.Is(err, service.ErrInvalidUserType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeError(w, http.StatusUnauthorized, "authentication failed")
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrCannotManageUser),
		errors.Is(err, service.ErrRoleImmutable),
		errors.Is(err, service.ErrRoleProtected):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, repository.ErrDuplicate),
		errors.Is(err, repository.ErrVersionConflict),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrOrgNameTaken),
		errors.Is(err, service.ErrSessionCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSessionExpired):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, service.ErrUserLimitReached),
		errors.Is(err, service.ErrAgencyLimitReached),
		errors.Is(err, service.ErrDriverLimitReached):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("Unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
