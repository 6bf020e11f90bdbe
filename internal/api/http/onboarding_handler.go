package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type OnboardingHandler struct {
	onboardingSvc service.OnboardingService
}

func NewOnboardingHandler(onboardingSvc service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingSvc: onboardingSvc}
}

func (h *OnboardingHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.onboardingSvc.CreateSession(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *OnboardingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	session, err := h.onboardingSvc.GetSession(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *OnboardingHandler) SaveOwnerInfo(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var info domain.OnboardingOwnerInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.onboardingSvc.SaveOwnerInfo(r.Context(), token, &info)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *OnboardingHandler) SaveOrganizationInfo(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var info domain.OnboardingOrgInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.onboardingSvc.SaveOrganizationInfo(r.Context(), token, &info)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *OnboardingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	var info domain.OnboardingSubscriptionInfo
	if err := decodeJSON(r, &info); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.onboardingSvc.Complete(r.Context(), token, &info)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
