package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type AgencyHandler struct {
	agencySvc service.AgencyService
}

func NewAgencyHandler(agencySvc service.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencySvc: agencySvc}
}

type createAgencyRequest struct {
	OrganizationID int32  `json:"organization_id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phone_number"`
}

func (h *AgencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAgencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agency := &domain.Agency{
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
	}
	created, err := h.agencySvc.CreateAgency(r.Context(), agency)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *AgencyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agency id")
		return
	}
	agency, err := h.agencySvc.GetAgency(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agency)
}

func (h *AgencyHandler) ListByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseID(mux.Vars(r)["orgId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid organization id")
		return
	}
	agencies, err := h.agencySvc.ListAgencies(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agencies)
}

func (h *AgencyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agency id")
		return
	}
	if err := h.agencySvc.DeleteAgency(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
