package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type DriverHandler struct {
	driverSvc service.DriverService
}

func NewDriverHandler(driverSvc service.DriverService) *DriverHandler {
	return &DriverHandler{driverSvc: driverSvc}
}

func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var driver domain.Driver
	if err := decodeJSON(r, &driver); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.driverSvc.CreateDriver(r.Context(), &driver)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid driver id")
		return
	}
	driver, err := h.driverSvc.GetDriver(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

func (h *DriverHandler) ListByOrganization(w http.ResponseWriter, r *http.Request) {
	orgID, err := parseID(mux.Vars(r)["orgId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid organization id")
		return
	}
	drivers, err := h.driverSvc.ListDrivers(r.Context(), orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid driver id")
		return
	}
	if err := h.driverSvc.DeleteDriver(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
