package http

import (
	"net/http"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"

	"github.com/gorilla/mux"
)

type PlanHandler struct {
	planSvc service.PlanService
}

func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// List is public: the plan catalog is shown during onboarding, before any
// account exists.
func (h *PlanHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"
	plans, err := h.planSvc.ListPlans(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}
	plan, err := h.planSvc.GetPlan(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := UserFromContext(r.Context())
	var plan domain.SubscriptionPlan
	if err := decodeJSON(r, &plan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.planSvc.CreatePlan(r.Context(), actor, &plan)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := UserFromContext(r.Context())
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}
	var plan domain.SubscriptionPlan
	if err := decodeJSON(r, &plan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	plan.ID = id
	if err := h.planSvc.UpdatePlan(r.Context(), actor, &plan); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
