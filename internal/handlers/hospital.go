package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"ambutrack/internal/models"
	"ambutrack/internal/services"
	"ambutrack/internal/utils"
)

type HospitalHandler struct {
	service *services.HospitalService
	logr    *zap.Logger
}

func NewHospitalHandler(svc *services.HospitalService, logr *zap.Logger) *HospitalHandler {
	return &HospitalHandler{service: svc, logr: logr}
}

// Create handles POST /hospitals.
func (h *HospitalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	hospital, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusCreated, "Hospital created", hospital)
}

// List handles GET /hospitals. ?specialty=a,b narrows to hospitals offering
// every named specialty.
func (h *HospitalHandler) List(w http.ResponseWriter, r *http.Request) {
	specialties := utils.ParseQueryList(r.URL.Query(), "specialty")

	hospitals, err := h.service.List(r.Context(), specialties)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusOK, "", hospitals)
}

// Get handles GET /hospitals/{id}.
func (h *HospitalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	hospital, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusOK, "", hospital)
}
