package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ambutrack/internal/models"
	"ambutrack/internal/services"
)

type AmbulanceHandler struct {
	service *services.AmbulanceService
	logr    *zap.Logger
}

func NewAmbulanceHandler(svc *services.AmbulanceService, logr *zap.Logger) *AmbulanceHandler {
	return &AmbulanceHandler{service: svc, logr: logr}
}

// Create handles POST /ambulances.
func (h *AmbulanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAmbulanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	ambulance, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusCreated, "Ambulance created", ambulance)
}

// List handles GET /ambulances.
func (h *AmbulanceHandler) List(w http.ResponseWriter, r *http.Request) {
	ambulances, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusOK, "", ambulances)
}

// Get handles GET /ambulances/{id}.
func (h *AmbulanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ambulance, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusOK, "", ambulance)
}

// UpdateLocation handles PATCH /ambulances/{id}/location.
func (h *AmbulanceHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateAmbulanceLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	ambulance, err := h.service.UpdateLocation(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusOK, "Ambulance location updated", ambulance)
}

// UpdateStatus handles PATCH /ambulances/{id}/status.
func (h *AmbulanceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateAmbulanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	ambulance, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusOK, "Ambulance status updated", ambulance)
}

// UpdatePosition handles PATCH /ambulances/{id}/position.
func (h *AmbulanceHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateAmbulancePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid request body")
		return
	}

	ambulance, err := h.service.UpdatePosition(r.Context(), id, &req)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusOK, "Ambulance position updated", ambulance)
}

// parseID reads the {id} route parameter as a UUID, answering 400 itself
// when the value is malformed.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, r, "invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}
