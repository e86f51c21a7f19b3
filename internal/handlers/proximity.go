package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"ambutrack/internal/services"
)

type ProximityHandler struct {
	service *services.ProximityService
	logr    *zap.Logger
}

func NewProximityHandler(svc *services.ProximityService, logr *zap.Logger) *ProximityHandler {
	return &ProximityHandler{service: svc, logr: logr}
}

// NearestAmbulance handles GET /hospitals/{id}/nearest-ambulance and
// GET /proximity/hospitals/{id}/nearest-ambulance.
func (h *ProximityHandler) NearestAmbulance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	result, err := h.service.FindNearestAmbulance(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logr)
		return
	}
	writeSuccess(w, http.StatusOK, "", result)
}
