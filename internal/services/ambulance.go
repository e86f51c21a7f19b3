package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ambutrack/internal/apperr"
	"ambutrack/internal/models"
	"ambutrack/internal/spatial"
)

// Invalidator drops cached proximity results after ambulance mutations.
// Implemented by ProximityService.
type Invalidator interface {
	InvalidateAll(ctx context.Context) error
}

// AmbulanceService is the typed repository over the spatial store for
// ambulances. Field validation happens here, before any store write.
type AmbulanceService struct {
	store       spatial.Store
	invalidator Invalidator
	logr        *zap.Logger
}

func NewAmbulanceService(store spatial.Store, invalidator Invalidator, logr *zap.Logger) *AmbulanceService {
	return &AmbulanceService{store: store, invalidator: invalidator, logr: logr}
}

func (s *AmbulanceService) Create(ctx context.Context, req *models.CreateAmbulanceRequest) (*models.Ambulance, error) {
	var violations []string
	if req.VehicleNumber == "" {
		violations = append(violations, "vehicleNumber must not be empty")
	}
	status := req.Status
	if status == "" {
		status = models.StatusAvailable
	}
	if !status.Valid() {
		violations = append(violations, fmt.Sprintf("status %q is not one of available, en_route, busy", req.Status))
	}
	violations = append(violations, coordinateViolations(req.Latitude, req.Longitude)...)
	if len(violations) > 0 {
		return nil, apperr.Validation(violations...)
	}

	if _, err := s.store.AmbulanceByVehicleNumber(ctx, req.VehicleNumber); err == nil {
		return nil, apperr.Validation(fmt.Sprintf("vehicle number %s is already in use", req.VehicleNumber))
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	ambulance := &models.Ambulance{
		ID:            uuid.New(),
		VehicleNumber: req.VehicleNumber,
		Status:        status,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.UpsertAmbulance(ctx, ambulance); err != nil {
		return nil, err
	}
	return ambulance, nil
}

func (s *AmbulanceService) List(ctx context.Context) ([]models.Ambulance, error) {
	return s.store.ListAmbulances(ctx)
}

func (s *AmbulanceService) Get(ctx context.Context, id uuid.UUID) (*models.Ambulance, error) {
	return s.store.AmbulanceByID(ctx, id)
}

// UpdateLocation moves an ambulance and optionally changes its status in the
// same write.
func (s *AmbulanceService) UpdateLocation(ctx context.Context, id uuid.UUID, req *models.UpdateAmbulanceLocationRequest) (*models.Ambulance, error) {
	var violations []string
	violations = append(violations, coordinateViolations(req.Latitude, req.Longitude)...)
	if req.Status != "" && !req.Status.Valid() {
		violations = append(violations, fmt.Sprintf("status %q is not one of available, en_route, busy", req.Status))
	}
	if len(violations) > 0 {
		return nil, apperr.Validation(violations...)
	}

	ambulance, err := s.store.AmbulanceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ambulance.Latitude = req.Latitude
	ambulance.Longitude = req.Longitude
	if req.Status != "" {
		ambulance.Status = req.Status
	}
	ambulance.UpdatedAt = time.Now().UTC()

	if err := s.store.UpsertAmbulance(ctx, ambulance); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ambulance.ID)
	return ambulance, nil
}

func (s *AmbulanceService) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateAmbulanceStatusRequest) (*models.Ambulance, error) {
	if !req.Status.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("status %q is not one of available, en_route, busy", req.Status))
	}

	ambulance, err := s.store.AmbulanceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ambulance.Status = req.Status
	ambulance.UpdatedAt = time.Now().UTC()

	if err := s.store.UpsertAmbulance(ctx, ambulance); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ambulance.ID)
	return ambulance, nil
}

// UpdatePosition is the position-only variant taking {coordinates:{lat,lng}}.
func (s *AmbulanceService) UpdatePosition(ctx context.Context, id uuid.UUID, req *models.UpdateAmbulancePositionRequest) (*models.Ambulance, error) {
	if violations := coordinateViolations(req.Coordinates.Lat, req.Coordinates.Lng); len(violations) > 0 {
		return nil, apperr.Validation(violations...)
	}

	ambulance, err := s.store.AmbulanceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ambulance.Latitude = req.Coordinates.Lat
	ambulance.Longitude = req.Coordinates.Lng
	ambulance.UpdatedAt = time.Now().UTC()

	if err := s.store.UpsertAmbulance(ctx, ambulance); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ambulance.ID)
	return ambulance, nil
}

// invalidate drops all cached proximity answers after a mutation. A failing
// cache must not fail the update; stale entries then age out via TTL.
func (s *AmbulanceService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.invalidator.InvalidateAll(ctx); err != nil {
		s.logr.Warn("proximity cache invalidation failed",
			zap.String("ambulanceId", id.String()), zap.Error(err))
	}
}
