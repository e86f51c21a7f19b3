package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ambutrack/internal/apperr"
	"ambutrack/internal/geo"
	"ambutrack/internal/models"
	"ambutrack/internal/spatial"
)

// HospitalService is the typed repository over the spatial store for
// hospitals.
type HospitalService struct {
	store spatial.Store
}

func NewHospitalService(store spatial.Store) *HospitalService {
	return &HospitalService{store: store}
}

func (s *HospitalService) Create(ctx context.Context, req *models.CreateHospitalRequest) (*models.Hospital, error) {
	var violations []string
	if req.Name == "" {
		violations = append(violations, "name must not be empty")
	}
	if req.Address == "" {
		violations = append(violations, "address must not be empty")
	}
	if req.NumberOfBeds < 1 {
		violations = append(violations, fmt.Sprintf("numberOfBeds must be at least 1, got %d", req.NumberOfBeds))
	}
	violations = append(violations, coordinateViolations(req.Latitude, req.Longitude)...)
	if len(violations) > 0 {
		return nil, apperr.Validation(violations...)
	}

	if _, err := s.store.HospitalByName(ctx, req.Name); err == nil {
		return nil, apperr.Validation(fmt.Sprintf("hospital %q already exists", req.Name))
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	now := time.Now().UTC()
	hospital := &models.Hospital{
		ID:           uuid.New(),
		Name:         req.Name,
		Address:      req.Address,
		NumberOfBeds: req.NumberOfBeds,
		Specialties:  specialties,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.UpsertHospital(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

// List returns all hospitals, optionally narrowed to those offering every
// requested specialty.
func (s *HospitalService) List(ctx context.Context, specialties []string) ([]models.Hospital, error) {
	hospitals, err := s.store.ListHospitals(ctx)
	if err != nil {
		return nil, err
	}
	if len(specialties) == 0 {
		return hospitals, nil
	}

	filtered := make([]models.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if hasAllSpecialties(h.Specialties, specialties) {
			filtered = append(filtered, h)
		}
	}
	return filtered, nil
}

func (s *HospitalService) Get(ctx context.Context, id uuid.UUID) (*models.Hospital, error) {
	return s.store.HospitalByID(ctx, id)
}

func hasAllSpecialties(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// coordinateViolations collects range errors for a lat/lon pair.
func coordinateViolations(latitude, longitude float64) []string {
	var violations []string
	if latitude < geo.MinLatitude || latitude > geo.MaxLatitude {
		violations = append(violations, fmt.Sprintf("latitude must be between %v and %v, got %v", geo.MinLatitude, geo.MaxLatitude, latitude))
	}
	if longitude < geo.MinLongitude || longitude > geo.MaxLongitude {
		violations = append(violations, fmt.Sprintf("longitude must be between %v and %v, got %v", geo.MinLongitude, geo.MaxLongitude, longitude))
	}
	return violations
}
