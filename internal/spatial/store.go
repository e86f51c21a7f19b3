// Package spatial persists geolocated entities and answers nearest-to-point
// queries. Two backends exist: Postgres/PostGIS for production and an
// in-memory R-Tree for development and tests.
package spatial

import (
	"context"

	"github.com/google/uuid"

	"ambutrack/internal/geo"
	"ambutrack/internal/models"
)

// Store is the spatial store contract. Upserts reject out-of-range
// coordinates before writing; lookups and Nearest fail with
// apperr.NotFoundError when nothing matches.
type Store interface {
	UpsertAmbulance(ctx context.Context, a *models.Ambulance) error
	AmbulanceByID(ctx context.Context, id uuid.UUID) (*models.Ambulance, error)
	AmbulanceByVehicleNumber(ctx context.Context, vehicleNumber string) (*models.Ambulance, error)
	ListAmbulances(ctx context.Context) ([]models.Ambulance, error)

	UpsertHospital(ctx context.Context, h *models.Hospital) error
	HospitalByID(ctx context.Context, id uuid.UUID) (*models.Hospital, error)
	HospitalByName(ctx context.Context, name string) (*models.Hospital, error)
	ListHospitals(ctx context.Context) ([]models.Hospital, error)

	// NearestAmbulance returns the closest ambulance to point by geodesic
	// surface distance, in meters, optionally restricted to one status.
	// Ties are broken by ascending ambulance id.
	NearestAmbulance(ctx context.Context, point geo.Point, status *models.AmbulanceStatus) (*models.Ambulance, float64, error)
}
