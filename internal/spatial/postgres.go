package spatial

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"ambutrack/internal/apperr"
	"ambutrack/internal/geo"
	"ambutrack/internal/models"
)

// PostgresStore keeps entities in Postgres with PostGIS geography columns.
// The location column is rebuilt from latitude/longitude on every write so
// the two representations cannot drift.
type PostgresStore struct {
	db *bun.DB
}

func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// locationExpr builds the geography point. The (longitude, latitude)
// argument order is PostGIS convention and must not be swapped.
const locationExpr = "ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography"

func (s *PostgresStore) UpsertAmbulance(ctx context.Context, a *models.Ambulance) error {
	if !a.Position().Valid() {
		return apperr.Validation(fmt.Sprintf("coordinates (%v, %v) out of range", a.Latitude, a.Longitude))
	}

	_, err := s.db.NewInsert().
		Model(a).
		Value("location", locationExpr, a.Longitude, a.Latitude).
		On("CONFLICT (id) DO UPDATE").
		Set("vehicle_number = EXCLUDED.vehicle_number").
		Set("status = EXCLUDED.status").
		Set("latitude = EXCLUDED.latitude").
		Set("longitude = EXCLUDED.longitude").
		Set("location = EXCLUDED.location").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert ambulance: %w", err)
	}
	return nil
}

func (s *PostgresStore) AmbulanceByID(ctx context.Context, id uuid.UUID) (*models.Ambulance, error) {
	ambulance := new(models.Ambulance)
	err := s.db.NewSelect().
		Model(ambulance).
		Where("a.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Ambulance with ID %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select ambulance: %w", err)
	}
	return ambulance, nil
}

func (s *PostgresStore) AmbulanceByVehicleNumber(ctx context.Context, vehicleNumber string) (*models.Ambulance, error) {
	ambulance := new(models.Ambulance)
	err := s.db.NewSelect().
		Model(ambulance).
		Where("a.vehicle_number = ?", vehicleNumber).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Ambulance with vehicle number %s not found", vehicleNumber)
	}
	if err != nil {
		return nil, fmt.Errorf("select ambulance by vehicle number: %w", err)
	}
	return ambulance, nil
}

func (s *PostgresStore) ListAmbulances(ctx context.Context) ([]models.Ambulance, error) {
	var ambulances []models.Ambulance
	err := s.db.NewSelect().
		Model(&ambulances).
		OrderExpr("a.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ambulances: %w", err)
	}
	return ambulances, nil
}

func (s *PostgresStore) UpsertHospital(ctx context.Context, h *models.Hospital) error {
	if !h.Position().Valid() {
		return apperr.Validation(fmt.Sprintf("coordinates (%v, %v) out of range", h.Latitude, h.Longitude))
	}

	_, err := s.db.NewInsert().
		Model(h).
		Value("location", locationExpr, h.Longitude, h.Latitude).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("address = EXCLUDED.address").
		Set("number_of_beds = EXCLUDED.number_of_beds").
		Set("specialties = EXCLUDED.specialties").
		Set("latitude = EXCLUDED.latitude").
		Set("longitude = EXCLUDED.longitude").
		Set("location = EXCLUDED.location").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert hospital: %w", err)
	}
	return nil
}

func (s *PostgresStore) HospitalByID(ctx context.Context, id uuid.UUID) (*models.Hospital, error) {
	hospital := new(models.Hospital)
	err := s.db.NewSelect().
		Model(hospital).
		Where("h.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Hospital with ID %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select hospital: %w", err)
	}
	return hospital, nil
}

func (s *PostgresStore) HospitalByName(ctx context.Context, name string) (*models.Hospital, error) {
	hospital := new(models.Hospital)
	err := s.db.NewSelect().
		Model(hospital).
		Where("h.name = ?", name).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Hospital %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("select hospital by name: %w", err)
	}
	return hospital, nil
}

func (s *PostgresStore) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := s.db.NewSelect().
		Model(&hospitals).
		OrderExpr("h.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	return hospitals, nil
}

// NearestAmbulance asks PostGIS for the closest ambulance by geography
// distance (spheroid-aware). ORDER BY distance, id keeps ties deterministic.
func (s *PostgresStore) NearestAmbulance(ctx context.Context, point geo.Point, status *models.AmbulanceStatus) (*models.Ambulance, float64, error) {
	if !point.Valid() {
		return nil, 0, apperr.Validation(fmt.Sprintf("coordinates (%v, %v) out of range", point.Latitude, point.Longitude))
	}

	q := s.db.NewSelect().
		ColumnExpr("a.id").
		ColumnExpr("a.vehicle_number").
		ColumnExpr("a.status").
		ColumnExpr("a.latitude").
		ColumnExpr("a.longitude").
		ColumnExpr("a.created_at").
		ColumnExpr("a.updated_at").
		ColumnExpr("ST_Distance(a.location, "+locationExpr+") AS distance", point.Longitude, point.Latitude).
		TableExpr("ambulances AS a").
		OrderExpr("distance ASC, a.id ASC").
		Limit(1)

	if status != nil {
		q = q.Where("a.status = ?", *status)
	}

	var row struct {
		ID            uuid.UUID              `bun:"id"`
		VehicleNumber string                 `bun:"vehicle_number"`
		Status        models.AmbulanceStatus `bun:"status"`
		Latitude      float64                `bun:"latitude"`
		Longitude     float64                `bun:"longitude"`
		CreatedAt     time.Time              `bun:"created_at"`
		UpdatedAt     time.Time              `bun:"updated_at"`
		Distance      float64                `bun:"distance"`
	}

	err := q.Scan(ctx, &row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, apperr.NotFound("No ambulances available")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("nearest ambulance query: %w", err)
	}

	ambulance := &models.Ambulance{
		ID:            row.ID,
		VehicleNumber: row.VehicleNumber,
		Status:        row.Status,
		Latitude:      row.Latitude,
		Longitude:     row.Longitude,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	return ambulance, row.Distance, nil
}
