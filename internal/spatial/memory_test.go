package spatial

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ambutrack/internal/apperr"
	"ambutrack/internal/geo"
	"ambutrack/internal/models"
)

func newAmbulance(id, vehicleNumber string, status models.AmbulanceStatus, lat, lon float64) *models.Ambulance {
	now := time.Now().UTC()
	return &models.Ambulance{
		ID:            uuid.MustParse(id),
		VehicleNumber: vehicleNumber,
		Status:        status,
		Latitude:      lat,
		Longitude:     lon,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestMemoryStoreUpsertAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a := newAmbulance("11111111-1111-1111-1111-111111111111", "AMB-LG-001", models.StatusAvailable, 6.5244, 3.3792)
	require.NoError(t, s.UpsertAmbulance(ctx, a))

	got, err := s.AmbulanceByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "AMB-LG-001", got.VehicleNumber)
	assert.Equal(t, models.StatusAvailable, got.Status)
}

func TestMemoryStoreRejectsOutOfRange(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a := newAmbulance("11111111-1111-1111-1111-111111111111", "AMB-BAD-001", models.StatusAvailable, 95, 3.3792)
	err := s.UpsertAmbulance(ctx, a)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	// Nothing persisted.
	ambulances, err := s.ListAmbulances(ctx)
	require.NoError(t, err)
	assert.Empty(t, ambulances)
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.AmbulanceByID(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))

	_, err = s.HospitalByID(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestNearestAmbulanceLagosScenario(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	near := newAmbulance("11111111-1111-1111-1111-111111111111", "AMB-LG-001", models.StatusAvailable, 6.5244, 3.3792)
	far := newAmbulance("22222222-2222-2222-2222-222222222222", "AMB-LG-002", models.StatusEnRoute, 6.4541, 3.3947)
	require.NoError(t, s.UpsertAmbulance(ctx, near))
	require.NoError(t, s.UpsertAmbulance(ctx, far))

	hospital := geo.Point{Latitude: 6.5027, Longitude: 3.3724}
	got, distance, err := s.NearestAmbulance(ctx, hospital, nil)
	require.NoError(t, err)

	assert.Equal(t, near.ID, got.ID)
	assert.Greater(t, distance, 0.0)
}

func TestNearestAmbulanceTieBreakByID(t *testing.T) {
	// Two ambulances exactly equidistant from the query point; the one with
	// the smaller id must win regardless of insertion order.
	lowID := "11111111-1111-1111-1111-111111111111"
	highID := "22222222-2222-2222-2222-222222222222"

	query := geo.Point{Latitude: 0, Longitude: 0}

	for name, order := range map[string][2]string{
		"low inserted first":  {lowID, highID},
		"high inserted first": {highID, lowID},
	} {
		t.Run(name, func(t *testing.T) {
			s := NewMemoryStore()
			ctx := context.Background()

			east := newAmbulance(order[0], "AMB-E", models.StatusAvailable, 0, 0.001)
			west := newAmbulance(order[1], "AMB-W", models.StatusAvailable, 0, -0.001)
			require.NoError(t, s.UpsertAmbulance(ctx, east))
			require.NoError(t, s.UpsertAmbulance(ctx, west))

			got, _, err := s.NearestAmbulance(ctx, query, nil)
			require.NoError(t, err)
			assert.Equal(t, lowID, got.ID.String())
		})
	}
}

func TestNearestAmbulanceStatusFilter(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	busy := newAmbulance("11111111-1111-1111-1111-111111111111", "AMB-BUSY", models.StatusBusy, 6.5100, 3.3750)
	available := newAmbulance("22222222-2222-2222-2222-222222222222", "AMB-FREE", models.StatusAvailable, 6.4541, 3.3947)
	require.NoError(t, s.UpsertAmbulance(ctx, busy))
	require.NoError(t, s.UpsertAmbulance(ctx, available))

	hospital := geo.Point{Latitude: 6.5027, Longitude: 3.3724}

	// Unfiltered, the busy one is closer.
	got, _, err := s.NearestAmbulance(ctx, hospital, nil)
	require.NoError(t, err)
	assert.Equal(t, busy.ID, got.ID)

	// Restricted to available, the further one wins.
	status := models.StatusAvailable
	got, _, err = s.NearestAmbulance(ctx, hospital, &status)
	require.NoError(t, err)
	assert.Equal(t, available.ID, got.ID)
}

func TestNearestAmbulanceEmptyFleet(t *testing.T) {
	s := NewMemoryStore()

	_, _, err := s.NearestAmbulance(context.Background(), geo.Point{Latitude: 6.5, Longitude: 3.3}, nil)
	assert.True(t, apperr.IsNotFound(err))
}

func TestNearestAmbulanceTracksMoves(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a := newAmbulance("11111111-1111-1111-1111-111111111111", "AMB-LG-001", models.StatusAvailable, 6.5244, 3.3792)
	b := newAmbulance("22222222-2222-2222-2222-222222222222", "AMB-LG-002", models.StatusAvailable, 6.4541, 3.3947)
	require.NoError(t, s.UpsertAmbulance(ctx, a))
	require.NoError(t, s.UpsertAmbulance(ctx, b))

	hospital := geo.Point{Latitude: 6.5027, Longitude: 3.3724}

	got, _, err := s.NearestAmbulance(ctx, hospital, nil)
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)

	// Move the nearest ambulance to Kano; the other must take over.
	a.Latitude = 12.0022
	a.Longitude = 8.5919
	require.NoError(t, s.UpsertAmbulance(ctx, a))

	got, _, err = s.NearestAmbulance(ctx, hospital, nil)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestMemoryStoreHospitals(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	h := &models.Hospital{
		ID:           uuid.New(),
		Name:         "Lagos University Teaching Hospital",
		Address:      "Idi-Araba, Surulere, Lagos",
		NumberOfBeds: 500,
		Specialties:  []string{"Surgery"},
		Latitude:     6.5027,
		Longitude:    3.3724,
	}
	require.NoError(t, s.UpsertHospital(ctx, h))

	got, err := s.HospitalByName(ctx, h.Name)
	require.NoError(t, err)
	assert.Equal(t, h.ID, got.ID)

	hospitals, err := s.ListHospitals(ctx)
	require.NoError(t, err)
	assert.Len(t, hospitals, 1)
}
