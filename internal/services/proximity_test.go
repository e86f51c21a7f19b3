package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ambutrack/internal/apperr"
	"ambutrack/internal/cache"
	"ambutrack/internal/config"
	"ambutrack/internal/geo"
	"ambutrack/internal/models"
	"ambutrack/internal/spatial"
)

func testConfig() *config.Config {
	return &config.Config{
		CacheTTL:     300 * time.Second,
		StoreTimeout: 5 * time.Second,
	}
}

func seedHospital(t *testing.T, store spatial.Store, lat, lon float64) *models.Hospital {
	t.Helper()
	h := &models.Hospital{
		ID:           uuid.New(),
		Name:         "Lagos University Teaching Hospital",
		Address:      "Idi-Araba, Surulere, Lagos",
		NumberOfBeds: 500,
		Latitude:     lat,
		Longitude:    lon,
	}
	require.NoError(t, store.UpsertHospital(context.Background(), h))
	return h
}

func seedAmbulance(t *testing.T, store spatial.Store, vehicleNumber string, lat, lon float64) *models.Ambulance {
	t.Helper()
	a := &models.Ambulance{
		ID:            uuid.New(),
		VehicleNumber: vehicleNumber,
		Status:        models.StatusAvailable,
		Latitude:      lat,
		Longitude:     lon,
	}
	require.NoError(t, store.UpsertAmbulance(context.Background(), a))
	return a
}

func TestFindNearestAmbulanceFreshThenCached(t *testing.T) {
	store := spatial.NewMemoryStore()
	mc := cache.NewMemory()
	svc := NewProximityService(store, mc, testConfig(), zap.NewNop())
	ctx := context.Background()

	hospital := seedHospital(t, store, 6.5027, 3.3724)
	near := seedAmbulance(t, store, "AMB-LG-001", 6.5244, 3.3792)
	seedAmbulance(t, store, "AMB-LG-002", 6.4541, 3.3947)

	first, err := svc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, near.ID, first.Ambulance.ID)
	assert.Greater(t, first.Distance, 0.0)

	second, err := svc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Ambulance.ID, second.Ambulance.ID)
	assert.Equal(t, first.Distance, second.Distance)
}

func TestFindNearestAmbulanceDistanceRounded(t *testing.T) {
	store := spatial.NewMemoryStore()
	svc := NewProximityService(store, cache.NewMemory(), testConfig(), zap.NewNop())

	hospital := seedHospital(t, store, 6.5027, 3.3724)
	seedAmbulance(t, store, "AMB-LG-001", 6.5244, 3.3792)

	result, err := svc.FindNearestAmbulance(context.Background(), hospital.ID)
	require.NoError(t, err)

	// Rounded to 2 decimal places, so re-rounding changes nothing.
	assert.Equal(t, geo.Round2(result.Distance), result.Distance)
}

func TestFindNearestAmbulanceRecomputesAfterTTL(t *testing.T) {
	store := spatial.NewMemoryStore()
	mc := cache.NewMemory()
	svc := NewProximityService(store, mc, testConfig(), zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	mc.SetClock(func() time.Time { return now })

	hospital := seedHospital(t, store, 6.5027, 3.3724)
	seedAmbulance(t, store, "AMB-LG-001", 6.5244, 3.3792)

	first, err := svc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)
	require.False(t, first.FromCache)

	second, err := svc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)
	require.True(t, second.FromCache)

	now = now.Add(301 * time.Second)

	third, err := svc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)
	assert.False(t, third.FromCache, "expired entry must be recomputed even with unchanged data")
	assert.Equal(t, first.Ambulance.ID, third.Ambulance.ID)
}

func TestFindNearestAmbulanceUnknownHospitalNotCached(t *testing.T) {
	store := spatial.NewMemoryStore()
	mc := cache.NewMemory()
	svc := NewProximityService(store, mc, testConfig(), zap.NewNop())
	ctx := context.Background()

	seedAmbulance(t, store, "AMB-LG-001", 6.5244, 3.3792)

	unknown := uuid.New()
	_, err := svc.FindNearestAmbulance(ctx, unknown)
	assert.True(t, apperr.IsNotFound(err))

	// The failure must not leave a negative cache entry behind.
	var cached models.ProximityResult
	hit, err := mc.Get(ctx, "nearest_ambulance:hospital:"+unknown.String(), &cached)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestFindNearestAmbulanceEmptyFleet(t *testing.T) {
	store := spatial.NewMemoryStore()
	svc := NewProximityService(store, cache.NewMemory(), testConfig(), zap.NewNop())

	hospital := seedHospital(t, store, 6.5027, 3.3724)

	_, err := svc.FindNearestAmbulance(context.Background(), hospital.ID)
	assert.True(t, apperr.IsNotFound(err))
}

// brokenCache fails every operation, standing in for an unreachable Redis.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("connection refused")
}
func (brokenCache) Set(context.Context, string, any, time.Duration) error {
	return errors.New("connection refused")
}
func (brokenCache) Delete(context.Context, string) error       { return errors.New("connection refused") }
func (brokenCache) DeletePrefix(context.Context, string) error { return errors.New("connection refused") }

func TestFindNearestAmbulanceDegradesWhenCacheDown(t *testing.T) {
	store := spatial.NewMemoryStore()
	svc := NewProximityService(store, brokenCache{}, testConfig(), zap.NewNop())

	hospital := seedHospital(t, store, 6.5027, 3.3724)
	near := seedAmbulance(t, store, "AMB-LG-001", 6.5244, 3.3792)

	// Both the cache read and the cache write fail; the request still
	// succeeds with a fresh result.
	result, err := svc.FindNearestAmbulance(context.Background(), hospital.ID)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, near.ID, result.Ambulance.ID)
}

// The next ambulance mutation must invalidate cached proximity answers.
// Under the no-invalidation behavior this test fails: the second resolution
// would keep returning the moved ambulance from cache.
func TestAmbulanceMoveInvalidatesCache(t *testing.T) {
	store := spatial.NewMemoryStore()
	mc := cache.NewMemory()
	cfg := testConfig()
	logr := zap.NewNop()

	proximitySvc := NewProximityService(store, mc, cfg, logr)
	ambulanceSvc := NewAmbulanceService(store, proximitySvc, logr)
	ctx := context.Background()

	hospital := seedHospital(t, store, 6.5027, 3.3724)
	near := seedAmbulance(t, store, "AMB-LG-001", 6.5244, 3.3792)
	other := seedAmbulance(t, store, "AMB-LG-002", 6.4541, 3.3947)

	first, err := proximitySvc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)
	require.Equal(t, near.ID, first.Ambulance.ID)

	// Move the nearest ambulance to Kano through the repository, which
	// drops the cached answer.
	_, err = ambulanceSvc.UpdateLocation(ctx, near.ID, &models.UpdateAmbulanceLocationRequest{
		Latitude:  12.0022,
		Longitude: 8.5919,
	})
	require.NoError(t, err)

	second, err := proximitySvc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)
	assert.False(t, second.FromCache)
	assert.Equal(t, other.ID, second.Ambulance.ID)
}

func TestInvalidateHospitalDropsSingleEntry(t *testing.T) {
	store := spatial.NewMemoryStore()
	mc := cache.NewMemory()
	svc := NewProximityService(store, mc, testConfig(), zap.NewNop())
	ctx := context.Background()

	hospital := seedHospital(t, store, 6.5027, 3.3724)
	seedAmbulance(t, store, "AMB-LG-001", 6.5244, 3.3792)

	_, err := svc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)

	require.NoError(t, svc.InvalidateHospital(ctx, hospital.ID))

	result, err := svc.FindNearestAmbulance(ctx, hospital.ID)
	require.NoError(t, err)
	assert.False(t, result.FromCache)
}
