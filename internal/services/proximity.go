package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ambutrack/internal/apperr"
	"ambutrack/internal/cache"
	"ambutrack/internal/config"
	"ambutrack/internal/geo"
	"ambutrack/internal/metrics"
	"ambutrack/internal/models"
	"ambutrack/internal/spatial"
)

// cacheKeyPrefix namespaces proximity entries. The key scheme is owned here;
// the cache itself knows nothing about hospitals.
const cacheKeyPrefix = "nearest_ambulance:hospital:"

// ProximityService resolves the nearest ambulance to a hospital, caching
// results for the configured TTL.
type ProximityService struct {
	store        spatial.Store
	cache        cache.Cache
	cacheTTL     time.Duration
	storeTimeout time.Duration
	logr         *zap.Logger
}

func NewProximityService(store spatial.Store, c cache.Cache, cfg *config.Config, logr *zap.Logger) *ProximityService {
	return &ProximityService{
		store:        store,
		cache:        c,
		cacheTTL:     cfg.CacheTTL,
		storeTimeout: cfg.StoreTimeout,
		logr:         logr,
	}
}

func cacheKey(hospitalID uuid.UUID) string {
	return cacheKeyPrefix + hospitalID.String()
}

// FindNearestAmbulance returns the closest ambulance to the hospital. A
// cached answer is returned with FromCache=true and no store access. On a
// miss, a hospital or fleet NotFound propagates and is never cached. Cache
// failures degrade: a failed read falls through to fresh computation, a
// failed write is logged and swallowed.
func (s *ProximityService) FindNearestAmbulance(ctx context.Context, hospitalID uuid.UUID) (*models.ProximityResult, error) {
	begin := time.Now()
	metrics.ProximityRequestsTotal.Inc()
	defer func() {
		metrics.ProximityDurationMs.Observe(float64(time.Since(begin).Milliseconds()))
	}()

	key := cacheKey(hospitalID)

	var cached models.ProximityResult
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		metrics.CacheErrorsTotal.Inc()
		s.logr.Warn("cache read failed, computing fresh", zap.String("key", key), zap.Error(err))
	}
	if hit {
		metrics.CacheHitsTotal.Inc()
		cached.FromCache = true
		return &cached, nil
	}
	metrics.CacheMissesTotal.Inc()

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	hospital, err := s.store.HospitalByID(sctx, hospitalID)
	if err != nil {
		return nil, err
	}

	ambulance, distance, err := s.store.NearestAmbulance(sctx, hospital.Position(), nil)
	if err != nil {
		if !apperr.IsNotFound(err) {
			metrics.NearestQueryFailuresTotal.Inc()
		}
		return nil, err
	}

	result := &models.ProximityResult{
		Ambulance: *ambulance,
		Distance:  geo.Round2(distance),
		FromCache: false,
	}

	if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
		metrics.CacheErrorsTotal.Inc()
		s.logr.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}

	return result, nil
}

// InvalidateHospital drops the cached result for one hospital.
func (s *ProximityService) InvalidateHospital(ctx context.Context, hospitalID uuid.UUID) error {
	return s.cache.Delete(ctx, cacheKey(hospitalID))
}

// InvalidateAll drops every cached proximity result. Called after any
// ambulance position or status change: any hospital's cached answer could
// reference the moved ambulance, so all entries go.
func (s *ProximityService) InvalidateAll(ctx context.Context) error {
	metrics.CacheInvalidationsTotal.Inc()
	return s.cache.DeletePrefix(ctx, cacheKeyPrefix)
}
