package spatial

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"

	"ambutrack/internal/apperr"
	"ambutrack/internal/geo"
	"ambutrack/internal/models"
)

const (
	rtreeTolerance   = 0.01
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	rtreeDimensions  = 2

	// Candidates pulled from the planar index before geodesic re-ranking.
	// The R-Tree orders by planar lat/lon distance, which can disagree with
	// surface distance for near-ties, so we over-fetch and re-rank.
	nearestCandidates = 32
)

type ambulanceItem struct {
	ambulance *models.Ambulance
	rect      *rtreego.Rect
}

func (it *ambulanceItem) Bounds() *rtreego.Rect { return it.rect }

// MemoryStore is an in-process spatial store backed by an R-Tree over
// ambulance positions. Used when STORE=memory and in tests.
type MemoryStore struct {
	mu         sync.RWMutex
	tree       *rtreego.Rtree
	ambulances map[uuid.UUID]*ambulanceItem
	hospitals  map[uuid.UUID]*models.Hospital
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tree:       rtreego.NewTree(rtreeDimensions, rtreeMinChildren, rtreeMaxChildren),
		ambulances: make(map[uuid.UUID]*ambulanceItem),
		hospitals:  make(map[uuid.UUID]*models.Hospital),
	}
}

func (s *MemoryStore) UpsertAmbulance(_ context.Context, a *models.Ambulance) error {
	if !a.Position().Valid() {
		return apperr.Validation(fmt.Sprintf("coordinates (%v, %v) out of range", a.Latitude, a.Longitude))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.ambulances[a.ID]; ok {
		s.tree.Delete(old)
	}

	stored := *a
	rect := rtreego.Point{a.Latitude, a.Longitude}.ToRect(rtreeTolerance)
	item := &ambulanceItem{ambulance: &stored, rect: rect}
	s.tree.Insert(item)
	s.ambulances[a.ID] = item
	return nil
}

func (s *MemoryStore) AmbulanceByID(_ context.Context, id uuid.UUID) (*models.Ambulance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.ambulances[id]
	if !ok {
		return nil, apperr.NotFound("Ambulance with ID %s not found", id)
	}
	copied := *item.ambulance
	return &copied, nil
}

func (s *MemoryStore) AmbulanceByVehicleNumber(_ context.Context, vehicleNumber string) (*models.Ambulance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.ambulances {
		if item.ambulance.VehicleNumber == vehicleNumber {
			copied := *item.ambulance
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Ambulance with vehicle number %s not found", vehicleNumber)
}

func (s *MemoryStore) ListAmbulances(_ context.Context) ([]models.Ambulance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Ambulance, 0, len(s.ambulances))
	for _, item := range s.ambulances {
		out = append(out, *item.ambulance)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) UpsertHospital(_ context.Context, h *models.Hospital) error {
	if !h.Position().Valid() {
		return apperr.Validation(fmt.Sprintf("coordinates (%v, %v) out of range", h.Latitude, h.Longitude))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *h
	s.hospitals[h.ID] = &stored
	return nil
}

func (s *MemoryStore) HospitalByID(_ context.Context, id uuid.UUID) (*models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.hospitals[id]
	if !ok {
		return nil, apperr.NotFound("Hospital with ID %s not found", id)
	}
	copied := *h
	return &copied, nil
}

func (s *MemoryStore) HospitalByName(_ context.Context, name string) (*models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.hospitals {
		if h.Name == name {
			copied := *h
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Hospital %q not found", name)
}

func (s *MemoryStore) ListHospitals(_ context.Context) ([]models.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Hospital, 0, len(s.hospitals))
	for _, h := range s.hospitals {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// NearestAmbulance pre-selects candidates from the R-Tree, then re-ranks by
// haversine distance with ties broken by ascending id.
func (s *MemoryStore) NearestAmbulance(_ context.Context, point geo.Point, status *models.AmbulanceStatus) (*models.Ambulance, float64, error) {
	if !point.Valid() {
		return nil, 0, apperr.Validation(fmt.Sprintf("coordinates (%v, %v) out of range", point.Latitude, point.Longitude))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	k := nearestCandidates
	if size := s.tree.Size(); size < k {
		k = size
	}
	if k == 0 {
		return nil, 0, apperr.NotFound("No ambulances available")
	}

	var filters []rtreego.Filter
	if status != nil {
		want := *status
		filters = append(filters, func(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
			item, ok := obj.(*ambulanceItem)
			return !ok || item.ambulance.Status != want, false
		})
	}
	neighbors := s.tree.NearestNeighbors(k, rtreego.Point{point.Latitude, point.Longitude}, filters...)

	type candidate struct {
		ambulance *models.Ambulance
		distance  float64
	}
	var candidates []candidate
	for _, n := range neighbors {
		item, ok := n.(*ambulanceItem)
		if !ok || item == nil {
			continue
		}
		candidates = append(candidates, candidate{
			ambulance: item.ambulance,
			distance:  geo.Distance(point, item.ambulance.Position()),
		})
	}
	if len(candidates) == 0 {
		return nil, 0, apperr.NotFound("No ambulances available")
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return strings.Compare(candidates[i].ambulance.ID.String(), candidates[j].ambulance.ID.String()) < 0
	})

	best := candidates[0]
	copied := *best.ambulance
	return &copied, best.distance, nil
}
