// Package seed loads a starter set of Nigerian hospitals and ambulances.
// Idempotent: rows already present (by hospital name / vehicle number) are
// skipped.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ambutrack/internal/apperr"
	"ambutrack/internal/models"
	"ambutrack/internal/spatial"
)

type hospitalSeed struct {
	name         string
	address      string
	latitude     float64
	longitude    float64
	numberOfBeds int
	specialties  []string
}

type ambulanceSeed struct {
	vehicleNumber string
	status        models.AmbulanceStatus
	latitude      float64
	longitude     float64
}

var hospitalSeeds = []hospitalSeed{
	{
		name:         "Lagos University Teaching Hospital",
		address:      "Idi-Araba, Surulere, Lagos",
		latitude:     6.5027,
		longitude:    3.3724,
		numberOfBeds: 500,
		specialties:  []string{"General Medicine", "Surgery", "Pediatrics", "Obstetrics", "Emergency Medicine"},
	},
	{
		name:         "National Hospital Abuja",
		address:      "Central Business District, Abuja",
		latitude:     9.0765,
		longitude:    7.3986,
		numberOfBeds: 450,
		specialties:  []string{"Cardiology", "Neurology", "Oncology", "Orthopedics", "Emergency Medicine"},
	},
	{
		name:         "University of Port Harcourt Teaching Hospital",
		address:      "Choba, Port Harcourt, Rivers State",
		latitude:     4.8936,
		longitude:    6.9164,
		numberOfBeds: 400,
		specialties:  []string{"General Medicine", "Surgery", "Pediatrics", "Radiology", "Pathology"},
	},
	{
		name:         "University College Hospital Ibadan",
		address:      "Queen Elizabeth Road, Ibadan, Oyo State",
		latitude:     7.3878,
		longitude:    3.9040,
		numberOfBeds: 480,
		specialties:  []string{"Cardiology", "Neurosurgery", "Oncology", "Pediatrics", "Emergency Medicine"},
	},
	{
		name:         "Aminu Kano Teaching Hospital",
		address:      "Kano, Kano State",
		latitude:     12.0022,
		longitude:    8.5919,
		numberOfBeds: 350,
		specialties:  []string{"General Medicine", "Surgery", "Obstetrics", "Gynecology", "Pediatrics"},
	},
	{
		name:         "Lagos State University Teaching Hospital",
		address:      "Ikeja, Lagos",
		latitude:     6.6018,
		longitude:    3.3515,
		numberOfBeds: 380,
		specialties:  []string{"Cardiology", "Neurology", "Emergency Medicine", "Surgery", "Pediatrics"},
	},
	{
		name:         "University of Benin Teaching Hospital",
		address:      "Benin City, Edo State",
		latitude:     6.3350,
		longitude:    5.6037,
		numberOfBeds: 420,
		specialties:  []string{"Cardiology", "Neurology", "Surgery", "Emergency Medicine", "Radiology"},
	},
	{
		name:         "University of Ilorin Teaching Hospital",
		address:      "Ilorin, Kwara State",
		latitude:     8.4799,
		longitude:    4.5418,
		numberOfBeds: 380,
		specialties:  []string{"Cardiology", "Surgery", "Pediatrics", "Emergency Medicine", "Radiology"},
	},
}

var ambulanceSeeds = []ambulanceSeed{
	{vehicleNumber: "AMB-LG-001", status: models.StatusAvailable, latitude: 6.5244, longitude: 3.3792},
	{vehicleNumber: "AMB-LG-002", status: models.StatusEnRoute, latitude: 6.4541, longitude: 3.3947},
	{vehicleNumber: "AMB-AB-001", status: models.StatusAvailable, latitude: 9.0579, longitude: 7.4951},
	{vehicleNumber: "AMB-AB-002", status: models.StatusBusy, latitude: 9.0820, longitude: 7.4124},
	{vehicleNumber: "AMB-PH-001", status: models.StatusAvailable, latitude: 4.8156, longitude: 7.0498},
	{vehicleNumber: "AMB-PH-002", status: models.StatusEnRoute, latitude: 4.8396, longitude: 6.9972},
	{vehicleNumber: "AMB-IB-001", status: models.StatusAvailable, latitude: 7.3775, longitude: 3.9470},
	{vehicleNumber: "AMB-IB-002", status: models.StatusAvailable, latitude: 7.4043, longitude: 3.9067},
	{vehicleNumber: "AMB-KN-001", status: models.StatusBusy, latitude: 12.0022, longitude: 8.5920},
	{vehicleNumber: "AMB-KN-002", status: models.StatusAvailable, latitude: 11.9959, longitude: 8.5211},
	{vehicleNumber: "AMB-BE-001", status: models.StatusEnRoute, latitude: 6.3350, longitude: 5.6037},
	{vehicleNumber: "AMB-BE-002", status: models.StatusAvailable, latitude: 6.3174, longitude: 5.6139},
	{vehicleNumber: "AMB-IL-001", status: models.StatusAvailable, latitude: 8.4967, longitude: 4.5425},
}

// Run inserts any missing seed rows.
func Run(ctx context.Context, store spatial.Store, logr *zap.Logger) error {
	now := time.Now().UTC()

	var hospitalsAdded, ambulancesAdded int

	for _, s := range hospitalSeeds {
		_, err := store.HospitalByName(ctx, s.name)
		if err == nil {
			continue
		}
		if !apperr.IsNotFound(err) {
			return err
		}

		hospital := &models.Hospital{
			ID:           uuid.New(),
			Name:         s.name,
			Address:      s.address,
			NumberOfBeds: s.numberOfBeds,
			Specialties:  s.specialties,
			Latitude:     s.latitude,
			Longitude:    s.longitude,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := store.UpsertHospital(ctx, hospital); err != nil {
			return err
		}
		hospitalsAdded++
	}

	for _, s := range ambulanceSeeds {
		_, err := store.AmbulanceByVehicleNumber(ctx, s.vehicleNumber)
		if err == nil {
			continue
		}
		if !apperr.IsNotFound(err) {
			return err
		}

		ambulance := &models.Ambulance{
			ID:            uuid.New(),
			VehicleNumber: s.vehicleNumber,
			Status:        s.status,
			Latitude:      s.latitude,
			Longitude:     s.longitude,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := store.UpsertAmbulance(ctx, ambulance); err != nil {
			return err
		}
		ambulancesAdded++
	}

	logr.Info("seed complete",
		zap.Int("hospitalsAdded", hospitalsAdded),
		zap.Int("ambulancesAdded", ambulancesAdded))
	return nil
}
