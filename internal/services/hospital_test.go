package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ambutrack/internal/apperr"
	"ambutrack/internal/models"
	"ambutrack/internal/spatial"
)

func validHospitalRequest() *models.CreateHospitalRequest {
	return &models.CreateHospitalRequest{
		Name:         "Lagos University Teaching Hospital",
		Address:      "Idi-Araba, Surulere, Lagos",
		NumberOfBeds: 500,
		Specialties:  []string{"Surgery", "Cardiology"},
		Latitude:     6.5027,
		Longitude:    3.3724,
	}
}

func TestHospitalCreate(t *testing.T) {
	svc := NewHospitalService(spatial.NewMemoryStore())

	hospital, err := svc.Create(context.Background(), validHospitalRequest())
	require.NoError(t, err)
	assert.Equal(t, 500, hospital.NumberOfBeds)
	assert.Len(t, hospital.Specialties, 2)
}

func TestHospitalCreateCollectsAllViolations(t *testing.T) {
	svc := NewHospitalService(spatial.NewMemoryStore())

	req := &models.CreateHospitalRequest{
		NumberOfBeds: 0,
		Latitude:     95,
		Longitude:    3.3724,
	}
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	// name, address, beds, latitude
	assert.Len(t, verr.Violations, 4)
}

func TestHospitalCreateRejectsDuplicateName(t *testing.T) {
	svc := NewHospitalService(spatial.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, validHospitalRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validHospitalRequest())
	assert.True(t, apperr.IsValidation(err))
}

func TestHospitalListFiltersBySpecialty(t *testing.T) {
	svc := NewHospitalService(spatial.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, validHospitalRequest())
	require.NoError(t, err)

	other := validHospitalRequest()
	other.Name = "National Hospital Abuja"
	other.Specialties = []string{"Neurology"}
	other.Latitude = 9.0765
	other.Longitude = 7.3986
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	surgical, err := svc.List(ctx, []string{"Surgery"})
	require.NoError(t, err)
	require.Len(t, surgical, 1)
	assert.Equal(t, "Lagos University Teaching Hospital", surgical[0].Name)

	none, err := svc.List(ctx, []string{"Surgery", "Neurology"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
