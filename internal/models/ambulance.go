package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"ambutrack/internal/geo"
)

// AmbulanceStatus is the wire value of an ambulance's availability.
type AmbulanceStatus string

const (
	StatusAvailable AmbulanceStatus = "available"
	StatusEnRoute   AmbulanceStatus = "en_route"
	StatusBusy      AmbulanceStatus = "busy"
)

// Valid reports whether s is a known status value.
func (s AmbulanceStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusEnRoute, StatusBusy:
		return true
	}
	return false
}

// Ambulance is a tracked vehicle with a mutable position. The geography
// column backing the nearest query is maintained by the postgres store on
// every write; latitude/longitude are the read model.
type Ambulance struct {
	bun.BaseModel `bun:"table:ambulances,alias:a"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	VehicleNumber string          `bun:"vehicle_number,notnull" json:"vehicleNumber"`
	Status        AmbulanceStatus `bun:"status,notnull" json:"status"`
	Latitude      float64         `bun:"latitude,notnull" json:"latitude"`
	Longitude     float64         `bun:"longitude,notnull" json:"longitude"`
	CreatedAt     time.Time       `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time       `bun:"updated_at,notnull" json:"updatedAt"`
}

// Position returns the ambulance's current coordinates.
func (a *Ambulance) Position() geo.Point {
	return geo.Point{Latitude: a.Latitude, Longitude: a.Longitude}
}

// CreateAmbulanceRequest is the POST /ambulances body.
type CreateAmbulanceRequest struct {
	VehicleNumber string          `json:"vehicleNumber"`
	Status        AmbulanceStatus `json:"status"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
}

// UpdateAmbulanceLocationRequest is the PATCH /ambulances/{id}/location body.
// Status is optional.
type UpdateAmbulanceLocationRequest struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Status    AmbulanceStatus `json:"status,omitempty"`
}

// UpdateAmbulanceStatusRequest is the PATCH /ambulances/{id}/status body.
type UpdateAmbulanceStatusRequest struct {
	Status AmbulanceStatus `json:"status"`
}

// Coordinates is the lat/lng pair used by the position endpoint.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateAmbulancePositionRequest is the PATCH /ambulances/{id}/position body.
type UpdateAmbulancePositionRequest struct {
	Coordinates Coordinates `json:"coordinates"`
}
