package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"ambutrack/internal/geo"
)

// Hospital is a fixed facility. Read-heavy; rarely mutated after seeding.
type Hospital struct {
	bun.BaseModel `bun:"table:hospitals,alias:h"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Address      string    `bun:"address,notnull" json:"address"`
	NumberOfBeds int       `bun:"number_of_beds,notnull" json:"numberOfBeds"`
	Specialties  []string  `bun:"specialties,array" json:"specialties"`
	Latitude     float64   `bun:"latitude,notnull" json:"latitude"`
	Longitude    float64   `bun:"longitude,notnull" json:"longitude"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// Position returns the hospital's coordinates.
func (h *Hospital) Position() geo.Point {
	return geo.Point{Latitude: h.Latitude, Longitude: h.Longitude}
}

// CreateHospitalRequest is the POST /hospitals body.
type CreateHospitalRequest struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	NumberOfBeds int      `json:"numberOfBeds"`
	Specialties  []string `json:"specialties"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
}
