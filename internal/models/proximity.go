package models

// ProximityResult is the answer to "which ambulance is nearest to hospital X".
// Derived, never stored durably; only cached transiently. Distance is meters
// rounded to 2 decimal places.
type ProximityResult struct {
	Ambulance Ambulance `json:"ambulance"`
	Distance  float64   `json:"distance"`
	FromCache bool      `json:"fromCache"`
}
