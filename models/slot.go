package models

// Slot is a derived 30-minute subdivision of an AvailabilityRange, optionally
// bound to a concrete calendar date with an occupancy flag. Slots are computed
// fresh on every query and never persisted.
type Slot struct {
	AvailabilityID string `json:"availabilityId"`
	Doctor         string `json:"doctor"`
	Day            string `json:"day"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Available      bool   `json:"available"`
	Date           string `json:"date,omitempty"`
}
